// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sksl

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsonNode is the wire form of every program node. Which fields are used
// depends on Kind.
type jsonNode struct {
	Kind   string `json:"kind"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`

	Name       string          `json:"name,omitempty"`
	Type       string          `json:"type,omitempty"`
	Returns    string          `json:"returns,omitempty"`
	Op         string          `json:"op,omitempty"`
	Field      string          `json:"field,omitempty"`
	Components string          `json:"components,omitempty"`
	Argument   string          `json:"argument,omitempty"`
	Text       string          `json:"text,omitempty"`
	Value      json.RawMessage `json:"value,omitempty"`
	Static     bool            `json:"static,omitempty"`
	Count      *int            `json:"count,omitempty"`

	Flags  []string    `json:"flags,omitempty"`
	Layout *jsonLayout `json:"layout,omitempty"`

	Init        *jsonNode   `json:"init,omitempty"`
	Left        *jsonNode   `json:"left,omitempty"`
	Right       *jsonNode   `json:"right,omitempty"`
	Operand     *jsonNode   `json:"operand,omitempty"`
	Test        *jsonNode   `json:"test,omitempty"`
	IfTrue      *jsonNode   `json:"ifTrue,omitempty"`
	IfFalse     *jsonNode   `json:"ifFalse,omitempty"`
	Base        *jsonNode   `json:"base,omitempty"`
	Index       *jsonNode   `json:"index,omitempty"`
	Expr        *jsonNode   `json:"expr,omitempty"`
	Next        *jsonNode   `json:"next,omitempty"`
	Initializer *jsonNode   `json:"initializer,omitempty"`
	Match       *jsonNode   `json:"match,omitempty"`
	Then        []*jsonNode `json:"then,omitempty"`
	Else        []*jsonNode `json:"else,omitempty"`
	Body        []*jsonNode `json:"body,omitempty"`
	Args        []*jsonNode `json:"args,omitempty"`
	Vars        []*jsonNode `json:"vars,omitempty"`
	Fields      []*jsonNode `json:"fields,omitempty"`
	Params      []*jsonNode `json:"params,omitempty"`
	Cases       []*jsonNode `json:"cases,omitempty"`
}

type jsonLayout struct {
	Builtin string `json:"builtin,omitempty"`
	Key     string `json:"key,omitempty"`
	When    string `json:"when,omitempty"`
}

type jsonProgram struct {
	Source   string      `json:"source,omitempty"`
	Elements []*jsonNode `json:"elements"`
}

// Decode reads a program from its JSON form. Names are resolved against
// lexical scopes; the builtin variables sk_InColor, sk_OutColor,
// sk_TransformedCoords2D and sk_TextureSamplers are predeclared. Calls to
// functions the program does not define resolve to builtin functions.
func Decode(r io.Reader) (*Program, error) {
	var jp jsonProgram
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&jp); err != nil {
		return nil, fmt.Errorf("sksl: decode: %w", err)
	}
	d := newDecoder()
	program := &Program{Source: jp.Source}
	for _, n := range jp.Elements {
		e, err := d.element(n)
		if err != nil {
			return nil, err
		}
		program.Elements = append(program.Elements, e)
	}
	return program, nil
}

type decoder struct {
	scopes    []map[string]*Variable
	functions map[string]*FunctionDeclaration
	structs   map[string]*Type
}

func newDecoder() *decoder {
	d := &decoder{
		scopes:    []map[string]*Variable{{}},
		functions: make(map[string]*FunctionDeclaration),
		structs:   make(map[string]*Type),
	}
	builtins := []*Variable{
		{Name: InColorName, Type: Half4, Modifiers: Modifiers{Flags: FlagIn, Layout: Layout{Builtin: BuiltinInColor}}},
		{Name: OutColorName, Type: Half4, Modifiers: Modifiers{Flags: FlagOut, Layout: Layout{Builtin: BuiltinOutColor}}},
		{Name: TransformedCoordsName, Type: NewArray(Float2, -1), Modifiers: Modifiers{Layout: Layout{Builtin: BuiltinTransformedCoords}}},
		{Name: TextureSamplersName, Type: NewArray(Sampler2D, -1), Modifiers: Modifiers{Layout: Layout{Builtin: BuiltinTextureSamplers}}},
	}
	for _, v := range builtins {
		d.scopes[0][v.Name] = v
	}
	return d
}

var builtinIDs = map[string]Builtin{
	InColorName:           BuiltinInColor,
	OutColorName:          BuiltinOutColor,
	TransformedCoordsName: BuiltinTransformedCoords,
	TextureSamplersName:   BuiltinTextureSamplers,
}

func pos(n *jsonNode) Position {
	return Position{Line: n.Line, Column: n.Column}
}

func (d *decoder) errorf(n *jsonNode, format string, args ...any) error {
	return fmt.Errorf("sksl: %s: %s", pos(n), fmt.Sprintf(format, args...))
}

func (d *decoder) push() { d.scopes = append(d.scopes, map[string]*Variable{}) }
func (d *decoder) pop()  { d.scopes = d.scopes[:len(d.scopes)-1] }

func (d *decoder) declare(v *Variable) {
	d.scopes[len(d.scopes)-1][v.Name] = v
}

func (d *decoder) lookup(name string) *Variable {
	for i := len(d.scopes) - 1; i >= 0; i-- {
		if v, ok := d.scopes[i][name]; ok {
			return v
		}
	}
	return nil
}

func (d *decoder) typ(n *jsonNode, name string) (*Type, error) {
	if t, ok := LookupType(name); ok {
		return t, nil
	}
	if t, ok := d.structs[name]; ok {
		return t, nil
	}
	return nil, d.errorf(n, "unknown type %q", name)
}

func (d *decoder) element(n *jsonNode) (Element, error) {
	switch n.Kind {
	case "var":
		return d.varDeclarations(n, StorageGlobal)
	case "struct":
		fields := make([]Field, 0, len(n.Fields))
		for _, f := range n.Fields {
			t, err := d.typ(f, f.Type)
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Name: f.Name, Type: t})
		}
		t := NewStruct(n.Name, fields)
		d.structs[n.Name] = t
		return &StructDefinition{Pos: pos(n), Type: t}, nil
	case "section":
		return &Section{Pos: pos(n), Name: n.Name, Argument: n.Argument, Text: n.Text}, nil
	case "function":
		return d.function(n)
	default:
		return nil, d.errorf(n, "unknown element kind %q", n.Kind)
	}
}

func (d *decoder) modifiers(n *jsonNode) (Modifiers, error) {
	var m Modifiers
	for _, f := range n.Flags {
		flag, ok := ParseFlag(f)
		if !ok {
			return m, d.errorf(n, "unknown modifier %q", f)
		}
		m.Flags |= flag
	}
	if n.Layout == nil {
		return m, nil
	}
	if n.Layout.Builtin != "" {
		id, ok := builtinIDs[n.Layout.Builtin]
		if !ok {
			return m, d.errorf(n, "unknown builtin %q", n.Layout.Builtin)
		}
		m.Layout.Builtin = id
	}
	switch n.Layout.Key {
	case "", "none":
		m.Layout.Key = KeyNone
	case "key":
		m.Layout.Key = KeyKey
	case "identity":
		m.Layout.Key = KeyIdentity
	default:
		return m, d.errorf(n, "unknown key mode %q", n.Layout.Key)
	}
	m.Layout.When = n.Layout.When
	return m, nil
}

func (d *decoder) varDeclarations(n *jsonNode, storage Storage) (*VarDeclarations, error) {
	decls := &VarDeclarations{Pos: pos(n)}
	for _, vn := range n.Vars {
		t, err := d.typ(vn, vn.Type)
		if err != nil {
			return nil, err
		}
		if vn.Count != nil {
			t = NewArray(t, *vn.Count)
		}
		if decls.BaseType == nil {
			decls.BaseType = t
		}
		mods, err := d.modifiers(vn)
		if err != nil {
			return nil, err
		}
		v := &Variable{Name: vn.Name, Type: t, Storage: storage, Modifiers: mods, Pos: pos(vn)}
		decl := &VarDeclaration{Pos: pos(vn), Var: v}
		if vn.Init != nil {
			if decl.Value, err = d.expression(vn.Init); err != nil {
				return nil, err
			}
		}
		d.declare(v)
		decls.Vars = append(decls.Vars, decl)
	}
	return decls, nil
}

func (d *decoder) function(n *jsonNode) (*FunctionDefinition, error) {
	ret := Void
	if n.Returns != "" {
		var err error
		if ret, err = d.typ(n, n.Returns); err != nil {
			return nil, err
		}
	}
	decl := &FunctionDeclaration{Pos: pos(n), Name: n.Name, ReturnType: ret}
	d.functions[n.Name] = decl
	d.push()
	defer d.pop()
	for _, pn := range n.Params {
		t, err := d.typ(pn, pn.Type)
		if err != nil {
			return nil, err
		}
		mods, err := d.modifiers(pn)
		if err != nil {
			return nil, err
		}
		p := &Variable{Name: pn.Name, Type: t, Storage: StorageParameter, Modifiers: mods, Pos: pos(pn)}
		decl.Parameters = append(decl.Parameters, p)
		d.declare(p)
	}
	body, err := d.statements(n.Body)
	if err != nil {
		return nil, err
	}
	return &FunctionDefinition{
		Pos:         pos(n),
		Declaration: decl,
		Body:        &Block{StmtNode: StmtNode{Pos: pos(n)}, Statements: body},
	}, nil
}

func (d *decoder) statements(nodes []*jsonNode) ([]Statement, error) {
	stmts := make([]Statement, 0, len(nodes))
	for _, sn := range nodes {
		s, err := d.statement(sn)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

// branch decodes a statement list used as a single statement: one statement
// stands alone, anything else becomes a block.
func (d *decoder) branch(n *jsonNode, nodes []*jsonNode) (Statement, error) {
	if len(nodes) == 1 {
		return d.statement(nodes[0])
	}
	d.push()
	defer d.pop()
	stmts, err := d.statements(nodes)
	if err != nil {
		return nil, err
	}
	return &Block{StmtNode: StmtNode{Pos: pos(n)}, Statements: stmts}, nil
}

//nolint:gocyclo,cyclop // one arm per statement kind
func (d *decoder) statement(n *jsonNode) (Statement, error) {
	node := StmtNode{Pos: pos(n)}
	switch n.Kind {
	case "block":
		d.push()
		defer d.pop()
		stmts, err := d.statements(n.Body)
		if err != nil {
			return nil, err
		}
		return &Block{StmtNode: node, Statements: stmts}, nil
	case "expr":
		e, err := d.expression(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ExpressionStatement{StmtNode: node, Expression: e}, nil
	case "var":
		decls, err := d.varDeclarations(n, StorageLocal)
		if err != nil {
			return nil, err
		}
		return &VarDeclarationsStatement{StmtNode: node, Declarations: decls}, nil
	case "if":
		test, err := d.expression(n.Test)
		if err != nil {
			return nil, err
		}
		s := &IfStatement{StmtNode: node, IsStatic: n.Static, Test: test}
		if s.IfTrue, err = d.branch(n, n.Then); err != nil {
			return nil, err
		}
		if n.Else != nil {
			if s.IfFalse, err = d.branch(n, n.Else); err != nil {
				return nil, err
			}
		}
		return s, nil
	case "for":
		d.push()
		defer d.pop()
		s := &ForStatement{StmtNode: node}
		var err error
		if n.Initializer != nil {
			if s.Initializer, err = d.statement(n.Initializer); err != nil {
				return nil, err
			}
		}
		if s.Test, err = d.optionalExpression(n.Test); err != nil {
			return nil, err
		}
		if s.Next, err = d.optionalExpression(n.Next); err != nil {
			return nil, err
		}
		if s.Body, err = d.branch(n, n.Body); err != nil {
			return nil, err
		}
		return s, nil
	case "while", "do":
		test, err := d.expression(n.Test)
		if err != nil {
			return nil, err
		}
		body, err := d.branch(n, n.Body)
		if err != nil {
			return nil, err
		}
		if n.Kind == "do" {
			return &DoStatement{StmtNode: node, Body: body, Test: test}, nil
		}
		return &WhileStatement{StmtNode: node, Test: test, Body: body}, nil
	case "switch":
		value, err := d.expression(n.Expr)
		if err != nil {
			return nil, err
		}
		s := &SwitchStatement{StmtNode: node, IsStatic: n.Static, Value: value}
		d.push()
		defer d.pop()
		for _, cn := range n.Cases {
			c := &SwitchCase{Pos: pos(cn)}
			if c.Value, err = d.optionalExpression(cn.Match); err != nil {
				return nil, err
			}
			if c.Statements, err = d.statements(cn.Body); err != nil {
				return nil, err
			}
			s.Cases = append(s.Cases, c)
		}
		return s, nil
	case "return":
		e, err := d.optionalExpression(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ReturnStatement{StmtNode: node, Expression: e}, nil
	case "break":
		return &BreakStatement{StmtNode: node}, nil
	case "continue":
		return &ContinueStatement{StmtNode: node}, nil
	case "discard":
		return &DiscardStatement{StmtNode: node}, nil
	case "nop":
		return &NopStatement{StmtNode: node}, nil
	default:
		return nil, d.errorf(n, "unknown statement kind %q", n.Kind)
	}
}

func (d *decoder) optionalExpression(n *jsonNode) (Expression, error) {
	if n == nil {
		return nil, nil
	}
	return d.expression(n)
}

func (d *decoder) expressions(nodes []*jsonNode) ([]Expression, error) {
	exprs := make([]Expression, 0, len(nodes))
	for _, en := range nodes {
		e, err := d.expression(en)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

//nolint:gocyclo,cyclop // one arm per expression kind
func (d *decoder) expression(n *jsonNode) (Expression, error) {
	if n == nil {
		return nil, fmt.Errorf("sksl: missing expression")
	}
	node := ExprNode{Pos: pos(n)}
	if n.Type != "" {
		t, err := d.typ(n, n.Type)
		if err != nil {
			return nil, err
		}
		node.Type = t
	}
	switch n.Kind {
	case "bool":
		var v bool
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, d.errorf(n, "bad bool literal: %v", err)
		}
		node.Type = Bool
		return &BoolLiteral{ExprNode: node, Value: v}, nil
	case "int":
		var v int64
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, d.errorf(n, "bad int literal: %v", err)
		}
		if node.Type == nil {
			node.Type = Int
		}
		return &IntLiteral{ExprNode: node, Value: v}, nil
	case "float":
		var v float64
		if err := json.Unmarshal(n.Value, &v); err != nil {
			return nil, d.errorf(n, "bad float literal: %v", err)
		}
		if node.Type == nil {
			node.Type = Float
		}
		return &FloatLiteral{ExprNode: node, Value: v}, nil
	case "ref":
		v := d.lookup(n.Name)
		if v == nil {
			return nil, d.errorf(n, "unknown variable %q", n.Name)
		}
		if node.Type == nil {
			node.Type = v.Type
		}
		return &VariableReference{ExprNode: node, Variable: v}, nil
	case "binary":
		op, ok := ParseOperator(n.Op)
		if !ok {
			return nil, d.errorf(n, "unknown operator %q", n.Op)
		}
		left, err := d.expression(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := d.expression(n.Right)
		if err != nil {
			return nil, err
		}
		if node.Type == nil {
			node.Type = left.Node().Type
		}
		return &BinaryExpression{ExprNode: node, Left: left, Operator: op, Right: right}, nil
	case "prefix", "postfix":
		op, ok := ParseOperator(n.Op)
		if !ok {
			return nil, d.errorf(n, "unknown operator %q", n.Op)
		}
		operand, err := d.expression(n.Operand)
		if err != nil {
			return nil, err
		}
		if node.Type == nil {
			node.Type = operand.Node().Type
		}
		if n.Kind == "prefix" {
			return &PrefixExpression{ExprNode: node, Operator: op, Operand: operand}, nil
		}
		return &PostfixExpression{ExprNode: node, Operand: operand, Operator: op}, nil
	case "ternary":
		test, err := d.expression(n.Test)
		if err != nil {
			return nil, err
		}
		ifTrue, err := d.expression(n.IfTrue)
		if err != nil {
			return nil, err
		}
		ifFalse, err := d.expression(n.IfFalse)
		if err != nil {
			return nil, err
		}
		if node.Type == nil {
			node.Type = ifTrue.Node().Type
		}
		return &TernaryExpression{ExprNode: node, Test: test, IfTrue: ifTrue, IfFalse: ifFalse}, nil
	case "index":
		base, err := d.expression(n.Base)
		if err != nil {
			return nil, err
		}
		index, err := d.expression(n.Index)
		if err != nil {
			return nil, err
		}
		if bt := base.Node().Type; node.Type == nil && bt != nil && bt.Kind == TypeArray {
			node.Type = bt.Element
		}
		return &IndexExpression{ExprNode: node, Base: base, Index: index}, nil
	case "field":
		base, err := d.expression(n.Base)
		if err != nil {
			return nil, err
		}
		if bt := base.Node().Type; node.Type == nil && bt != nil {
			for _, f := range bt.Fields {
				if f.Name == n.Field {
					node.Type = f.Type
				}
			}
		}
		return &FieldAccess{ExprNode: node, Base: base, Field: n.Field}, nil
	case "swizzle":
		base, err := d.expression(n.Base)
		if err != nil {
			return nil, err
		}
		components, err := parseSwizzle(n.Components)
		if err != nil {
			return nil, d.errorf(n, "%v", err)
		}
		return &Swizzle{ExprNode: node, Base: base, Components: components}, nil
	case "call":
		args, err := d.expressions(n.Args)
		if err != nil {
			return nil, err
		}
		fn, ok := d.functions[n.Name]
		if !ok {
			fn = &FunctionDeclaration{Name: n.Name, Builtin: true, ReturnType: node.Type}
			d.functions[n.Name] = fn
		}
		if node.Type == nil {
			node.Type = fn.ReturnType
		}
		return &FunctionCall{ExprNode: node, Function: fn, Arguments: args}, nil
	case "construct":
		if node.Type == nil {
			return nil, d.errorf(n, "constructor without type")
		}
		args, err := d.expressions(n.Args)
		if err != nil {
			return nil, err
		}
		return &Constructor{ExprNode: node, Arguments: args}, nil
	case "setting":
		return &Setting{ExprNode: node, Name: n.Name}, nil
	default:
		return nil, d.errorf(n, "unknown expression kind %q", n.Kind)
	}
}

func parseSwizzle(s string) ([]int, error) {
	if s == "" || len(s) > 4 {
		return nil, fmt.Errorf("bad swizzle %q", s)
	}
	components := make([]int, 0, len(s))
	for _, r := range s {
		switch r {
		case 'x', 'r', 's':
			components = append(components, 0)
		case 'y', 'g', 't':
			components = append(components, 1)
		case 'z', 'b', 'p':
			components = append(components, 2)
		case 'w', 'a', 'q':
			components = append(components, 3)
		default:
			return nil, fmt.Errorf("bad swizzle component %q", r)
		}
	}
	return components, nil
}
