// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sksl

// Expression is a node of an expression tree.
type Expression interface {
	// Node returns the position and resolved type shared by all expressions.
	Node() *ExprNode
	expression()
}

// ExprNode holds the data common to every expression.
type ExprNode struct {
	Pos  Position
	Type *Type
}

// Node implements Expression.
func (n *ExprNode) Node() *ExprNode { return n }

// BoolLiteral is true or false.
type BoolLiteral struct {
	ExprNode
	Value bool
}

func (*BoolLiteral) expression() {}

// IntLiteral is an integer literal.
type IntLiteral struct {
	ExprNode
	Value int64
}

func (*IntLiteral) expression() {}

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	ExprNode
	Value float64
}

func (*FloatLiteral) expression() {}

// VariableReference reads or writes a variable.
type VariableReference struct {
	ExprNode
	Variable *Variable
}

func (*VariableReference) expression() {}

// BinaryExpression applies a binary operator.
type BinaryExpression struct {
	ExprNode
	Left     Expression
	Operator Operator
	Right    Expression
}

func (*BinaryExpression) expression() {}

// PrefixExpression applies a prefix operator (-x, !x, ++x).
type PrefixExpression struct {
	ExprNode
	Operator Operator
	Operand  Expression
}

func (*PrefixExpression) expression() {}

// PostfixExpression applies a postfix operator (x++, x--).
type PostfixExpression struct {
	ExprNode
	Operand  Expression
	Operator Operator
}

func (*PostfixExpression) expression() {}

// TernaryExpression is test ? ifTrue : ifFalse.
type TernaryExpression struct {
	ExprNode
	Test    Expression
	IfTrue  Expression
	IfFalse Expression
}

func (*TernaryExpression) expression() {}

// IndexExpression is base[index].
type IndexExpression struct {
	ExprNode
	Base  Expression
	Index Expression
}

func (*IndexExpression) expression() {}

// FieldAccess is base.field on a struct value.
type FieldAccess struct {
	ExprNode
	Base  Expression
	Field string
}

func (*FieldAccess) expression() {}

// Swizzle selects vector components. Components index into "xyzw".
type Swizzle struct {
	ExprNode
	Base       Expression
	Components []int
}

func (*Swizzle) expression() {}

// FunctionCall calls a user or builtin function.
type FunctionCall struct {
	ExprNode
	Function  *FunctionDeclaration
	Arguments []Expression
}

func (*FunctionCall) expression() {}

// Constructor builds a value of its resolved type from arguments.
type Constructor struct {
	ExprNode
	Arguments []Expression
}

func (*Constructor) expression() {}

// Setting reads a compile-time setting such as sk_Args.name.
type Setting struct {
	ExprNode
	Name string
}

func (*Setting) expression() {}

// SettingArgsPrefix prefixes settings that read processor arguments.
const SettingArgsPrefix = "sk_Args."
