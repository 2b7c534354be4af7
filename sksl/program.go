// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sksl

// Program is a type-checked program. Generators never mutate it.
type Program struct {
	Elements []Element

	// Source is the original text, used for diagnostics context only.
	Source string
}

// Element is a top-level program element.
type Element interface {
	Position() Position
	element()
}

// VarDeclaration declares one variable with an optional initializer.
type VarDeclaration struct {
	Pos   Position
	Var   *Variable
	Value Expression // nil when uninitialized
}

// VarDeclarations is a declaration statement of one or more variables
// sharing a base type, e.g. "in half a, b;".
type VarDeclarations struct {
	Pos      Position
	BaseType *Type
	Vars     []*VarDeclaration
}

// Position implements Element.
func (d *VarDeclarations) Position() Position { return d.Pos }

func (*VarDeclarations) element() {}

// FunctionDeclaration is a function signature. Builtin functions have no
// definition in the program.
type FunctionDeclaration struct {
	Pos        Position
	Name       string
	Parameters []*Variable
	ReturnType *Type
	Builtin    bool
}

// FunctionDefinition is a function with a body.
type FunctionDefinition struct {
	Pos         Position
	Declaration *FunctionDeclaration
	Body        *Block
}

// Position implements Element.
func (f *FunctionDefinition) Position() Position { return f.Pos }

func (*FunctionDefinition) element() {}

// Section is an author-supplied verbatim block: @name(argument) { text }.
type Section struct {
	Pos      Position
	Name     string
	Argument string
	Text     string
}

// Position implements Element.
func (s *Section) Position() Position { return s.Pos }

func (*Section) element() {}

// StructDefinition declares a struct type.
type StructDefinition struct {
	Pos  Position
	Type *Type
}

// Position implements Element.
func (s *StructDefinition) Position() Position { return s.Pos }

func (*StructDefinition) element() {}

// GlobalDeclarations returns every global variable declaration in program
// order.
func (p *Program) GlobalDeclarations() []*VarDeclaration {
	var decls []*VarDeclaration
	for _, e := range p.Elements {
		if vars, ok := e.(*VarDeclarations); ok {
			decls = append(decls, vars.Vars...)
		}
	}
	return decls
}

// Function returns the definition of the named function, or nil.
func (p *Program) Function(name string) *FunctionDefinition {
	for _, e := range p.Elements {
		if f, ok := e.(*FunctionDefinition); ok && f.Declaration.Name == name {
			return f
		}
	}
	return nil
}

// Sections returns every section element in program order.
func (p *Program) Sections() []*Section {
	var sections []*Section
	for _, e := range p.Elements {
		if s, ok := e.(*Section); ok {
			sections = append(sections, s)
		}
	}
	return sections
}
