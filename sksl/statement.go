// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sksl

// Statement is a node of a function body.
type Statement interface {
	Position() Position
	statement()
}

// StmtNode holds the data common to every statement.
type StmtNode struct {
	Pos Position
}

// Position implements Statement.
func (n *StmtNode) Position() Position { return n.Pos }

// Block is a braced statement list.
type Block struct {
	StmtNode
	Statements []Statement
}

func (*Block) statement() {}

// ExpressionStatement evaluates an expression for its effects.
type ExpressionStatement struct {
	StmtNode
	Expression Expression
}

func (*ExpressionStatement) statement() {}

// VarDeclarationsStatement declares local variables.
type VarDeclarationsStatement struct {
	StmtNode
	Declarations *VarDeclarations
}

func (*VarDeclarationsStatement) statement() {}

// IfStatement is a conditional. Static ifs are resolved by the runtime
// shader compiler and are marked with '@'.
type IfStatement struct {
	StmtNode
	IsStatic bool
	Test     Expression
	IfTrue   Statement
	IfFalse  Statement // nil when there is no else branch
}

func (*IfStatement) statement() {}

// ForStatement is a for loop. Any of Initializer, Test and Next may be nil.
type ForStatement struct {
	StmtNode
	Initializer Statement
	Test        Expression
	Next        Expression
	Body        Statement
}

func (*ForStatement) statement() {}

// WhileStatement is a while loop.
type WhileStatement struct {
	StmtNode
	Test Expression
	Body Statement
}

func (*WhileStatement) statement() {}

// DoStatement is a do-while loop.
type DoStatement struct {
	StmtNode
	Body Statement
	Test Expression
}

func (*DoStatement) statement() {}

// SwitchStatement is a switch.
type SwitchStatement struct {
	StmtNode
	IsStatic bool
	Value    Expression
	Cases    []*SwitchCase
}

func (*SwitchStatement) statement() {}

// SwitchCase is one case of a switch. A nil Value is the default case.
type SwitchCase struct {
	Pos        Position
	Value      Expression
	Statements []Statement
}

// ReturnStatement returns from the function, with an optional value.
type ReturnStatement struct {
	StmtNode
	Expression Expression
}

func (*ReturnStatement) statement() {}

// BreakStatement is break.
type BreakStatement struct{ StmtNode }

func (*BreakStatement) statement() {}

// ContinueStatement is continue.
type ContinueStatement struct{ StmtNode }

func (*ContinueStatement) statement() {}

// DiscardStatement is discard.
type DiscardStatement struct{ StmtNode }

func (*DiscardStatement) statement() {}

// NopStatement is an empty statement.
type NopStatement struct{ StmtNode }

func (*NopStatement) statement() {}
