// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"github.com/gogpu/fpgen/sksl"
)

// writeStatement writes a single statement into the shader template,
// without a trailing line ending.
//
//nolint:gocyclo,cyclop // Statement handling requires many cases
func (w *Writer) writeStatement(stmt sksl.Statement) error {
	switch s := stmt.(type) {
	case *sksl.Block:
		return w.writeBlock(s)
	case *sksl.ExpressionStatement:
		if err := w.writeExpression(s.Expression, sksl.PrecedenceTopLevel); err != nil {
			return err
		}
		w.format.write(";")
		return nil
	case *sksl.VarDeclarationsStatement:
		return w.writeVarDeclarations(s.Declarations, false)
	case *sksl.IfStatement:
		return w.writeIf(s)
	case *sksl.ForStatement:
		return w.writeFor(s)
	case *sksl.WhileStatement:
		w.format.write("while (")
		if err := w.writeExpression(s.Test, sksl.PrecedenceTopLevel); err != nil {
			return err
		}
		w.format.write(") ")
		return w.writeStatement(s.Body)
	case *sksl.DoStatement:
		w.format.write("do ")
		if err := w.writeStatement(s.Body); err != nil {
			return err
		}
		w.format.write(" while (")
		if err := w.writeExpression(s.Test, sksl.PrecedenceTopLevel); err != nil {
			return err
		}
		w.format.write(");")
		return nil
	case *sksl.SwitchStatement:
		return w.writeSwitch(s)
	case *sksl.ReturnStatement:
		w.format.write("return")
		if s.Expression != nil {
			w.format.write(" ")
			if err := w.writeExpression(s.Expression, sksl.PrecedenceTopLevel); err != nil {
				return err
			}
		}
		w.format.write(";")
		return nil
	case *sksl.BreakStatement:
		w.format.write("break;")
		return nil
	case *sksl.ContinueStatement:
		w.format.write("continue;")
		return nil
	case *sksl.DiscardStatement:
		w.format.write("discard;")
		return nil
	case *sksl.NopStatement:
		w.format.write(";")
		return nil
	default:
		return internalf("unsupported statement: %T", stmt)
	}
}

// writeBlock writes a braced block.
func (w *Writer) writeBlock(b *sksl.Block) error {
	w.format.writeLine("{")
	w.format.pushIndent()
	for _, s := range b.Statements {
		if err := w.writeStatement(s); err != nil {
			return err
		}
		w.format.writeLine("")
	}
	w.format.popIndent()
	w.format.write("}")
	return nil
}

// writeVarDeclarations writes "type a = x, b;". Private globals are
// initialized from their runtime value rather than their initializer.
func (w *Writer) writeVarDeclarations(decls *sksl.VarDeclarations, global bool) error {
	for i, decl := range decls.Vars {
		v := decl.Var
		if i == 0 {
			if v.Modifiers.Has(sksl.FlagConst) {
				w.format.write("const ")
			}
			w.format.write(declarator(v.Type, v.Name))
		} else {
			w.format.write(", ")
			w.format.write(v.Name + arraySuffix(v.Type))
		}
		if decl.Value == nil {
			continue
		}
		w.format.write(" = ")
		if global && Classify(v) == ClassPrivate {
			if err := w.writeRuntimeValue(v.Type, v.Name); err != nil {
				return err
			}
			continue
		}
		if err := w.writeExpression(decl.Value, sksl.PrecedenceTopLevel); err != nil {
			return err
		}
	}
	w.format.write(";")
	return nil
}

// writeIf writes an if statement; static ifs are prefixed with '@'.
func (w *Writer) writeIf(s *sksl.IfStatement) error {
	if s.IsStatic {
		w.format.write("@")
	}
	w.format.write("if (")
	if err := w.writeExpression(s.Test, sksl.PrecedenceTopLevel); err != nil {
		return err
	}
	w.format.write(") ")
	if err := w.writeStatement(s.IfTrue); err != nil {
		return err
	}
	if s.IfFalse != nil {
		w.format.write(" else ")
		return w.writeStatement(s.IfFalse)
	}
	return nil
}

// writeFor writes a for loop.
func (w *Writer) writeFor(s *sksl.ForStatement) error {
	w.format.write("for (")
	if s.Initializer != nil {
		if err := w.writeStatement(s.Initializer); err != nil {
			return err
		}
		w.format.write(" ")
	} else {
		w.format.write("; ")
	}
	if s.Test != nil {
		if err := w.writeExpression(s.Test, sksl.PrecedenceTopLevel); err != nil {
			return err
		}
	}
	w.format.write("; ")
	if s.Next != nil {
		if err := w.writeExpression(s.Next, sksl.PrecedenceTopLevel); err != nil {
			return err
		}
	}
	w.format.write(") ")
	return w.writeStatement(s.Body)
}

// writeSwitch writes a switch; static switches are prefixed with '@'.
func (w *Writer) writeSwitch(s *sksl.SwitchStatement) error {
	if s.IsStatic {
		w.format.write("@")
	}
	w.format.write("switch (")
	if err := w.writeExpression(s.Value, sksl.PrecedenceTopLevel); err != nil {
		return err
	}
	w.format.writeLine(") {")
	w.format.pushIndent()
	for _, c := range s.Cases {
		if c.Value != nil {
			w.format.write("case ")
			if err := w.writeExpression(c.Value, sksl.PrecedenceTopLevel); err != nil {
				return err
			}
			w.format.writeLine(":")
		} else {
			w.format.writeLine("default:")
		}
		w.format.pushIndent()
		for _, stmt := range c.Statements {
			if err := w.writeStatement(stmt); err != nil {
				return err
			}
			w.format.writeLine("")
		}
		w.format.popIndent()
	}
	w.format.popIndent()
	w.format.write("}")
	return nil
}
