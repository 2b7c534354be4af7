// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/fpgen/sksl"
)

// writeExpression writes an expression into the shader template. Values
// only known per instance become placeholders with a runtime argument.
//
//nolint:gocyclo,cyclop // Expression handling requires many cases
func (w *Writer) writeExpression(expr sksl.Expression, parent sksl.Precedence) error {
	switch e := expr.(type) {
	case *sksl.BinaryExpression:
		return w.writeBinary(e, parent)
	case *sksl.BoolLiteral:
		if e.Value {
			w.format.write("true")
		} else {
			w.format.write("false")
		}
		return nil
	case *sksl.IntLiteral:
		w.format.write(strconv.FormatInt(int64(int32(e.Value)), 10))
		return nil
	case *sksl.FloatLiteral:
		w.format.write(sksl.FormatFloat(e.Value))
		return nil
	case *sksl.VariableReference:
		return w.writeVariableReference(e)
	case *sksl.PrefixExpression:
		return w.writeUnary(e.Operator.String(), e.Operand, "", sksl.PrecedencePrefix, parent)
	case *sksl.PostfixExpression:
		return w.writeUnary("", e.Operand, e.Operator.String(), sksl.PrecedencePostfix, parent)
	case *sksl.TernaryExpression:
		return w.writeTernary(e, parent)
	case *sksl.IndexExpression:
		return w.writeIndexExpression(e)
	case *sksl.FieldAccess:
		if err := w.writeExpression(e.Base, sksl.PrecedencePostfix); err != nil {
			return err
		}
		w.format.write("." + e.Field)
		return nil
	case *sksl.Swizzle:
		if err := w.writeExpression(e.Base, sksl.PrecedencePostfix); err != nil {
			return err
		}
		w.format.write("." + sksl.SwizzleText(e.Components))
		return nil
	case *sksl.FunctionCall:
		return w.writeFunctionCall(e)
	case *sksl.Constructor:
		w.format.write(e.Type.Name)
		return w.writeArguments(e.Arguments)
	case *sksl.Setting:
		return w.writeSetting(e)
	default:
		return internalf("unsupported expression: %T", expr)
	}
}

// writeBinary writes a binary expression, parenthesized when it binds no
// tighter than its context. The shader is a printf template, so every '%'
// in an operator (remainder and its compound assignment) is doubled.
func (w *Writer) writeBinary(b *sksl.BinaryExpression, parent sksl.Precedence) error {
	precedence := sksl.BinaryPrecedence(b.Operator)
	paren := sksl.NeedsParentheses(precedence, parent)
	if paren {
		w.format.write("(")
	}
	if err := w.writeExpression(b.Left, precedence); err != nil {
		return err
	}
	w.format.write(" " + strings.ReplaceAll(b.Operator.String(), "%", "%%") + " ")
	if err := w.writeExpression(b.Right, precedence); err != nil {
		return err
	}
	if paren {
		w.format.write(")")
	}
	return nil
}

// writeUnary writes a prefix or postfix expression.
func (w *Writer) writeUnary(prefix string, operand sksl.Expression, postfix string, precedence, parent sksl.Precedence) error {
	paren := sksl.NeedsParentheses(precedence, parent)
	if paren {
		w.format.write("(")
	}
	w.format.write(prefix)
	if err := w.writeExpression(operand, precedence); err != nil {
		return err
	}
	w.format.write(postfix)
	if paren {
		w.format.write(")")
	}
	return nil
}

// writeTernary writes test ? ifTrue : ifFalse.
func (w *Writer) writeTernary(t *sksl.TernaryExpression, parent sksl.Precedence) error {
	paren := sksl.NeedsParentheses(sksl.PrecedenceTernary, parent)
	if paren {
		w.format.write("(")
	}
	if err := w.writeExpression(t.Test, sksl.PrecedenceTernary); err != nil {
		return err
	}
	w.format.write(" ? ")
	if err := w.writeExpression(t.IfTrue, sksl.PrecedenceTernary); err != nil {
		return err
	}
	w.format.write(" : ")
	if err := w.writeExpression(t.IfFalse, sksl.PrecedenceTernary); err != nil {
		return err
	}
	if paren {
		w.format.write(")")
	}
	return nil
}

// writeArguments writes a parenthesized argument list.
func (w *Writer) writeArguments(args []sksl.Expression) error {
	w.format.write("(")
	for i, arg := range args {
		if i > 0 {
			w.format.write(", ")
		}
		if err := w.writeExpression(arg, sksl.PrecedenceSequence); err != nil {
			return err
		}
	}
	w.format.write(")")
	return nil
}

// writeVariableReference writes a variable. Builtins, samplers, uniforms
// and parameters are resolved at runtime; everything else is written by
// name.
func (w *Writer) writeVariableReference(ref *sksl.VariableReference) error {
	v := ref.Variable
	switch v.Modifiers.Layout.Builtin {
	case sksl.BuiltinInColor:
		w.format.placeholder("%s", `args.fInputColor ? args.fInputColor : "half4(1)"`)
		return nil
	case sksl.BuiltinOutColor:
		w.format.placeholder("%s", "args.fOutputColor")
		return nil
	}
	if v.Type.IsSampler() && isInput(v) {
		handle, err := w.params.samplerHandle(v)
		if err != nil {
			return err
		}
		w.format.placeholder("%s", samplerVariable(handle))
		return nil
	}
	switch Classify(v) {
	case ClassUniform:
		return w.writeUniformReference(v)
	case ClassParameter:
		return w.writeRuntimeValue(v.Type, "_outer."+v.Name+"()")
	default:
		w.format.write(v.Name)
		return nil
	}
}

// writeUniformReference fetches a uniform's runtime name through its slot
// handle. A conditionally present uniform falls back to its type's default
// value when the handle is invalid.
func (w *Writer) writeUniformReference(v *sksl.Variable) error {
	if v.Type.IsColorSpaceXform() {
		if v != w.params.colorSpace {
			w.format.write(colorSpaceIdentity)
			return nil
		}
		w.format.placeholder("%s", fmt.Sprintf(
			"fColorSpaceHelper.isValid() ? args.fUniformHandler->getUniformCStr(fColorSpaceHelper.gamutXformUniform()) : \"%s\"",
			colorSpaceIdentity))
		return nil
	}
	handle := uniformHandleName(v)
	code := fmt.Sprintf("args.fUniformHandler->getUniformCStr(%s)", handle)
	if v.IsConditional() {
		def, err := defaultValue(v.Type)
		if err != nil {
			return err
		}
		code = fmt.Sprintf("%s.isValid() ? %s : \"%s\"", handle, code, def)
	}
	w.format.placeholder("%s", code)
	return nil
}

// writeRuntimeValue writes placeholders for a value read from C++ code.
func (w *Writer) writeRuntimeValue(t *sksl.Type, cppCode string) error {
	switch {
	case t.IsFloat():
		w.format.placeholder("%f", cppCode)
	case t.Is("int"):
		w.format.placeholder("%d", cppCode)
	case t.Is("bool"):
		w.format.placeholder("%s", "("+cppCode+" ? \"true\" : \"false\")")
	case t.Is("float2"), t.Is("half2"):
		w.format.write(t.Name + "(")
		w.format.placeholder("%f", cppCode+".fX")
		w.format.write(", ")
		w.format.placeholder("%f", cppCode+".fY")
		w.format.write(")")
	default:
		return internalf("unsupported runtime value type: %s", t)
	}
	return nil
}

// writeSetting writes a setting. Processor arguments (sk_Args.name) are
// read from the processor's field at runtime.
func (w *Writer) writeSetting(s *sksl.Setting) error {
	if name, ok := strings.CutPrefix(s.Name, sksl.SettingArgsPrefix); ok {
		if s.Type == nil {
			return internalf("setting '%s' has no type", s.Name)
		}
		return w.writeRuntimeValue(s.Type, "_outer."+FieldName(name))
	}
	w.format.write(s.Name)
	return nil
}

// samplerVariable returns the runtime expression naming a sampler.
func samplerVariable(handle string) string {
	return "fragBuilder->getProgramBuilder()->samplerVariable(" + handle + ").c_str()"
}
