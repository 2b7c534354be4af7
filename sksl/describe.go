// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sksl

import (
	"strconv"
	"strings"
)

// Describe renders an expression as fully parenthesized source text.
// The result does not depend on any generator state.
func Describe(e Expression) string {
	switch e := e.(type) {
	case *BoolLiteral:
		if e.Value {
			return "true"
		}
		return "false"
	case *IntLiteral:
		return strconv.FormatInt(e.Value, 10)
	case *FloatLiteral:
		return FormatFloat(e.Value)
	case *VariableReference:
		return e.Variable.Name
	case *BinaryExpression:
		return "(" + Describe(e.Left) + " " + e.Operator.String() + " " + Describe(e.Right) + ")"
	case *PrefixExpression:
		return e.Operator.String() + Describe(e.Operand)
	case *PostfixExpression:
		return Describe(e.Operand) + e.Operator.String()
	case *TernaryExpression:
		return "(" + Describe(e.Test) + " ? " + Describe(e.IfTrue) + " : " + Describe(e.IfFalse) + ")"
	case *IndexExpression:
		return Describe(e.Base) + "[" + Describe(e.Index) + "]"
	case *FieldAccess:
		return Describe(e.Base) + "." + e.Field
	case *Swizzle:
		return Describe(e.Base) + "." + SwizzleText(e.Components)
	case *FunctionCall:
		return e.Function.Name + "(" + describeList(e.Arguments) + ")"
	case *Constructor:
		return e.Type.Name + "(" + describeList(e.Arguments) + ")"
	case *Setting:
		return e.Name
	default:
		return "<unknown>"
	}
}

func describeList(args []Expression) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Describe(a)
	}
	return strings.Join(parts, ", ")
}

// SwizzleText returns the component letters of a swizzle ("xyzw" order).
func SwizzleText(components []int) string {
	const letters = "xyzw"
	var sb strings.Builder
	for _, c := range components {
		if c >= 0 && c < len(letters) {
			sb.WriteByte(letters[c])
		}
	}
	return sb.String()
}

// FormatFloat formats a float literal so that it always reads back as a
// floating-point value.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// Ensure it has a decimal point or exponent
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}
