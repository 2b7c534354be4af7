// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/fpgen/sksl"
)

// FieldName derives the processor field name of a declared variable: "f",
// the first rune upper-cased, then the rest unchanged. "radius" becomes
// "fRadius" and "_x" stays "f_x". The declaration generator uses the same
// rule, so every generated field and uniform slot reference goes through here.
func FieldName(name string) string {
	_, size := utf8.DecodeRuneInString(name)
	// A Caser is stateful; one per call keeps concurrent runs independent.
	return "f" + cases.Upper(language.Und).String(name[:size]) + name[size:]
}

// uniformHandleName returns the GLSL-class field holding a uniform's slot handle.
func uniformHandleName(v *sksl.Variable) string {
	return FieldName(v.Name) + "Var"
}

// ParameterType returns the C++ type used for a parameter of the given
// shading-language type.
func ParameterType(t *sksl.Type) string {
	switch {
	case t.Is("float2"), t.Is("half2"):
		return "SkPoint"
	case t.Is("int4"):
		return "SkIRect"
	case t.Is("half4"):
		return "GrColor4f"
	case t.Is("float4"):
		return "SkRect"
	case t.Is("float4x4"), t.Is("half4x4"):
		return "SkMatrix44"
	case t.IsSampler():
		return "sk_sp<GrTextureProxy>"
	case t.IsColorSpaceXform():
		return "sk_sp<GrColorSpaceXform>"
	case t.Is("half"):
		return "float"
	default:
		return t.Name
	}
}

// FieldType returns the C++ type of the field storing a variable of the
// given type.
func FieldType(t *sksl.Type) string {
	if t.IsSampler() {
		return "TextureSampler"
	}
	return ParameterType(t)
}
