// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"github.com/gogpu/fpgen/sksl"
)

// uniformTypeTags maps uniform-capable types to runtime type tags. Every
// type here has an upload rule in writeUpload.
var uniformTypeTags = map[string]string{
	"float":                  "kFloat_GrSLType",
	"half":                   "kHalf_GrSLType",
	"float2":                 "kFloat2_GrSLType",
	"half2":                  "kHalf2_GrSLType",
	"float4":                 "kFloat4_GrSLType",
	"half4":                  "kHalf4_GrSLType",
	"float4x4":               "kFloat4x4_GrSLType",
	"half4x4":                "kHalf4x4_GrSLType",
	sksl.ColorSpaceXformName: "kFloat4x4_GrSLType",
}

// uniformTypeTag returns the runtime type tag of a uniform. An unsupported
// type means the type checker let something through; that is fatal.
func uniformTypeTag(v *sksl.Variable) (string, error) {
	if tag, ok := uniformTypeTags[v.Type.Name]; ok {
		return tag, nil
	}
	return "", internalf("unsupported uniform type: %s %s", v.Type.Name, v.Name)
}

// precisionTag returns the runtime precision tag for a variable's modifiers.
func precisionTag(m sksl.Modifiers) string {
	switch {
	case m.Has(sksl.FlagHighp):
		return "kHigh_GrSLPrecision"
	case m.Has(sksl.FlagMediump):
		return "kMedium_GrSLPrecision"
	case m.Has(sksl.FlagLowp):
		return "kLow_GrSLPrecision"
	default:
		return "kDefault_GrSLPrecision"
	}
}

// colorSpaceIdentity is the shader value of an inactive color-space transform.
const colorSpaceIdentity = "float4x4(1.0)"

// defaultValue returns the shader text substituted for a conditionally
// present uniform that is absent at runtime.
func defaultValue(t *sksl.Type) (string, error) {
	if t.IsColorSpaceXform() {
		return colorSpaceIdentity, nil
	}
	switch t.Kind {
	case sksl.TypeScalar:
		return "0", nil
	case sksl.TypeVector:
		return t.Name + "(0)", nil
	case sksl.TypeMatrix:
		return t.Name + "(1)", nil
	default:
		return "", internalf("unsupported default value type: %s", t.Name)
	}
}
