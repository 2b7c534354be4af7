// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"testing"

	"github.com/gogpu/fpgen/sksl"
)

func TestUniformTypeTag(t *testing.T) {
	tests := []struct {
		typ  *sksl.Type
		want string
	}{
		{sksl.Float, "kFloat_GrSLType"},
		{sksl.Half, "kHalf_GrSLType"},
		{sksl.Float2, "kFloat2_GrSLType"},
		{sksl.Half2, "kHalf2_GrSLType"},
		{sksl.Float4, "kFloat4_GrSLType"},
		{sksl.Half4, "kHalf4_GrSLType"},
		{sksl.Float4x4, "kFloat4x4_GrSLType"},
		{sksl.Half4x4, "kHalf4x4_GrSLType"},
		{sksl.ColorSpaceXform, "kFloat4x4_GrSLType"},
	}

	for _, tt := range tests {
		t.Run(tt.typ.Name, func(t *testing.T) {
			got, err := uniformTypeTag(&sksl.Variable{Name: "v", Type: tt.typ})
			if err != nil {
				t.Fatalf("uniformTypeTag: %v", err)
			}
			if got != tt.want {
				t.Errorf("uniformTypeTag(%s) = %q, want %q", tt.typ.Name, got, tt.want)
			}
		})
	}
}

func TestUniformTypeTag_Unsupported(t *testing.T) {
	for _, typ := range []*sksl.Type{sksl.Int, sksl.Bool, sksl.Half3, sksl.Float3x3, sksl.Half2x2} {
		t.Run(typ.Name, func(t *testing.T) {
			_, err := uniformTypeTag(&sksl.Variable{Name: "v", Type: typ})
			e, ok := err.(*Error)
			if !ok || !e.IsFatal() {
				t.Errorf("uniformTypeTag(%s) error = %v, want fatal *Error", typ.Name, err)
			}
		})
	}
}
