// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package fpgen generates the C++ implementation of GPU fragment processors
// from type-checked SkSL programs.
//
// A processor is described by a single program whose globals are the
// processor's parameters and uniforms and whose main function is the
// fragment shader body. The generated file holds a GLSL helper class that
// assembles the shader at runtime, plus the processor's key, equality,
// clone and test-factory methods.
//
// Example usage:
//
//	program, err := fpgen.Decode(source)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	code, err := fpgen.Generate(program, "Blur")
//
// For more control, use the cpp package directly:
//
//	code, info, err := cpp.Compile(program, "Blur", cpp.DefaultOptions())
package fpgen

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gogpu/fpgen/cpp"
	"github.com/gogpu/fpgen/sksl"
)

// Decode reads a program from its JSON form.
func Decode(source []byte) (*sksl.Program, error) {
	return sksl.Decode(bytes.NewReader(source))
}

// Generate generates the C++ source of the named processor using default
// options.
//
// When the program has recoverable errors the text is still returned,
// together with a cpp.Diagnostics error.
func Generate(program *sksl.Program, name string) (string, error) {
	return GenerateWithOptions(program, name, cpp.DefaultOptions())
}

// GenerateWithOptions generates the C++ source of the named processor.
func GenerateWithOptions(program *sksl.Program, name string, opts cpp.Options) (string, error) {
	code, _, err := cpp.Compile(program, name, opts)
	return code, err
}

// Compile decodes a JSON program and generates the C++ source of the named
// processor.
//
// The pipeline is:
//  1. Decode the program
//  2. Generate C++
func Compile(source []byte, name string, opts cpp.Options) (string, error) {
	program, err := Decode(source)
	if err != nil {
		return "", fmt.Errorf("decode error: %w", err)
	}
	return GenerateWithOptions(program, name, opts)
}

// ProcessorName derives a processor name from an input path:
// "effects/GrBlur.json" becomes "Blur" when prefix is "Gr".
func ProcessorName(path, prefix string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if trimmed := strings.TrimPrefix(base, prefix); trimmed != "" {
		return trimmed
	}
	return base
}
