// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"fmt"

	"github.com/gogpu/fpgen/sksl"
)

// IndexPolicy controls bounds checking of literal builtin array indices.
type IndexPolicy uint8

const (
	// IndexUnchecked accepts any integer literal index.
	IndexUnchecked IndexPolicy = iota

	// IndexChecked reports literal indices outside [0, limit).
	IndexChecked
)

// Options configures code generation.
type Options struct {
	// ClassPrefix is prepended to the processor name to form the class name.
	ClassPrefix string

	// GLSLPrefix is prepended to the processor name to form the GLSL class name.
	GLSLPrefix string

	// SourceExtension names the source file in the generated banner.
	SourceExtension string

	// EntryPoint names the function whose body becomes the shader main.
	// Defaults to "main" if empty.
	EntryPoint string

	// IndexPolicy selects bounds checking for sk_TransformedCoords2D and
	// sk_TextureSamplers indices.
	IndexPolicy IndexPolicy

	// MaxTransformedCoords and MaxTextureSamplers are the limits used by
	// IndexChecked.
	MaxTransformedCoords int
	MaxTextureSamplers   int

	// Reporter, if set, also receives every recoverable error.
	Reporter Reporter
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ClassPrefix:          "Gr",
		GLSLPrefix:           "GrGLSL",
		SourceExtension:      ".fp",
		EntryPoint:           "main",
		IndexPolicy:          IndexUnchecked,
		MaxTransformedCoords: 8,
		MaxTextureSamplers:   8,
	}
}

// TranslationInfo contains metadata about the generated class.
type TranslationInfo struct {
	// ClassName is the generated processor class name.
	ClassName string

	// Uniforms lists variables given a uniform slot handle.
	Uniforms []string

	// Parameters lists the processor's instance inputs in declaration order.
	Parameters []string

	// Sections lists the names of the sections present, sorted.
	Sections []string

	// TransformedCoords lists the coordinate indices used, in first-use order.
	TransformedCoords []int64

	// ColorSpaceHelper reports whether the color-space helper is active.
	ColorSpaceHelper bool

	// FormatArgs is the number of runtime arguments of the shader template.
	FormatArgs int
}

// Compile generates the C++ source of the named processor.
//
// If the program has recoverable errors the generated text is returned
// together with a Diagnostics error listing all of them. A fatal error
// returns no text.
func Compile(program *sksl.Program, name string, options Options) (string, TranslationInfo, error) {
	// Apply defaults for zero values
	defaults := DefaultOptions()
	if options.ClassPrefix == "" {
		options.ClassPrefix = defaults.ClassPrefix
	}
	if options.GLSLPrefix == "" {
		options.GLSLPrefix = defaults.GLSLPrefix
	}
	if options.SourceExtension == "" {
		options.SourceExtension = defaults.SourceExtension
	}
	if options.EntryPoint == "" {
		options.EntryPoint = defaults.EntryPoint
	}

	w := newWriter(program, name, &options)
	if err := w.writeModule(); err != nil {
		return "", TranslationInfo{}, fmt.Errorf("cpp: %w", err)
	}

	info := w.translationInfo()
	if w.diagnostics.HasErrors() {
		return w.String(), info, w.diagnostics
	}
	return w.String(), info, nil
}
