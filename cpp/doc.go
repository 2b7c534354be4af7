// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package cpp generates the C++ implementation of a fragment processor from
// a type-checked sksl program.
//
// The generated file defines a GLSL processor class whose emitCode method
// assembles the shader at runtime, plus the processor's key, equality and
// clone methods:
//
//	source, info, err := cpp.Compile(program, "Blur", cpp.DefaultOptions())
//
// # Two-level output
//
// Shader text depends on values known only per instance, such as uniform
// names chosen by the runtime uniform handler. The generator therefore
// writes the shader as a printf template whose placeholders are filled by
// C++ expressions at runtime:
//
//	fragBuilder->codeAppendf("%s = %s;\n", args.fOutputColor,
//	        args.fUniformHandler->getUniformCStr(fColorVar));
//
// # Errors
//
// Mistakes in the program (bad builtin index, layout(key) on a uniform,
// missing @clone for custom @fields, ...) are collected and reported
// together; Compile still returns the text with a Diagnostics error. A type
// reaching a closed mapping it is not part of means the type checker is
// broken; generation stops and returns an *Error of kind ErrInternal.
package cpp
