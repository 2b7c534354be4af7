// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package sksl defines the type-checked program representation consumed by
// the fpgen code generators.
//
// A Program is an ordered list of top-level elements: global variable
// declarations, function definitions, struct definitions and verbatim
// sections. Expressions and statements are closed sets of node types; code
// generators switch over them exhaustively.
//
// # Structure
//
//   - Types: scalar, vector, matrix, sampler, struct and array types. The
//     predefined types (float, half4, float4x4, sampler2D, ...) are shared
//     values returned by LookupType.
//   - Variables: identity is by pointer. Every reference to a variable points
//     at the same *Variable.
//   - Modifiers: storage flags (in, uniform, precision) plus the layout
//     qualifiers (builtin id, key mode, when guard).
//
// # Decoding
//
// The front end is not part of this module. Decode reads a program from its
// JSON form so that tools and tests can produce programs without a parser.
package sksl
