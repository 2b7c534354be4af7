// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"fmt"
	"strings"

	"github.com/gogpu/fpgen/sksl"
)

// ErrorKind categorizes generation errors.
type ErrorKind uint8

const (
	// ErrBuiltinIndex indicates a builtin array indexed by something other
	// than an integer literal, or by a literal outside the checked bounds.
	ErrBuiltinIndex ErrorKind = iota

	// ErrKeyOnUniform indicates layout(key) on a uniform variable.
	ErrKeyOnUniform

	// ErrKeyModeType indicates a key mode the parameter's type cannot support.
	ErrKeyModeType

	// ErrDuplicateColorSpace indicates a second color-space-transform uniform.
	ErrDuplicateColorSpace

	// ErrMissingSection indicates a section that requires a paired section.
	ErrMissingSection

	// ErrSection indicates an unsupported, duplicate or malformed section.
	ErrSection

	// ErrInternal indicates a broken input contract. It aborts generation.
	ErrInternal
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrBuiltinIndex:
		return "BuiltinIndex"
	case ErrKeyOnUniform:
		return "KeyOnUniform"
	case ErrKeyModeType:
		return "KeyModeType"
	case ErrDuplicateColorSpace:
		return "DuplicateColorSpace"
	case ErrMissingSection:
		return "MissingSection"
	case ErrSection:
		return "Section"
	case ErrInternal:
		return "Internal"
	default:
		return "Unknown"
	}
}

// Error is a single generation error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string

	// Pos optionally identifies the source location.
	Pos sksl.Position
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("cpp %s at %s: %s", e.Kind, e.Pos, e.Message)
	}
	return fmt.Sprintf("cpp %s: %s", e.Kind, e.Message)
}

// IsFatal reports whether the error aborts generation.
func (e *Error) IsFatal() bool {
	return e.Kind == ErrInternal
}

// NewError creates an error without position information.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewErrorAt creates an error at the given position.
func NewErrorAt(kind ErrorKind, pos sksl.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos}
}

// internalf creates a fatal error for a broken input contract.
func internalf(format string, args ...any) *Error {
	return &Error{Kind: ErrInternal, Message: fmt.Sprintf(format, args...)}
}

// Reporter receives recoverable errors as they are found.
type Reporter interface {
	Report(err *Error)
}

// Diagnostics is the list of recoverable errors recorded by one generation
// run. A non-empty list means the run failed even though text was produced.
type Diagnostics []*Error

// Report implements Reporter.
func (d *Diagnostics) Report(err *Error) {
	*d = append(*d, err)
}

// Len returns the number of errors.
func (d Diagnostics) Len() int {
	return len(d)
}

// HasErrors returns true if there are any errors.
func (d Diagnostics) HasErrors() bool {
	return len(d) > 0
}

// Error implements the error interface.
func (d Diagnostics) Error() string {
	if len(d) == 0 {
		return "no errors"
	}
	if len(d) == 1 {
		return d[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", d[0].Error(), len(d)-1)
}

// Has reports whether an error of the given kind was recorded.
func (d Diagnostics) Has(kind ErrorKind) bool {
	for _, e := range d {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// FormatAll returns all errors, each with the offending source line and a
// caret when source is available.
func (d Diagnostics) FormatAll(source string) string {
	lines := strings.Split(source, "\n")
	var sb strings.Builder
	for i, e := range d {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "error: %s\n", e.Message)
		line := e.Pos.Line
		if source == "" || line < 1 || line > len(lines) {
			continue
		}
		col := e.Pos.Column
		if col < 1 {
			col = 1
		}
		fmt.Fprintf(&sb, "  --> line %d:%d\n", line, col)
		sb.WriteString("   |\n")
		fmt.Fprintf(&sb, "%3d| %s\n", line, lines[line-1])
		fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))
	}
	return sb.String()
}
