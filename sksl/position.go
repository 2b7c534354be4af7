// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sksl

import "fmt"

// Position identifies a location in the program source.
type Position struct {
	Offset int // Byte offset (0-based)
	Line   int // Line number (1-based, 0 when unknown)
	Column int // Column number (1-based)
}

// IsValid reports whether the position carries line information.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String returns "line:column", or "-" for an unknown position.
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
