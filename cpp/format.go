// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import "strings"

// lineEnding terminates shader lines. The shader template is embedded in a
// C++ string literal, so the newline is written as an escape sequence.
const lineEnding = `\n`

// formatBuffer is the runtime half of the generated output: a printf-style
// shader template plus the C++ expressions that fill its placeholders at
// runtime. Every placeholder written has exactly one argument, in order.
type formatBuffer struct {
	text        strings.Builder
	args        []string
	indent      int
	atLineStart bool
}

func newFormatBuffer() *formatBuffer {
	return &formatBuffer{atLineStart: true}
}

// write appends literal shader text, indenting at the start of a line.
func (f *formatBuffer) write(s string) {
	if s == "" {
		return
	}
	if f.atLineStart {
		for i := 0; i < f.indent; i++ {
			f.text.WriteString("    ")
		}
		f.atLineStart = false
	}
	f.text.WriteString(s)
}

// writeLine appends s and ends the line.
func (f *formatBuffer) writeLine(s string) {
	f.write(s)
	f.text.WriteString(lineEnding)
	f.atLineStart = true
}

// placeholder appends a printf directive and the C++ expression supplying it.
func (f *formatBuffer) placeholder(directive, arg string) {
	f.write(directive)
	f.args = append(f.args, arg)
}

// appendBuffer appends another buffer's template and arguments.
func (f *formatBuffer) appendBuffer(other *formatBuffer) {
	f.text.WriteString(other.text.String())
	f.args = append(f.args, other.args...)
	f.atLineStart = other.atLineStart
}

func (f *formatBuffer) pushIndent() { f.indent++ }

func (f *formatBuffer) popIndent() {
	if f.indent > 0 {
		f.indent--
	}
}

// String returns the template text.
func (f *formatBuffer) String() string {
	return f.text.String()
}

// placeholderCount counts printf directives in a template. "%%" is an
// escaped percent sign, not a directive.
func placeholderCount(template string) int {
	n := 0
	for i := 0; i < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		if i+1 < len(template) && template[i+1] == '%' {
			i++
			continue
		}
		n++
	}
	return n
}
