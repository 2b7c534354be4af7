// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"strings"
	"testing"

	"github.com/gogpu/fpgen/sksl"
)

// decodeProgram decodes a JSON program or fails the test.
func decodeProgram(t *testing.T, src string) *sksl.Program {
	t.Helper()
	program, err := sksl.Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return program
}

// generate compiles a JSON program as processor "Test" and fails the test
// on any error.
func generate(t *testing.T, src string) (string, TranslationInfo) {
	t.Helper()
	code, info, err := Compile(decodeProgram(t, src), "Test", DefaultOptions())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return code, info
}

// generateDiagnostics compiles a JSON program that is expected to have
// recoverable errors and returns them.
func generateDiagnostics(t *testing.T, src string, opts Options) (string, Diagnostics) {
	t.Helper()
	code, _, err := Compile(decodeProgram(t, src), "Test", opts)
	if err == nil {
		t.Fatal("expected errors, got none")
	}
	diags, ok := err.(Diagnostics)
	if !ok {
		t.Fatalf("expected Diagnostics, got %T: %v", err, err)
	}
	return code, diags
}

func mustContain(t *testing.T, code string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(code, want) {
			t.Errorf("missing %q in output:\n%s", want, code)
		}
	}
}

func mustNotContain(t *testing.T, code string, unwanted ...string) {
	t.Helper()
	for _, s := range unwanted {
		if strings.Contains(code, s) {
			t.Errorf("unexpected %q in output:\n%s", s, code)
		}
	}
}

// program wraps globals and main-body statements into a JSON program.
func program(globals, body string) string {
	elements := []string{}
	if globals != "" {
		elements = append(elements, globals)
	}
	elements = append(elements, `{"kind":"function","name":"main","body":[`+body+`]}`)
	return `{"elements":[` + strings.Join(elements, ",") + `]}`
}

// outAssign is "sk_OutColor = <expr>;".
func outAssign(expr string) string {
	return `{"kind":"expr","expr":{"kind":"binary","op":"=","left":{"kind":"ref","name":"sk_OutColor"},"right":` + expr + `}}`
}

const inColorTimes = `{"kind":"binary","op":"*","left":{"kind":"ref","name":"sk_InColor"},"right":{"kind":"ref","name":"%s"}}`

func inColorTimesVar(name string) string {
	return strings.Replace(inColorTimes, "%s", name, 1)
}
