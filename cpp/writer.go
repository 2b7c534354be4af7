// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"fmt"
	"strings"

	"github.com/gogpu/fpgen/sksl"
)

// fileBanner opens every generated file.
const fileBanner = `/**************************************************************************************************
 * This file was autogenerated from %s%s; do not modify.
 **************************************************************************************************/`

// Writer generates the C++ source of one processor. A Writer holds all the
// mutable state of a single run and is never shared between runs.
type Writer struct {
	program *sksl.Program
	options *Options

	name     string // processor name, e.g. "Blur"
	fullName string // processor class, e.g. "GrBlur"
	glslName string // GLSL class, e.g. "GrGLSLBlur"

	// C++ output
	out    strings.Builder
	indent int

	params      *parameters
	diagnostics Diagnostics

	// Shader emission state
	format        *formatBuffer
	temporaries   []string // shader temporaries of the function being written
	varCount      int
	coordOrder    []int64
	writtenCoords map[int64]struct{}
	formatArgs    int
}

// newWriter creates a writer for one run.
func newWriter(program *sksl.Program, name string, options *Options) *Writer {
	w := &Writer{
		program:       program,
		options:       options,
		name:          name,
		fullName:      options.ClassPrefix + name,
		glslName:      options.GLSLPrefix + name,
		writtenCoords: make(map[int64]struct{}),
	}
	w.params = newParameters(program, w.report)
	return w
}

// report records a recoverable error; generation continues.
func (w *Writer) report(err *Error) {
	w.diagnostics.Report(err)
	if w.options.Reporter != nil {
		w.options.Reporter.Report(err)
	}
}

// String returns the generated source.
func (w *Writer) String() string {
	return w.out.String()
}

func (w *Writer) translationInfo() TranslationInfo {
	info := TranslationInfo{
		ClassName:         w.fullName,
		Sections:          w.params.sections.names(),
		TransformedCoords: append([]int64(nil), w.coordOrder...),
		ColorSpaceHelper:  w.params.colorSpace != nil,
		FormatArgs:        w.formatArgs,
	}
	for _, u := range w.params.uniforms {
		if needsUniformVar(u) {
			info.Uniforms = append(info.Uniforms, u.Name)
		}
	}
	for _, p := range w.params.inputs {
		info.Parameters = append(info.Parameters, p.Name)
	}
	return info
}

// writeModule generates the whole file.
func (w *Writer) writeModule() error {
	// 1. Banner, header include and @cpp
	w.writeLine(fileBanner, w.fullName, w.options.SourceExtension)
	w.writeLine("#include \"%s.h\"", w.fullName)
	w.writeLine("#if SK_SUPPORT_GPU")
	w.writeSection(SectionCPP, "")

	// 2. GLSL processor class
	w.writeLine("#include \"glsl/GrGLSLColorSpaceXformHelper.h\"")
	w.writeLine("#include \"glsl/GrGLSLFragmentProcessor.h\"")
	w.writeLine("#include \"glsl/GrGLSLFragmentShaderBuilder.h\"")
	w.writeLine("#include \"glsl/GrGLSLProgramBuilder.h\"")
	w.writeLine("#include \"SkSLCPP.h\"")
	w.writeLine("#include \"SkSLUtil.h\"")
	w.writeLine("class %s : public GrGLSLFragmentProcessor {", w.glslName)
	w.writeLine("public:")
	w.pushIndent()
	w.writeLine("%s() {}", w.glslName)
	if err := w.writeEmitCode(); err != nil {
		return err
	}
	w.popIndent()
	w.writeLine("private:")
	w.pushIndent()
	w.writeSetData()
	w.writePrivateVars()
	w.writeUniformFields()
	w.popIndent()
	w.writeLine("};")

	// 3. Instance creation
	w.writeLine("GrGLSLFragmentProcessor* %s::onCreateGLSLInstance() const {", w.fullName)
	w.pushIndent()
	w.writeLine("return new %s();", w.glslName)
	w.popIndent()
	w.writeLine("}")

	// 4. Key, equality, clone, test hook
	w.writeGetKey()
	w.writeIsEqual()
	w.writeClone()
	w.writeTest()

	// 5. @cppEnd
	w.writeSection(SectionCPPEnd, "")
	w.writeLine("#endif")
	return nil
}

// writeSection splices the named section verbatim. It reports whether the
// section exists.
func (w *Writer) writeSection(name, prefix string) bool {
	s := w.params.sections.get(name)
	if s == nil {
		return false
	}
	w.out.WriteString(prefix)
	w.out.WriteString(s.Text)
	if !strings.HasSuffix(s.Text, "\n") {
		w.out.WriteByte('\n')
	}
	return true
}

// writePrivateVars declares the GLSL-class fields backing private globals.
func (w *Writer) writePrivateVars() {
	for _, decl := range w.params.decls {
		if Classify(decl.Var) == ClassPrivate {
			w.writeLine("%s %s;", FieldType(decl.Var.Type), decl.Var.Name)
		}
	}
}

// writePrivateVarValues assigns private globals their initial values.
func (w *Writer) writePrivateVarValues() {
	for _, decl := range w.params.decls {
		if Classify(decl.Var) == ClassPrivate && decl.Value != nil {
			w.writeLine("%s = %s;", decl.Var.Name, sksl.Describe(decl.Value))
		}
	}
}

// writeUniformFields declares the uniform slot handles and, if needed, the
// color-space helper.
func (w *Writer) writeUniformFields() {
	for _, u := range w.params.uniforms {
		if needsUniformVar(u) && !u.IsIn() {
			w.writeLine("UniformHandle %s;", uniformHandleName(u))
		}
	}
	for _, p := range w.params.inputs {
		if needsUniformVar(p) {
			w.writeLine("UniformHandle %s;", uniformHandleName(p))
		}
	}
	if w.params.colorSpace != nil {
		w.writeLine("GrGLSLColorSpaceXformHelper fColorSpaceHelper;")
	}
}

// Output helpers

// writeLine writes a line with indentation and newline.
//
//nolint:goprintffuncname
func (w *Writer) writeLine(format string, args ...any) {
	w.writeIndent()
	if len(args) == 0 {
		w.out.WriteString(format)
	} else {
		fmt.Fprintf(&w.out, format, args...)
	}
	w.out.WriteByte('\n')
}

// writeIndent writes the current indentation.
func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.out.WriteString("    ")
	}
}

// pushIndent increases indentation.
func (w *Writer) pushIndent() {
	w.indent++
}

// popIndent decreases indentation.
func (w *Writer) popIndent() {
	if w.indent > 0 {
		w.indent--
	}
}
