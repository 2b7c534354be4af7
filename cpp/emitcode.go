// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"fmt"
	"strings"

	"github.com/gogpu/fpgen/sksl"
)

// writeEmitCode writes the GLSL class's emitCode method.
//
// The shader template is generated first because it decides which
// temporaries the method must declare up front.
func (w *Writer) writeEmitCode() error {
	shader, err := w.generateShader()
	if err != nil {
		return err
	}
	template := shader.String()
	if n := placeholderCount(template); n != len(shader.args) {
		return internalf("shader template has %d placeholders but %d arguments", n, len(shader.args))
	}
	w.formatArgs = len(shader.args)

	w.writeLine("void emitCode(EmitArgs& args) override {")
	w.pushIndent()
	w.writeLine("GrGLSLFPFragmentBuilder* fragBuilder = args.fFragBuilder;")
	w.writeLine("const %s& _outer = args.fFp.cast<%s>();", w.fullName, w.fullName)
	w.writeLine("(void) _outer;")
	for _, index := range w.coordOrder {
		w.writeLine("SkString %s = fragBuilder->ensureCoords2D(args.fTransformedCoords[%d]);",
			transformedCoordsName(index), index)
	}
	w.writePrivateVarValues()
	for _, u := range w.params.uniforms {
		if err := w.addUniform(u); err != nil {
			return err
		}
		if u == w.params.colorSpace {
			w.writeLine("fColorSpaceHelper.emitCode(args.fUniformHandler, _outer.%s().get());", u.Name)
		}
	}
	w.writeSection(SectionEmitCode, "")

	var sb strings.Builder
	fmt.Fprintf(&sb, "fragBuilder->codeAppendf(\"%s\"", template)
	for _, arg := range shader.args {
		sb.WriteString(", ")
		sb.WriteString(arg)
	}
	sb.WriteString(");")
	w.writeLine("%s", sb.String())
	w.popIndent()
	w.writeLine("}")
	return nil
}

// addUniform writes the registration of a uniform's slot handle.
func (w *Writer) addUniform(v *sksl.Variable) error {
	if !needsUniformVar(v) {
		return nil
	}
	typeTag, err := uniformTypeTag(v)
	if err != nil {
		return err
	}
	when := v.Modifiers.Layout.When
	if when != "" {
		w.writeLine("if (%s) {", when)
		w.pushIndent()
	}
	w.writeLine("%s = args.fUniformHandler->addUniform(kFragment_GrShaderFlag, %s, %s, \"%s\");",
		uniformHandleName(v), typeTag, precisionTag(v.Modifiers), v.Name)
	if when != "" {
		w.popIndent()
		w.writeLine("}")
	}
	return nil
}

// generateShader writes every program element into a fresh shader template.
func (w *Writer) generateShader() (*formatBuffer, error) {
	w.format = newFormatBuffer()
	for _, e := range w.program.Elements {
		if err := w.writeProgramElement(e); err != nil {
			return nil, err
		}
	}
	return w.format, nil
}

// writeProgramElement writes one top-level element into the shader.
// Inputs, uniforms and builtins are not declared in the shader text.
func (w *Writer) writeProgramElement(e sksl.Element) error {
	switch e := e.(type) {
	case *sksl.Section:
		return nil
	case *sksl.VarDeclarations:
		if len(e.Vars) == 0 {
			return nil
		}
		v := e.Vars[0].Var
		if v.IsIn() || v.IsUniform() || v.IsBuiltin() {
			return nil
		}
		if err := w.writeVarDeclarations(e, true); err != nil {
			return err
		}
		w.format.writeLine("")
		return nil
	case *sksl.StructDefinition:
		w.writeStructDefinition(e.Type)
		return nil
	case *sksl.FunctionDefinition:
		return w.writeFunction(e)
	default:
		return internalf("unsupported program element: %T", e)
	}
}

// writeStructDefinition writes a struct declaration.
func (w *Writer) writeStructDefinition(t *sksl.Type) {
	w.format.writeLine("struct " + t.Name + " {")
	w.format.pushIndent()
	for _, f := range t.Fields {
		w.format.writeLine(declarator(f.Type, f.Name) + ";")
	}
	w.format.popIndent()
	w.format.writeLine("};")
}

// writeFunction writes a function. The entry point contributes only its
// body statements; other functions are written whole. Temporaries declared
// while writing the body are placed before it.
func (w *Writer) writeFunction(f *sksl.FunctionDefinition) error {
	outer := w.format
	body := newFormatBuffer()
	w.format = body
	w.temporaries = nil

	isEntry := f.Declaration.Name == w.options.EntryPoint
	if !isEntry {
		body.pushIndent()
	}
	for _, s := range f.Body.Statements {
		if err := w.writeStatement(s); err != nil {
			return err
		}
		body.writeLine("")
	}
	if !isEntry {
		body.popIndent()
	}

	w.format = outer
	if !isEntry {
		params := make([]string, len(f.Declaration.Parameters))
		for i, p := range f.Declaration.Parameters {
			params[i] = parameterModifiers(p.Modifiers) + declarator(p.Type, p.Name)
		}
		outer.writeLine(f.Declaration.ReturnType.Name + " " + f.Declaration.Name + "(" + strings.Join(params, ", ") + ") {")
		outer.pushIndent()
	}
	for _, t := range w.temporaries {
		outer.writeLine(t)
	}
	if !isEntry {
		outer.popIndent()
	}
	outer.appendBuffer(body)
	if !isEntry {
		outer.writeLine("}")
	}
	w.temporaries = nil
	return nil
}

// parameterModifiers returns the qualifiers written before a function
// parameter.
func parameterModifiers(m sksl.Modifiers) string {
	switch {
	case m.Has(sksl.FlagIn | sksl.FlagOut):
		return "inout "
	case m.Has(sksl.FlagOut):
		return "out "
	default:
		return ""
	}
}

// declarator returns "type name", moving array sizes after the name.
func declarator(t *sksl.Type, name string) string {
	base := t
	for base.Kind == sksl.TypeArray {
		base = base.Element
	}
	return base.Name + " " + name + arraySuffix(t)
}

// arraySuffix returns the size suffix of an array type, e.g. "[4]", or ""
// for non-arrays.
func arraySuffix(t *sksl.Type) string {
	if t.Kind != sksl.TypeArray {
		return ""
	}
	if t.Count < 0 {
		return "[]" + arraySuffix(t.Element)
	}
	return fmt.Sprintf("[%d]", t.Count) + arraySuffix(t.Element)
}
