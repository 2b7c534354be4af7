// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"strings"

	"github.com/gogpu/fpgen/sksl"
)

// writeSetData writes onSetData, which uploads the per-instance values of
// "in uniform" variables and then runs the @setData section.
func (w *Writer) writeSetData() {
	section := w.params.sections.get(SectionSetData)
	pdman := "pdman"
	if section != nil {
		pdman = section.Argument
	}
	w.writeLine("void onSetData(const GrGLSLProgramDataManager& %s, const GrFragmentProcessor& _proc) override {", pdman)
	w.pushIndent()

	wroteProcessor := false
	writeProcessor := func() {
		if !wroteProcessor {
			w.writeLine("const %s& _outer = _proc.cast<%s>();", w.fullName, w.fullName)
			w.writeLine("(void) _outer;")
			wroteProcessor = true
		}
	}

	var uploads []*sksl.Variable
	for _, u := range w.params.uniforms {
		if u.IsIn() && !w.params.isDuplicateColorSpace(u) {
			uploads = append(uploads, u)
		}
	}
	if len(uploads) > 0 {
		writeProcessor()
		w.writeLine("{")
		w.pushIndent()
		for _, u := range uploads {
			w.writeUpload(pdman, u)
		}
		w.popIndent()
		w.writeLine("}")
	}

	if section != nil {
		for _, decl := range w.params.decls {
			v := decl.Var
			switch {
			case needsUniformVar(v):
				w.writeLine("UniformHandle& %s = %s;", v.Name, uniformHandleName(v))
				w.writeLine("(void) %s;", v.Name)
			case isInput(v):
				writeProcessor()
				w.writeLine("auto %s = _outer.%s();", v.Name, v.Name)
				w.writeLine("(void) %s;", v.Name)
			}
		}
		w.writeSection(SectionSetData, "")
	}
	w.popIndent()
	w.writeLine("}")
}

// writeUpload writes the upload of one "in uniform" variable from its
// accessor. Conditionally present uniforms are only set when registered.
func (w *Writer) writeUpload(pdman string, u *sksl.Variable) {
	if u.Type.IsColorSpaceXform() {
		w.writeLine("if (fColorSpaceHelper.isValid()) {")
		w.pushIndent()
		w.writeLine("fColorSpaceHelper.setData(%s, _outer.%s().get());", pdman, u.Name)
		w.popIndent()
		w.writeLine("}")
		return
	}

	handle := uniformHandleName(u)
	if u.IsConditional() {
		w.writeLine("if (%s.isValid()) {", handle)
		w.pushIndent()
	}
	switch {
	case u.Type.Is("float4"), u.Type.Is("half4"):
		w.writeLine("const %s %sValue = _outer.%s();", ParameterType(u.Type), u.Name, u.Name)
		w.writeLine("%s.set4fv(%s, 1, (float*) &%sValue);", pdman, handle, u.Name)
	case u.Type.Is("float4x4"), u.Type.Is("half4x4"):
		w.writeLine("float %sValue[16];", u.Name)
		w.writeLine("_outer.%s().asColMajorf(%sValue);", u.Name, u.Name)
		w.writeLine("%s.setMatrix4f(%s, %sValue);", pdman, handle, u.Name)
	case u.Type.Is("float2"), u.Type.Is("half2"):
		w.writeLine("const SkPoint %sValue = _outer.%s();", u.Name, u.Name)
		w.writeLine("%s.set2f(%s, %sValue.fX, %sValue.fY);", pdman, handle, u.Name, u.Name)
	default:
		w.writeLine("%s.set1f(%s, _outer.%s());", pdman, handle, u.Name)
	}
	if u.IsConditional() {
		w.popIndent()
		w.writeLine("}")
	}
}

// writeGetKey writes onGetGLSLProcessorKey. Uniform values never change the
// generated shader, so only layout(key) inputs and the color-space
// transform contribute.
func (w *Writer) writeGetKey() {
	for _, decl := range w.params.decls {
		v := decl.Var
		if v.Modifiers.Layout.Key != sksl.KeyNone && v.IsUniform() {
			w.report(NewErrorAt(ErrKeyOnUniform, v.Pos, "layout(key) may not be specified on uniforms"))
		}
	}

	w.writeLine("void %s::onGetGLSLProcessorKey(const GrShaderCaps& caps, GrProcessorKeyBuilder* b) const {", w.fullName)
	w.pushIndent()
	for _, p := range w.params.inputs {
		field := FieldName(p.Name)
		if p.Type.IsColorSpaceXform() {
			w.writeLine("b->add32(GrColorSpaceXform::XformKey(%s.get()));", field)
			continue
		}
		if p.IsUniform() {
			continue
		}
		switch p.Modifiers.Layout.Key {
		case sksl.KeyKey:
			w.writeKeyValue(p, field)
		case sksl.KeyIdentity:
			if !p.Type.IsMatrix() {
				w.report(NewErrorAt(ErrKeyModeType, p.Pos, "layout(key=identity) requires matrix type"))
				continue
			}
			w.writeLine("b->add32(%s.isIdentity() ? 1 : 0);", field)
		}
	}
	w.popIndent()
	w.writeLine("}")
}

// writeKeyValue writes the 32-bit key words of a layout(key) input.
func (w *Writer) writeKeyValue(p *sksl.Variable, field string) {
	var parts []string
	switch t := p.Type; {
	case t.Kind == sksl.TypeScalar:
		parts = []string{field}
	case t.Is("float2"), t.Is("half2"):
		parts = []string{field + ".fX", field + ".fY"}
	case t.Is("half4"):
		parts = []string{field + ".fRGBA[0]", field + ".fRGBA[1]", field + ".fRGBA[2]", field + ".fRGBA[3]"}
	case t.Is("float4"), t.Is("int4"):
		parts = []string{field + ".x()", field + ".y()", field + ".width()", field + ".height()"}
	default:
		w.report(NewErrorAt(ErrKeyModeType, p.Pos, "no automatic key handling for %s", t.Name))
		return
	}
	for _, part := range parts {
		w.writeLine("b->add32(%s);", part)
	}
}

// writeIsEqual writes onIsEqual, comparing every instance input.
func (w *Writer) writeIsEqual() {
	w.writeLine("bool %s::onIsEqual(const GrFragmentProcessor& other) const {", w.fullName)
	w.pushIndent()
	w.writeLine("const %s& that = other.cast<%s>();", w.fullName, w.fullName)
	w.writeLine("(void) that;")
	for _, p := range w.params.inputs {
		field := FieldName(p.Name)
		w.writeLine("if (%s != that.%s) return false;", field, field)
	}
	w.writeLine("return true;")
	w.popIndent()
	w.writeLine("}")
}

// writeClone writes the copy constructor and clone(), unless @clone
// supplies them. Custom @fields cannot be copied automatically.
func (w *Writer) writeClone() {
	if w.writeSection(SectionClone, "") {
		return
	}
	if fields := w.params.sections.get(SectionFields); fields != nil {
		w.report(NewErrorAt(ErrMissingSection, fields.Pos,
			"fragment processors with custom @fields must also have a custom @clone"))
		return
	}

	transforms := w.params.sections.all(SectionCoordTransform)
	var sb strings.Builder
	sb.WriteString(w.fullName + "::" + w.fullName + "(const " + w.fullName + "& src)\n")
	sb.WriteString(": INHERITED(k" + w.fullName + "_ClassID, src.optimizationFlags())")
	for _, p := range w.params.inputs {
		field := FieldName(p.Name)
		sb.WriteString("\n, " + field + "(src." + field + ")")
	}
	for _, s := range transforms {
		field := FieldName(s.Argument) + "CoordTransform"
		sb.WriteString("\n, " + field + "(src." + field + ")")
	}
	sb.WriteString(" {")
	w.writeLine("%s", sb.String())

	w.pushIndent()
	for _, p := range w.params.inputs {
		if p.Type.IsSampler() {
			w.writeLine("this->addTextureSampler(&%s);", FieldName(p.Name))
		}
	}
	for _, s := range transforms {
		w.writeLine("this->addCoordTransform(&%sCoordTransform);", FieldName(s.Argument))
	}
	w.popIndent()
	w.writeLine("}")
	w.writeLine("std::unique_ptr<GrFragmentProcessor> %s::clone() const {", w.fullName)
	w.pushIndent()
	w.writeLine("return std::unique_ptr<GrFragmentProcessor>(new %s(*this));", w.fullName)
	w.popIndent()
	w.writeLine("}")
}

// writeTest writes the test factory when a @test section is present.
func (w *Writer) writeTest() {
	test := w.params.sections.get(SectionTest)
	if test == nil {
		return
	}
	w.writeLine("GR_DEFINE_FRAGMENT_PROCESSOR_TEST(%s);", w.fullName)
	w.writeLine("#if GR_TEST_UTILS")
	w.writeLine("std::unique_ptr<GrFragmentProcessor> %s::TestCreate(GrProcessorTestData* %s) {", w.fullName, test.Argument)
	w.writeSection(SectionTest, "")
	w.writeLine("}")
	w.writeLine("#endif")
}
