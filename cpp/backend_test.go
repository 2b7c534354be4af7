// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"errors"
	"strings"
	"testing"
)

// =============================================================================
// Framing
// =============================================================================

func TestCompile_Framing(t *testing.T) {
	src := program(
		`{"kind":"section","name":"cpp","text":"// cpp section\n"},
		 {"kind":"section","name":"cppEnd","text":"// cppEnd section"}`,
		outAssign(`{"kind":"ref","name":"sk_InColor"}`))
	code, info := generate(t, src)

	if !strings.HasPrefix(code, "/****") {
		t.Errorf("output does not start with banner:\n%s", code)
	}
	mustContain(t, code,
		"This file was autogenerated from GrTest.fp; do not modify.",
		"#include \"GrTest.h\"\n#if SK_SUPPORT_GPU\n// cpp section\n#include \"glsl/GrGLSLColorSpaceXformHelper.h\"",
		"class GrGLSLTest : public GrGLSLFragmentProcessor {\npublic:\n    GrGLSLTest() {}\n",
		"    void emitCode(EmitArgs& args) override {\n",
		"        GrGLSLFPFragmentBuilder* fragBuilder = args.fFragBuilder;\n",
		"        const GrTest& _outer = args.fFp.cast<GrTest>();\n",
		"GrGLSLFragmentProcessor* GrTest::onCreateGLSLInstance() const {\n    return new GrGLSLTest();\n}\n",
		"// cppEnd section\n#endif\n",
	)
	if info.ClassName != "GrTest" {
		t.Errorf("ClassName = %q, want GrTest", info.ClassName)
	}
	if len(info.Sections) != 2 || info.Sections[0] != "cpp" || info.Sections[1] != "cppEnd" {
		t.Errorf("Sections = %v, want [cpp cppEnd]", info.Sections)
	}
}

func TestCompile_Options(t *testing.T) {
	opts := DefaultOptions()
	opts.ClassPrefix = "My"
	opts.GLSLPrefix = "MyGLSL"
	opts.SourceExtension = ".sksl"
	code, _, err := Compile(decodeProgram(t, program("", outAssign(`{"kind":"ref","name":"sk_InColor"}`))), "Blur", opts)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	mustContain(t, code,
		"autogenerated from MyBlur.sksl",
		"class MyGLSLBlur : public GrGLSLFragmentProcessor",
		"bool MyBlur::onIsEqual(const GrFragmentProcessor& other) const {",
	)
}

func TestCompile_Deterministic(t *testing.T) {
	src := program(
		`{"kind":"var","vars":[{"name":"radius","type":"half","flags":["in"],"layout":{"key":"key"}}]},
		 {"kind":"var","vars":[{"name":"color","type":"half4","flags":["uniform"]}]}`,
		outAssign(inColorTimesVar("radius")))
	first, _ := generate(t, src)
	for i := 0; i < 5; i++ {
		again, _ := generate(t, src)
		if again != first {
			t.Fatalf("run %d produced different output", i)
		}
	}
}

// =============================================================================
// Shader template
// =============================================================================

func TestCompile_ParameterInShader(t *testing.T) {
	src := program(
		`{"kind":"var","vars":[{"name":"radius","type":"half","flags":["in"],"layout":{"key":"key"}}]}`,
		outAssign(inColorTimesVar("radius")))
	code, info := generate(t, src)

	mustContain(t, code,
		`fragBuilder->codeAppendf("%s = %s * %f;\n", args.fOutputColor, args.fInputColor ? args.fInputColor : "half4(1)", _outer.radius());`,
		"    b->add32(fRadius);\n",
		"    if (fRadius != that.fRadius) return false;\n",
	)
	if info.FormatArgs != 3 {
		t.Errorf("FormatArgs = %d, want 3", info.FormatArgs)
	}
	if len(info.Parameters) != 1 || info.Parameters[0] != "radius" {
		t.Errorf("Parameters = %v, want [radius]", info.Parameters)
	}
}

func TestCompile_UniformInShader(t *testing.T) {
	src := program(
		`{"kind":"var","vars":[{"name":"color","type":"half4","flags":["uniform"]}]}`,
		outAssign(inColorTimesVar("color")))
	code, info := generate(t, src)

	mustContain(t, code,
		`fColorVar = args.fUniformHandler->addUniform(kFragment_GrShaderFlag, kHalf4_GrSLType, kDefault_GrSLPrecision, "color");`,
		`args.fUniformHandler->getUniformCStr(fColorVar)`,
		"    UniformHandle fColorVar;\n",
	)
	// Uniform values do not change the shader, so they are never keyed.
	mustNotContain(t, code, "b->add32")
	if len(info.Uniforms) != 1 || info.Uniforms[0] != "color" {
		t.Errorf("Uniforms = %v, want [color]", info.Uniforms)
	}
}

func TestCompile_UniformPrecision(t *testing.T) {
	src := program(
		`{"kind":"var","vars":[{"name":"scale","type":"float","flags":["uniform","highp"]}]}`,
		outAssign(inColorTimesVar("scale")))
	code, _ := generate(t, src)
	mustContain(t, code, `addUniform(kFragment_GrShaderFlag, kFloat_GrSLType, kHigh_GrSLPrecision, "scale");`)
}

func TestCompile_ConditionalUniform(t *testing.T) {
	src := program(
		`{"kind":"var","vars":[{"name":"x","type":"half","flags":["uniform"],"layout":{"when":"fUseX"}}]}`,
		outAssign(inColorTimesVar("x")))
	code, _ := generate(t, src)
	mustContain(t, code,
		"        if (fUseX) {\n            fXVar = args.fUniformHandler->addUniform(",
		`fXVar.isValid() ? args.fUniformHandler->getUniformCStr(fXVar) : "0"`,
	)
}

func TestCompile_PrivateVariable(t *testing.T) {
	src := program(
		`{"kind":"var","vars":[{"name":"k","type":"float","init":{"kind":"float","value":2}}]}`,
		outAssign(inColorTimesVar("k")))
	code, _ := generate(t, src)
	mustContain(t, code,
		"        k = 2.0;\n",
		`fragBuilder->codeAppendf("float k = %f;\n%s = %s * k;\n", k, args.fOutputColor,`,
		"    float k;\n",
	)
}

func TestCompile_Modulo(t *testing.T) {
	body := `{"kind":"var","vars":[{"name":"a","type":"int","init":{"kind":"int","value":7}}]},
		{"kind":"var","vars":[{"name":"b","type":"int","init":{"kind":"binary","op":"%","left":{"kind":"ref","name":"a"},"right":{"kind":"int","value":3}}}]}`
	code, info := generate(t, program("", body))
	mustContain(t, code, `fragBuilder->codeAppendf("int a = 7;\nint b = a %% 3;\n");`)
	if info.FormatArgs != 0 {
		t.Errorf("FormatArgs = %d, want 0", info.FormatArgs)
	}
}

func TestCompile_ModuloAssign(t *testing.T) {
	body := `{"kind":"var","vars":[{"name":"i","type":"int","init":{"kind":"int","value":7}}]},
		{"kind":"expr","expr":{"kind":"binary","op":"%=","left":{"kind":"ref","name":"i"},"right":{"kind":"int","value":3}}}`
	code, info := generate(t, program("", body))
	mustContain(t, code, `fragBuilder->codeAppendf("int i = 7;\ni %%= 3;\n");`)
	if info.FormatArgs != 0 {
		t.Errorf("FormatArgs = %d, want 0", info.FormatArgs)
	}
}

func TestCompile_Parentheses(t *testing.T) {
	// (a + b) * c keeps its parentheses; a + b * c gets none.
	body := `{"kind":"var","vars":[{"name":"a","type":"float","init":{"kind":"float","value":1}}]},
		{"kind":"var","vars":[{"name":"r","type":"float","init":{"kind":"binary","op":"*",
			"left":{"kind":"binary","op":"+","left":{"kind":"ref","name":"a"},"right":{"kind":"ref","name":"a"}},
			"right":{"kind":"ref","name":"a"}}}]},
		{"kind":"var","vars":[{"name":"s","type":"float","init":{"kind":"binary","op":"+",
			"left":{"kind":"ref","name":"a"},
			"right":{"kind":"binary","op":"*","left":{"kind":"ref","name":"a"},"right":{"kind":"ref","name":"a"}}}}]}`
	code, _ := generate(t, program("", body))
	mustContain(t, code, `float r = (a + a) * a;\n`, `float s = a + a * a;\n`)
}

func TestCompile_Setting(t *testing.T) {
	body := `{"kind":"var","vars":[{"name":"s","type":"float","init":{"kind":"setting","name":"sk_Args.scale","type":"float"}}]}`
	code, _ := generate(t, program("", body))
	mustContain(t, code, `fragBuilder->codeAppendf("float s = %f;\n", _outer.fScale);`)
}

func TestCompile_StaticIf(t *testing.T) {
	src := program(
		`{"kind":"var","vars":[{"name":"flag","type":"bool","flags":["in"]}]}`,
		`{"kind":"if","static":true,"test":{"kind":"ref","name":"flag"},"then":[`+outAssign(`{"kind":"ref","name":"sk_InColor"}`)+`]}`)
	code, _ := generate(t, src)
	mustContain(t, code, `fragBuilder->codeAppendf("@if (%s) %s = %s;\n", (_outer.flag() ? "true" : "false"), args.fOutputColor,`)
}

func TestCompile_HelperFunctionAndStruct(t *testing.T) {
	src := `{"elements":[
		{"kind":"struct","name":"S","fields":[{"name":"a","type":"float"}]},
		{"kind":"function","name":"twice","returns":"float","params":[{"name":"v","type":"float"}],"body":[
			{"kind":"return","expr":{"kind":"binary","op":"*","left":{"kind":"ref","name":"v"},"right":{"kind":"float","value":2}}}
		]},
		{"kind":"function","name":"main","body":[
			{"kind":"var","vars":[{"name":"x","type":"float","init":{"kind":"call","name":"twice","args":[{"kind":"float","value":0.5}]}}]}
		]}
	]}`
	code, _ := generate(t, src)
	mustContain(t, code,
		`fragBuilder->codeAppendf("struct S {\n    float a;\n};\nfloat twice(float v) {\n    return v * 2.0;\n}\nfloat x = twice(0.5);\n");`)
}

// =============================================================================
// Builtins
// =============================================================================

func TestCompile_TransformedCoordsMemoized(t *testing.T) {
	coord := `{"kind":"index","base":{"kind":"ref","name":"sk_TransformedCoords2D"},"index":{"kind":"int","value":0}}`
	body := `{"kind":"var","vars":[{"name":"a","type":"float2","init":` + coord + `}]},
		{"kind":"var","vars":[{"name":"b","type":"float2","init":` + coord + `}]}`
	code, info := generate(t, program("", body))

	helper := "SkString sk_TransformedCoords2D_0 = fragBuilder->ensureCoords2D(args.fTransformedCoords[0]);"
	if n := strings.Count(code, helper); n != 1 {
		t.Errorf("coordinate helper written %d times, want 1:\n%s", n, code)
	}
	mustContain(t, code, `"float2 a = %s;\nfloat2 b = %s;\n", sk_TransformedCoords2D_0.c_str(), sk_TransformedCoords2D_0.c_str());`)
	if len(info.TransformedCoords) != 1 || info.TransformedCoords[0] != 0 {
		t.Errorf("TransformedCoords = %v, want [0]", info.TransformedCoords)
	}
}

func TestCompile_BuiltinIndexNotLiteral(t *testing.T) {
	body := `{"kind":"var","vars":[{"name":"i","type":"int","init":{"kind":"int","value":0}}]},
		{"kind":"var","vars":[{"name":"c","type":"float2","init":{"kind":"index",
			"base":{"kind":"ref","name":"sk_TransformedCoords2D"},"index":{"kind":"ref","name":"i"}}}]}`
	code, diags := generateDiagnostics(t, program("", body), DefaultOptions())
	if !diags.Has(ErrBuiltinIndex) {
		t.Errorf("expected BuiltinIndex error, got %v", diags)
	}
	if code == "" {
		t.Error("expected generated text alongside recoverable errors")
	}
	mustNotContain(t, code, "ensureCoords2D")
}

func TestCompile_BuiltinIndexPolicy(t *testing.T) {
	body := `{"kind":"var","vars":[{"name":"c","type":"float2","init":{"kind":"index",
		"base":{"kind":"ref","name":"sk_TransformedCoords2D"},"index":{"kind":"int","value":9}}}]}`

	_, info := generate(t, program("", body))
	if len(info.TransformedCoords) != 1 || info.TransformedCoords[0] != 9 {
		t.Errorf("unchecked: TransformedCoords = %v, want [9]", info.TransformedCoords)
	}

	opts := DefaultOptions()
	opts.IndexPolicy = IndexChecked
	_, diags := generateDiagnostics(t, program("", body), opts)
	if !diags.Has(ErrBuiltinIndex) {
		t.Errorf("checked: expected BuiltinIndex error, got %v", diags)
	}
}

func TestCompile_TextureSampling(t *testing.T) {
	src := program(
		`{"kind":"var","vars":[{"name":"a","type":"sampler2D","flags":["in"]}]},
		 {"kind":"var","vars":[{"name":"x","type":"half","flags":["in"]}]},
		 {"kind":"var","vars":[{"name":"b","type":"sampler2D","flags":["in"]}]}`,
		outAssign(`{"kind":"call","name":"texture","type":"half4","args":[
			{"kind":"ref","name":"b"},
			{"kind":"index","base":{"kind":"ref","name":"sk_TransformedCoords2D"},"index":{"kind":"int","value":0}}]}`))
	code, _ := generate(t, src)
	mustContain(t, code,
		`"%s = texture(%s, %s).%s;\n"`,
		"fragBuilder->getProgramBuilder()->samplerVariable(args.fTexSamplers[1]).c_str()",
		"fragBuilder->getProgramBuilder()->samplerSwizzle(args.fTexSamplers[1]).c_str()",
		"    this->addTextureSampler(&fA);\n    this->addTextureSampler(&fB);\n",
	)
}

func TestCompile_TextureSamplersBuiltin(t *testing.T) {
	src := program("",
		outAssign(`{"kind":"call","name":"texture","type":"half4","args":[
			{"kind":"index","base":{"kind":"ref","name":"sk_TextureSamplers"},"index":{"kind":"int","value":2}},
			{"kind":"index","base":{"kind":"ref","name":"sk_TransformedCoords2D"},"index":{"kind":"int","value":0}}]}`))
	code, _ := generate(t, src)
	mustContain(t, code,
		"samplerVariable(args.fTexSamplers[2]).c_str()",
		"samplerSwizzle(args.fTexSamplers[2]).c_str()",
	)
}

func TestCompile_TextureSamplersOutOfRange(t *testing.T) {
	src := program("",
		outAssign(`{"kind":"call","name":"texture","type":"half4","args":[
			{"kind":"index","base":{"kind":"ref","name":"sk_TextureSamplers"},"index":{"kind":"int","value":9}},
			{"kind":"index","base":{"kind":"ref","name":"sk_TransformedCoords2D"},"index":{"kind":"int","value":0}}]}`))
	opts := DefaultOptions()
	opts.IndexPolicy = IndexChecked
	code, diags := generateDiagnostics(t, src, opts)
	if diags.Len() != 1 || !diags.Has(ErrBuiltinIndex) {
		t.Errorf("expected one BuiltinIndex error, got %v", diags)
	}
	mustContain(t, code, `"%s = texture(, %s);\n"`)
	mustNotContain(t, code, "samplerSwizzle", "fTexSamplers[9]")
}

// =============================================================================
// Color space
// =============================================================================

const colorSpaceCall = `{"kind":"call","name":"COLORSPACE","type":"half4","args":[{"kind":"ref","name":"sk_InColor"},{"kind":"ref","name":"xform"}]}`

func TestCompile_ColorSpace(t *testing.T) {
	src := program(
		`{"kind":"var","vars":[{"name":"xform","type":"colorSpaceXform","flags":["in","uniform"]}]}`,
		outAssign(colorSpaceCall))
	code, info := generate(t, src)

	mustContain(t, code,
		"        fColorSpaceHelper.emitCode(args.fUniformHandler, _outer.xform().get());\n",
		`fragBuilder->codeAppendf("half4 _tmpVar0;\n%s = %s%s%s;\n"`,
		`fColorSpaceHelper.isValid() ? "(_tmpVar0 = " : ""`,
		`SkStringPrintf(", half4(clamp((%s * half4(_tmpVar0.rgb, 1.0)).rgb, 0.0, _tmpVar0.a), _tmpVar0.a))", args.fUniformHandler->getUniformCStr(fColorSpaceHelper.gamutXformUniform())).c_str()`,
		"            if (fColorSpaceHelper.isValid()) {\n                fColorSpaceHelper.setData(pdman, _outer.xform().get());\n            }\n",
		"    GrGLSLColorSpaceXformHelper fColorSpaceHelper;\n",
		"    b->add32(GrColorSpaceXform::XformKey(fXform.get()));\n",
	)
	mustNotContain(t, code, "fXformVar")
	if !info.ColorSpaceHelper {
		t.Error("ColorSpaceHelper = false, want true")
	}
}

func TestCompile_DuplicateColorSpace(t *testing.T) {
	src := program(
		`{"kind":"var","vars":[{"name":"xform","type":"colorSpaceXform","flags":["in","uniform"]}]},
		 {"kind":"var","vars":[{"name":"other","type":"colorSpaceXform","flags":["in","uniform"]}]}`,
		outAssign(colorSpaceCall))
	code, diags := generateDiagnostics(t, src, DefaultOptions())
	if !diags.Has(ErrDuplicateColorSpace) {
		t.Errorf("expected DuplicateColorSpace error, got %v", diags)
	}
	if n := strings.Count(code, "fColorSpaceHelper.emitCode("); n != 1 {
		t.Errorf("helper activated %d times, want 1", n)
	}
	if n := strings.Count(code, "fColorSpaceHelper.setData("); n != 1 {
		t.Errorf("helper uploads %d times, want 1", n)
	}
}

// =============================================================================
// Fatal errors
// =============================================================================

func TestCompile_UnsupportedUniformTypeIsFatal(t *testing.T) {
	src := program(`{"kind":"var","vars":[{"name":"b","type":"bool","flags":["uniform"]}]}`, "")
	code, _, err := Compile(decodeProgram(t, src), "Test", DefaultOptions())
	if err == nil {
		t.Fatal("expected error")
	}
	if code != "" {
		t.Errorf("fatal error returned text:\n%s", code)
	}
	var e *Error
	if !errors.As(err, &e) || !e.IsFatal() {
		t.Errorf("expected fatal *Error, got %v", err)
	}
}

func TestCompile_UniformTypeWithoutUploadIsFatal(t *testing.T) {
	for _, typ := range []string{"int", "float3", "half3", "float2x2", "half2x2", "float3x3", "half3x3"} {
		t.Run(typ, func(t *testing.T) {
			src := program(`{"kind":"var","vars":[{"name":"v","type":"`+typ+`","flags":["in","uniform"]}]}`, "")
			code, _, err := Compile(decodeProgram(t, src), "Test", DefaultOptions())
			var e *Error
			if !errors.As(err, &e) || e.Kind != ErrInternal {
				t.Fatalf("expected Internal error, got %v", err)
			}
			if code != "" {
				t.Errorf("fatal error returned text:\n%s", code)
			}
		})
	}
}

func TestCompile_ColorSpaceArityIsFatal(t *testing.T) {
	src := program(
		`{"kind":"var","vars":[{"name":"xform","type":"colorSpaceXform","flags":["in","uniform"]}]}`,
		outAssign(`{"kind":"call","name":"COLORSPACE","type":"half4","args":[{"kind":"ref","name":"sk_InColor"}]}`))
	_, _, err := Compile(decodeProgram(t, src), "Test", DefaultOptions())
	var e *Error
	if !errors.As(err, &e) || e.Kind != ErrInternal {
		t.Errorf("expected Internal error, got %v", err)
	}
}

type collectingReporter struct {
	errs []*Error
}

func (r *collectingReporter) Report(err *Error) { r.errs = append(r.errs, err) }

func TestCompile_Reporter(t *testing.T) {
	src := program(
		`{"kind":"section","name":"bogus","text":"x"},
		 {"kind":"var","vars":[{"name":"u","type":"half","flags":["uniform"],"layout":{"key":"key"}}]}`,
		"")
	r := &collectingReporter{}
	opts := DefaultOptions()
	opts.Reporter = r
	_, diags := generateDiagnostics(t, src, opts)
	if len(r.errs) != diags.Len() || diags.Len() != 2 {
		t.Errorf("reporter saw %d errors, diagnostics %d, want 2", len(r.errs), diags.Len())
	}
}
