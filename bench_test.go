// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package fpgen

import (
	"runtime"
	"testing"

	"github.com/gogpu/fpgen/cpp"
)

// ---------------------------------------------------------------------------
// Test programs at different complexity levels
// ---------------------------------------------------------------------------

// programPassThrough copies the input color.
const programPassThrough = `{"elements":[
  {"kind":"function","name":"main","body":[
    {"kind":"expr","expr":{"kind":"binary","op":"=","left":{"kind":"ref","name":"sk_OutColor"},"right":{"kind":"ref","name":"sk_InColor"}}}
  ]}
]}`

// programBlend mixes a uniform color with a keyed parameter, a texture
// sample and a color-space conversion.
const programBlend = `{"elements":[
  {"kind":"var","vars":[{"name":"image","type":"sampler2D","flags":["in"]}]},
  {"kind":"var","vars":[{"name":"xform","type":"colorSpaceXform","flags":["in","uniform"]}]},
  {"kind":"var","vars":[{"name":"weight","type":"half","flags":["in"],"layout":{"key":"key"}}]},
  {"kind":"var","vars":[{"name":"tint","type":"half4","flags":["in","uniform"]}]},
  {"kind":"section","name":"coordTransform","argument":"image","text":"SkMatrix::I()"},
  {"kind":"function","name":"main","body":[
    {"kind":"var","vars":[{"name":"c","type":"half4","init":
      {"kind":"call","name":"COLORSPACE","type":"half4","args":[
        {"kind":"call","name":"texture","type":"half4","args":[
          {"kind":"ref","name":"image"},
          {"kind":"index","base":{"kind":"ref","name":"sk_TransformedCoords2D"},"index":{"kind":"int","value":0}}]},
        {"kind":"ref","name":"xform"}]}}]},
    {"kind":"for",
     "initializer":{"kind":"var","vars":[{"name":"i","type":"int","init":{"kind":"int","value":0}}]},
     "test":{"kind":"binary","op":"<","left":{"kind":"ref","name":"i"},"right":{"kind":"int","value":4}},
     "next":{"kind":"prefix","op":"++","operand":{"kind":"ref","name":"i"}},
     "body":[{"kind":"expr","expr":{"kind":"binary","op":"*=","left":{"kind":"ref","name":"c"},"right":{"kind":"ref","name":"weight"}}}]},
    {"kind":"expr","expr":{"kind":"binary","op":"=","left":{"kind":"ref","name":"sk_OutColor"},
      "right":{"kind":"call","name":"mix","type":"half4","args":[
        {"kind":"ref","name":"c"},{"kind":"ref","name":"tint"},{"kind":"swizzle","components":"a","base":{"kind":"ref","name":"sk_InColor"}}]}}}
  ]}
]}`

var programsByComplexity = []struct {
	name   string
	source string
}{
	{"PassThrough", programPassThrough},
	{"Blend", programBlend},
}

// ---------------------------------------------------------------------------
// Benchmarks
// ---------------------------------------------------------------------------

func BenchmarkDecode(b *testing.B) {
	for _, pc := range programsByComplexity {
		b.Run(pc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(pc.source)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				program, err := Decode([]byte(pc.source))
				if err != nil {
					b.Fatalf("decode failed: %v", err)
				}
				runtime.KeepAlive(program)
			}
		})
	}
}

func BenchmarkGenerate(b *testing.B) {
	for _, pc := range programsByComplexity {
		b.Run(pc.name, func(b *testing.B) {
			program, err := Decode([]byte(pc.source))
			if err != nil {
				b.Fatalf("decode failed: %v", err)
			}
			b.ReportAllocs()
			b.ResetTimer()

			var result string
			for i := 0; i < b.N; i++ {
				result, err = GenerateWithOptions(program, pc.name, cpp.DefaultOptions())
				if err != nil {
					b.Fatalf("generate failed: %v", err)
				}
			}
			runtime.KeepAlive(result)
		})
	}
}
