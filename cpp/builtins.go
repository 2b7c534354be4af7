// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"fmt"

	"github.com/gogpu/fpgen/sksl"
)

// Builtin functions with special emission.
const (
	builtinColorSpace = "COLORSPACE"
	builtinTexture    = "texture"
)

// transformedCoordsName returns the emitCode local holding the 2D form of
// a transformed coordinate set.
func transformedCoordsName(index int64) string {
	return fmt.Sprintf("%s_%d", sksl.TransformedCoordsName, index)
}

// builtinArray returns the builtin array a variable names, or BuiltinNone.
func builtinArray(e sksl.Expression) sksl.Builtin {
	ref, ok := e.(*sksl.VariableReference)
	if !ok {
		return sksl.BuiltinNone
	}
	switch b := ref.Variable.Modifiers.Layout.Builtin; b {
	case sksl.BuiltinTransformedCoords, sksl.BuiltinTextureSamplers:
		return b
	default:
		return sksl.BuiltinNone
	}
}

// builtinLimit returns the name and checked bound of a builtin array.
func (w *Writer) builtinLimit(builtin sksl.Builtin) (string, int) {
	if builtin == sksl.BuiltinTextureSamplers {
		return sksl.TextureSamplersName, w.options.MaxTextureSamplers
	}
	return sksl.TransformedCoordsName, w.options.MaxTransformedCoords
}

// inBounds reports whether a literal index into a builtin array is valid
// under the index policy.
func (w *Writer) inBounds(builtin sksl.Builtin, index int64) bool {
	_, limit := w.builtinLimit(builtin)
	return index >= 0 && (w.options.IndexPolicy != IndexChecked || index < int64(limit))
}

// builtinIndex validates a subscript of a builtin array. Invalid indices
// are reported and ok is false; the caller then writes nothing for the
// subscript so the template stays balanced.
func (w *Writer) builtinIndex(ix *sksl.IndexExpression, builtin sksl.Builtin) (int64, bool) {
	name, _ := w.builtinLimit(builtin)
	lit, ok := ix.Index.(*sksl.IntLiteral)
	if !ok {
		w.report(NewErrorAt(ErrBuiltinIndex, ix.Pos, "index into %s must be an integer literal", name))
		return 0, false
	}
	if !w.inBounds(builtin, lit.Value) {
		w.report(NewErrorAt(ErrBuiltinIndex, ix.Pos, "index %d into %s is out of range", lit.Value, name))
		return 0, false
	}
	return lit.Value, true
}

// writeIndexExpression writes base[index]. Subscripts of the builtin
// coordinate and sampler arrays resolve to runtime names.
func (w *Writer) writeIndexExpression(ix *sksl.IndexExpression) error {
	switch builtin := builtinArray(ix.Base); builtin {
	case sksl.BuiltinTransformedCoords:
		index, ok := w.builtinIndex(ix, builtin)
		if !ok {
			return nil
		}
		if _, seen := w.writtenCoords[index]; !seen {
			w.writtenCoords[index] = struct{}{}
			w.coordOrder = append(w.coordOrder, index)
		}
		w.format.placeholder("%s", transformedCoordsName(index)+".c_str()")
		return nil
	case sksl.BuiltinTextureSamplers:
		index, ok := w.builtinIndex(ix, builtin)
		if !ok {
			return nil
		}
		w.format.placeholder("%s", samplerVariable(texSampler(index)))
		return nil
	}

	if err := w.writeExpression(ix.Base, sksl.PrecedencePostfix); err != nil {
		return err
	}
	w.format.write("[")
	if err := w.writeExpression(ix.Index, sksl.PrecedenceTopLevel); err != nil {
		return err
	}
	w.format.write("]")
	return nil
}

func texSampler(index int64) string {
	return fmt.Sprintf("args.fTexSamplers[%d]", index)
}

// writeFunctionCall writes a call. COLORSPACE and texture need runtime help.
func (w *Writer) writeFunctionCall(c *sksl.FunctionCall) error {
	if c.Function.Builtin && c.Function.Name == builtinColorSpace {
		return w.writeColorSpaceCall(c)
	}
	w.format.write(c.Function.Name)
	if err := w.writeArguments(c.Arguments); err != nil {
		return err
	}
	if !c.Function.Builtin || c.Function.Name != builtinTexture || len(c.Arguments) == 0 {
		return nil
	}
	handle, ok, err := w.textureHandle(c.Arguments[0])
	if err != nil || !ok {
		return err
	}
	w.format.write(".")
	w.format.placeholder("%s", "fragBuilder->getProgramBuilder()->samplerSwizzle("+handle+").c_str()")
	return nil
}

// textureHandle returns the sampler slot sampled by texture(). ok is false
// when the sampler was an invalid builtin subscript that has already been
// reported.
func (w *Writer) textureHandle(sampler sksl.Expression) (string, bool, error) {
	switch s := sampler.(type) {
	case *sksl.VariableReference:
		if isInput(s.Variable) {
			handle, err := w.params.samplerHandle(s.Variable)
			return handle, err == nil, err
		}
	case *sksl.IndexExpression:
		if builtinArray(s.Base) == sksl.BuiltinTextureSamplers {
			lit, ok := s.Index.(*sksl.IntLiteral)
			if !ok || !w.inBounds(sksl.BuiltinTextureSamplers, lit.Value) {
				return "", false, nil
			}
			return texSampler(lit.Value), true, nil
		}
	}
	return "", false, internalf("texture() sampler must be a processor parameter or %s element",
		sksl.TextureSamplersName)
}

// writeColorSpaceCall writes COLORSPACE(color, xform). When the helper is
// valid at runtime the color is stored in a temporary and transformed;
// otherwise the color passes through unchanged.
func (w *Writer) writeColorSpaceCall(c *sksl.FunctionCall) error {
	if len(c.Arguments) != 2 {
		return internalf("%s expects 2 arguments, got %d", builtinColorSpace, len(c.Arguments))
	}
	ref, ok := c.Arguments[1].(*sksl.VariableReference)
	if !ok || !ref.Variable.Type.IsColorSpaceXform() {
		return internalf("second argument of %s must be a %s variable", builtinColorSpace, sksl.ColorSpaceXformName)
	}
	if ref.Variable != w.params.colorSpace {
		// Rejected duplicate: no helper backs it.
		return w.writeExpression(c.Arguments[0], sksl.PrecedencePostfix)
	}

	tmp := fmt.Sprintf("_tmpVar%d", w.varCount)
	w.varCount++
	w.temporaries = append(w.temporaries, "half4 "+tmp+";")

	w.format.placeholder("%s", `fColorSpaceHelper.isValid() ? "(`+tmp+` = " : ""`)
	if err := w.writeExpression(c.Arguments[0], sksl.PrecedencePostfix); err != nil {
		return err
	}
	transform := `SkStringPrintf(", half4(clamp((%s * half4(` + tmp + `.rgb, 1.0)).rgb, 0.0, ` +
		tmp + `.a), ` + tmp + `.a))", ` +
		`args.fUniformHandler->getUniformCStr(fColorSpaceHelper.gamutXformUniform())).c_str()`
	w.format.placeholder("%s", `fColorSpaceHelper.isValid() ? `+transform+` : ""`)
	return nil
}
