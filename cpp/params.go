// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"fmt"

	"github.com/gogpu/fpgen/sksl"
)

// Class is the generation category of a variable.
type Class uint8

const (
	// ClassBuiltin is a compiler builtin with hand-written emission rules.
	ClassBuiltin Class = iota

	// ClassPrivate is global state owned by the GLSL class and initialized
	// from a runtime accessor.
	ClassPrivate

	// ClassParameter is a constructor-supplied input read through its
	// per-instance accessor.
	ClassParameter

	// ClassUniform is backed by a uniform slot handle.
	ClassUniform

	// ClassLocal is a function local or function parameter.
	ClassLocal
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassBuiltin:
		return "builtin"
	case ClassPrivate:
		return "private"
	case ClassParameter:
		return "parameter"
	case ClassUniform:
		return "uniform"
	case ClassLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Classify returns the category of a variable. Every global variable that
// is not a builtin is exactly one of private, parameter or uniform; an
// "in uniform" variable is a uniform that is also an instance input.
func Classify(v *sksl.Variable) Class {
	switch {
	case v.IsBuiltin():
		return ClassBuiltin
	case v.Storage != sksl.StorageGlobal:
		return ClassLocal
	case v.IsUniform():
		return ClassUniform
	case v.IsIn():
		return ClassParameter
	default:
		return ClassPrivate
	}
}

// isInput reports whether v is an instance input: an "in" variable that is
// not a builtin. Inputs are fields of the processor.
func isInput(v *sksl.Variable) bool {
	return v.IsIn() && !v.IsBuiltin() && v.Storage == sksl.StorageGlobal
}

// needsUniformVar reports whether v gets a plain uniform slot handle. The
// color-space transform uses its helper object instead.
func needsUniformVar(v *sksl.Variable) bool {
	return v.IsUniform() && !v.Type.IsColorSpaceXform() && !v.Type.IsSampler()
}

// parameters is the classification of a program's globals plus its
// sections. It is computed once per run and only read afterwards.
type parameters struct {
	// decls holds every global declaration in program order.
	decls []*sksl.VarDeclaration

	// inputs holds instance inputs in declaration order.
	inputs []*sksl.Variable

	// uniforms holds uniform-flagged, non-sampler globals in declaration order.
	uniforms []*sksl.Variable

	// colorSpace is the first color-space-transform uniform, or nil.
	colorSpace *sksl.Variable

	sections *sections
}

func newParameters(program *sksl.Program, report func(*Error)) *parameters {
	p := &parameters{
		decls:    program.GlobalDeclarations(),
		sections: newSections(program, report),
	}
	for _, decl := range p.decls {
		v := decl.Var
		if isInput(v) {
			p.inputs = append(p.inputs, v)
		}
		if !v.IsUniform() || v.Type.IsSampler() {
			continue
		}
		p.uniforms = append(p.uniforms, v)
		if !v.Type.IsColorSpaceXform() {
			continue
		}
		if p.colorSpace != nil {
			report(NewErrorAt(ErrDuplicateColorSpace, v.Pos,
				"only a single %s is supported; '%s' already declared", sksl.ColorSpaceXformName, p.colorSpace.Name))
			continue
		}
		p.colorSpace = v
	}
	return p
}

// isDuplicateColorSpace reports whether v is a rejected second
// color-space-transform uniform.
func (p *parameters) isDuplicateColorSpace(v *sksl.Variable) bool {
	return v.Type.IsColorSpaceXform() && v != p.colorSpace
}

// samplerHandle returns the runtime sampler slot of a sampler input. The
// ordinal is the input's position among sampler inputs in declaration
// order; it is recomputed on every lookup.
func (p *parameters) samplerHandle(v *sksl.Variable) (string, error) {
	samplerCount := 0
	for _, param := range p.inputs {
		if param == v {
			return fmt.Sprintf("args.fTexSamplers[%d]", samplerCount), nil
		}
		if param.Type.IsSampler() {
			samplerCount++
		}
	}
	return "", internalf("sampler '%s' is not a processor parameter", v.Name)
}
