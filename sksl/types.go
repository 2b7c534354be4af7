// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sksl

import "fmt"

// TypeKind categorizes a type.
type TypeKind uint8

const (
	TypeVoid TypeKind = iota
	TypeScalar
	TypeVector
	TypeMatrix
	TypeSampler
	TypeStruct
	TypeArray
)

// String returns the kind name.
func (k TypeKind) String() string {
	switch k {
	case TypeVoid:
		return "void"
	case TypeScalar:
		return "scalar"
	case TypeVector:
		return "vector"
	case TypeMatrix:
		return "matrix"
	case TypeSampler:
		return "sampler"
	case TypeStruct:
		return "struct"
	case TypeArray:
		return "array"
	default:
		return "unknown"
	}
}

// ScalarKind represents the numeric kind of a scalar or of a composite's components.
type ScalarKind uint8

const (
	ScalarFloat    ScalarKind = iota // Floating point (float, half)
	ScalarSigned                     // Signed integer (int, short)
	ScalarUnsigned                   // Unsigned integer (uint, ushort)
	ScalarBool                       // Boolean
)

// Type describes a shading-language type.
//
// Scalars have Columns == 1. Vectors store their size in Columns. Matrices
// store both Columns and Rows.
type Type struct {
	Name    string
	Kind    TypeKind
	Scalar  ScalarKind
	Columns int
	Rows    int

	// Fields holds struct members.
	Fields []Field

	// Element and Count describe arrays; Count is -1 for unsized arrays.
	Element *Type
	Count   int
}

// Field is a struct member.
type Field struct {
	Name string
	Type *Type
}

// String returns the type name.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Name
}

// Is reports whether t is the named type.
func (t *Type) Is(name string) bool {
	return t != nil && t.Name == name
}

// Equal reports whether two types are the same type. Types are nominal.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Name == other.Name
}

// IsFloat reports whether t is a floating-point scalar.
func (t *Type) IsFloat() bool {
	return t != nil && t.Kind == TypeScalar && t.Scalar == ScalarFloat
}

// IsSampler reports whether t is a sampler type.
func (t *Type) IsSampler() bool {
	return t != nil && t.Kind == TypeSampler
}

// IsMatrix reports whether t is a matrix type.
func (t *Type) IsMatrix() bool {
	return t != nil && t.Kind == TypeMatrix
}

// IsColorSpaceXform reports whether t is the color-space-transform type.
// It is a float4x4 matrix backed by a dedicated runtime helper.
func (t *Type) IsColorSpaceXform() bool {
	return t.Is(ColorSpaceXformName)
}

// ColorSpaceXformName is the name of the color-space-transform type.
const ColorSpaceXformName = "colorSpaceXform"

// Predefined types.
var (
	Void  = &Type{Name: "void", Kind: TypeVoid}
	Bool  = scalar("bool", ScalarBool)
	Int   = scalar("int", ScalarSigned)
	UInt  = scalar("uint", ScalarUnsigned)
	Short = scalar("short", ScalarSigned)
	Float = scalar("float", ScalarFloat)
	Half  = scalar("half", ScalarFloat)

	Float2 = vector("float2", ScalarFloat, 2)
	Float3 = vector("float3", ScalarFloat, 3)
	Float4 = vector("float4", ScalarFloat, 4)
	Half2  = vector("half2", ScalarFloat, 2)
	Half3  = vector("half3", ScalarFloat, 3)
	Half4  = vector("half4", ScalarFloat, 4)
	Int2   = vector("int2", ScalarSigned, 2)
	Int3   = vector("int3", ScalarSigned, 3)
	Int4   = vector("int4", ScalarSigned, 4)
	Bool2  = vector("bool2", ScalarBool, 2)
	Bool3  = vector("bool3", ScalarBool, 3)
	Bool4  = vector("bool4", ScalarBool, 4)

	Float2x2 = matrix("float2x2", 2, 2)
	Float3x3 = matrix("float3x3", 3, 3)
	Float4x4 = matrix("float4x4", 4, 4)
	Half2x2  = matrix("half2x2", 2, 2)
	Half3x3  = matrix("half3x3", 3, 3)
	Half4x4  = matrix("half4x4", 4, 4)

	ColorSpaceXform = matrix(ColorSpaceXformName, 4, 4)

	Sampler2D          = &Type{Name: "sampler2D", Kind: TypeSampler}
	SamplerExternalOES = &Type{Name: "samplerExternalOES", Kind: TypeSampler}
	Sampler2DRect      = &Type{Name: "sampler2DRect", Kind: TypeSampler}
)

func scalar(name string, kind ScalarKind) *Type {
	return &Type{Name: name, Kind: TypeScalar, Scalar: kind, Columns: 1, Rows: 1}
}

func vector(name string, kind ScalarKind, size int) *Type {
	return &Type{Name: name, Kind: TypeVector, Scalar: kind, Columns: size, Rows: 1}
}

func matrix(name string, columns, rows int) *Type {
	return &Type{Name: name, Kind: TypeMatrix, Scalar: ScalarFloat, Columns: columns, Rows: rows}
}

var predefined = map[string]*Type{}

func init() {
	for _, t := range []*Type{
		Void, Bool, Int, UInt, Short, Float, Half,
		Float2, Float3, Float4, Half2, Half3, Half4,
		Int2, Int3, Int4, Bool2, Bool3, Bool4,
		Float2x2, Float3x3, Float4x4, Half2x2, Half3x3, Half4x4,
		ColorSpaceXform, Sampler2D, SamplerExternalOES, Sampler2DRect,
	} {
		predefined[t.Name] = t
	}
}

// LookupType returns the predefined type with the given name.
func LookupType(name string) (*Type, bool) {
	t, ok := predefined[name]
	return t, ok
}

// NewStruct creates a struct type.
func NewStruct(name string, fields []Field) *Type {
	return &Type{Name: name, Kind: TypeStruct, Fields: fields}
}

// NewArray creates an array type. A negative count denotes an unsized array.
func NewArray(element *Type, count int) *Type {
	name := element.Name + "[]"
	if count >= 0 {
		name = fmt.Sprintf("%s[%d]", element.Name, count)
	}
	return &Type{Name: name, Kind: TypeArray, Element: element, Count: count}
}
