// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package sksl

import "strings"

// ModifierFlags holds variable modifier bits.
type ModifierFlags uint32

const (
	FlagConst ModifierFlags = 1 << iota
	FlagIn
	FlagOut
	FlagUniform
	FlagFlat
	FlagNoPerspective
	FlagLowp
	FlagMediump
	FlagHighp
)

var flagNames = []struct {
	flag ModifierFlags
	name string
}{
	{FlagConst, "const"},
	{FlagIn, "in"},
	{FlagOut, "out"},
	{FlagUniform, "uniform"},
	{FlagFlat, "flat"},
	{FlagNoPerspective, "noperspective"},
	{FlagLowp, "lowp"},
	{FlagMediump, "mediump"},
	{FlagHighp, "highp"},
}

// ParseFlag returns the flag with the given keyword.
func ParseFlag(name string) (ModifierFlags, bool) {
	for _, f := range flagNames {
		if f.name == name {
			return f.flag, true
		}
	}
	return 0, false
}

// String returns the flags as space-separated keywords.
func (f ModifierFlags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, " ")
}

// KeyMode selects how a parameter contributes to the processor key.
type KeyMode uint8

const (
	KeyNone     KeyMode = iota // layout without key
	KeyKey                     // layout(key)
	KeyIdentity                // layout(key=identity)
)

// String returns the layout spelling of the key mode.
func (k KeyMode) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyKey:
		return "key"
	case KeyIdentity:
		return "identity"
	default:
		return "unknown"
	}
}

// Builtin identifies a compiler-recognized builtin variable.
// The zero value means the variable is not a builtin.
type Builtin int32

const (
	BuiltinNone              Builtin = 0
	BuiltinInColor           Builtin = 10000
	BuiltinOutColor          Builtin = 10001
	BuiltinTransformedCoords Builtin = 10002
	BuiltinTextureSamplers   Builtin = 10003
)

// Builtin variable names.
const (
	InColorName           = "sk_InColor"
	OutColorName          = "sk_OutColor"
	TransformedCoordsName = "sk_TransformedCoords2D"
	TextureSamplersName   = "sk_TextureSamplers"
)

// Layout holds layout qualifiers.
type Layout struct {
	Builtin Builtin
	Key     KeyMode

	// When is the verbatim runtime condition guarding the variable's
	// presence. Empty means always present.
	When string
}

// Modifiers combine flags and layout.
type Modifiers struct {
	Flags  ModifierFlags
	Layout Layout
}

// Has reports whether all the given flags are set.
func (m Modifiers) Has(flags ModifierFlags) bool {
	return m.Flags&flags == flags
}

// Storage tells where a variable lives.
type Storage uint8

const (
	StorageGlobal Storage = iota
	StorageLocal
	StorageParameter
)

// Variable is a declared variable. Identity is by pointer.
type Variable struct {
	Name      string
	Type      *Type
	Storage   Storage
	Modifiers Modifiers
	Pos       Position
}

// IsBuiltin reports whether the variable is a compiler builtin.
func (v *Variable) IsBuiltin() bool {
	return v.Modifiers.Layout.Builtin != BuiltinNone
}

// IsUniform reports whether the variable carries the uniform flag.
func (v *Variable) IsUniform() bool {
	return v.Modifiers.Has(FlagUniform)
}

// IsIn reports whether the variable carries the in flag.
func (v *Variable) IsIn() bool {
	return v.Modifiers.Has(FlagIn)
}

// IsConditional reports whether the variable has a when guard.
func (v *Variable) IsConditional() bool {
	return v.Modifiers.Layout.When != ""
}
