// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cpp

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/gogpu/fpgen/sksl"
)

// Section names.
const (
	SectionClass             = "class"
	SectionClone             = "clone"
	SectionConstructor       = "constructor"
	SectionConstructorCode   = "constructorCode"
	SectionConstructorParams = "constructorParams"
	SectionCoordTransform    = "coordTransform"
	SectionCPP               = "cpp"
	SectionCPPEnd            = "cppEnd"
	SectionHeader            = "header"
	SectionHeaderEnd         = "headerEnd"
	SectionEmitCode          = "emitCode"
	SectionFields            = "fields"
	SectionInitializers      = "initializers"
	SectionMake              = "make"
	SectionOptimizationFlags = "optimizationFlags"
	SectionSetData           = "setData"
	SectionTest              = "test"
)

// sectionRule describes how a section may be written.
type sectionRule struct {
	acceptsArgument  bool
	requiresArgument bool
	permitsDuplicate bool
}

var sectionRules = map[string]sectionRule{
	SectionClass:             {},
	SectionClone:             {},
	SectionConstructor:       {},
	SectionConstructorCode:   {},
	SectionConstructorParams: {},
	SectionCoordTransform:    {acceptsArgument: true, permitsDuplicate: true},
	SectionCPP:               {},
	SectionCPPEnd:            {},
	SectionHeader:            {},
	SectionHeaderEnd:         {},
	SectionEmitCode:          {},
	SectionFields:            {},
	SectionInitializers:      {},
	SectionMake:              {},
	SectionOptimizationFlags: {},
	SectionSetData:           {acceptsArgument: true, requiresArgument: true},
	SectionTest:              {acceptsArgument: true, requiresArgument: true},
}

// sections indexes a program's verbatim sections by name.
type sections struct {
	byName map[string][]*sksl.Section
}

// newSections collects and validates the program's sections. Invalid
// sections are reported and left out of the index.
func newSections(program *sksl.Program, report func(*Error)) *sections {
	s := &sections{byName: make(map[string][]*sksl.Section)}
	for _, sec := range program.Sections() {
		rule, ok := sectionRules[sec.Name]
		switch {
		case !ok:
			report(NewErrorAt(ErrSection, sec.Pos, "unsupported section '@%s'", sec.Name))
			continue
		case !rule.acceptsArgument && sec.Argument != "":
			report(NewErrorAt(ErrSection, sec.Pos, "section '@%s' does not accept an argument", sec.Name))
			continue
		case rule.requiresArgument && sec.Argument == "":
			report(NewErrorAt(ErrSection, sec.Pos, "section '@%s' requires one parameter", sec.Name))
			continue
		case !rule.permitsDuplicate && len(s.byName[sec.Name]) > 0:
			report(NewErrorAt(ErrSection, sec.Pos, "duplicate section '@%s'", sec.Name))
			continue
		}
		s.byName[sec.Name] = append(s.byName[sec.Name], sec)
	}
	return s
}

// get returns the named section, or nil.
func (s *sections) get(name string) *sksl.Section {
	if all := s.byName[name]; len(all) > 0 {
		return all[0]
	}
	return nil
}

// all returns every section with the given name in program order.
func (s *sections) all(name string) []*sksl.Section {
	return s.byName[name]
}

// names returns the names of the sections present, sorted.
func (s *sections) names() []string {
	names := maps.Keys(s.byName)
	slices.Sort(names)
	return names
}
