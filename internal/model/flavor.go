// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines flavors, their options and flavor extensions.
package model

import (
	"fmt"
	"slices"
)

// OptionGroupType distinguishes real option groups from synthetic ones.
type OptionGroupType int

const (
	// OptionGroupNormal is a user selectable enumeration of options.
	OptionGroupNormal OptionGroupType = iota
	// OptionGroupVirtual has exactly one synthetic option and gates
	// platform-conditional content.
	OptionGroupVirtual
)

// String returns the descriptor spelling.
func (t OptionGroupType) String() string {
	if t == OptionGroupVirtual {
		return "virtual"
	}
	return "normal"
}

// ParseOptionGroupType parses "normal" (default) or "virtual".
func ParseOptionGroupType(s string) (OptionGroupType, error) {
	switch s {
	case "", "normal":
		return OptionGroupNormal, nil
	case "virtual":
		return OptionGroupVirtual, nil
	default:
		return 0, fmt.Errorf("unknown option group type %q", s)
	}
}

// FlavorOption is one selectable option of a flavor.
type FlavorOption struct {
	Name                 string
	Dependencies         []Dependency
	Defines              []Define
	ExternalDependencies []ExternalDependency
}

// Flavor is a named group of mutually exclusive options owned by a package.
type Flavor struct {
	Name        string
	Type        OptionGroupType
	AllowExtend bool
	Options     []FlavorOption
}

// FlavorExtension adds content to the options of a flavor owned by another
// package.
type FlavorExtension struct {
	Owner   string
	Name    string
	Options []FlavorOption
}

// ID returns the id of the flavor being extended.
func (e FlavorExtension) ID() FlavorID {
	return FlavorID{Owner: e.Owner, Name: e.Name}
}

// Option returns the option with the given name.
func (f Flavor) Option(name string) (FlavorOption, bool) {
	for _, option := range f.Options {
		if option.Name == name {
			return option, true
		}
	}
	return FlavorOption{}, false
}

// HasOption reports whether the flavor defines the option.
func (f Flavor) HasOption(name string) bool {
	_, ok := f.Option(name)
	return ok
}

// OptionNames returns the option names in declaration order.
func (f Flavor) OptionNames() []string {
	names := make([]string, 0, len(f.Options))
	for _, option := range f.Options {
		names = append(names, option.Name)
	}
	return names
}

// Validate checks the declaration itself: unique option names, at least one
// option, and exactly one for virtual flavors.
func (f Flavor) Validate() error {
	if len(f.Options) == 0 {
		return fmt.Errorf("flavor '%s' declares no options", f.Name)
	}
	if f.Type == OptionGroupVirtual && len(f.Options) != 1 {
		return fmt.Errorf("virtual flavor '%s' must declare exactly one option, found %d", f.Name, len(f.Options))
	}
	seen := make(map[string]struct{}, len(f.Options))
	for _, option := range f.Options {
		if _, ok := seen[option.Name]; ok {
			return fmt.Errorf("flavor '%s' declares option '%s' more than once", f.Name, option.Name)
		}
		seen[option.Name] = struct{}{}
	}
	return nil
}

// InvalidExtensionOptions returns the names in ext that f does not define.
func (f Flavor) InvalidExtensionOptions(ext FlavorExtension) []string {
	var invalid []string
	for _, option := range ext.Options {
		if !f.HasOption(option.Name) {
			invalid = append(invalid, option.Name)
		}
	}
	return invalid
}

// Extend returns a copy of f with the content of ext appended to the matching
// options. owner is the package defining f, extender the package declaring ext.
func (f Flavor) Extend(owner, extender string, ext FlavorExtension) (Flavor, error) {
	id := FlavorID{Owner: owner, Name: f.Name}.String()
	if !f.AllowExtend {
		return Flavor{}, &NotExtensibleError{Kind: "flavor", Name: id, Owner: owner, Extender: extender}
	}
	if invalid := f.InvalidExtensionOptions(ext); len(invalid) > 0 {
		return Flavor{}, &NewOptionsError{Kind: "flavor", Name: id, Extender: extender, Options: invalid}
	}

	merged := f
	merged.Options = make([]FlavorOption, len(f.Options))
	for i, option := range f.Options {
		combined := FlavorOption{
			Name:                 option.Name,
			Dependencies:         slices.Clone(option.Dependencies),
			Defines:              slices.Clone(option.Defines),
			ExternalDependencies: slices.Clone(option.ExternalDependencies),
		}
		for _, extOption := range ext.Options {
			if extOption.Name != option.Name {
				continue
			}
			combined.Dependencies = append(combined.Dependencies, extOption.Dependencies...)
			combined.Defines = append(combined.Defines, extOption.Defines...)
			combined.ExternalDependencies = append(combined.ExternalDependencies, extOption.ExternalDependencies...)
		}
		merged.Options[i] = combined
	}
	return merged, nil
}
