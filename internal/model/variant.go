// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines build variants and the extend merge that combines two
// declarations of the same variant.
package model

import "slices"

// VariantOption is one option of a variant.
type VariantOption struct {
	Name                 string
	Defines              []Define
	ExternalDependencies []ExternalDependency
}

// Variant is a named option group that is merged along the build order.
type Variant struct {
	Name        string
	Type        OptionGroupType
	AllowExtend bool
	Options     []VariantOption
}

// Option returns the option with the given name.
func (v Variant) Option(name string) (VariantOption, bool) {
	for _, option := range v.Options {
		if option.Name == name {
			return option, true
		}
	}
	return VariantOption{}, false
}

// Extend merges ext, declared by extender, into v, introduced by owner. ext
// must be marked AllowExtend, must only name existing options and must not
// redefine a define or external dependency the option already carries.
// Link-access defines of ext are dropped.
func (v Variant) Extend(owner, extender string, ext Variant) (Variant, error) {
	if !ext.AllowExtend {
		return Variant{}, &NotExtensibleError{Kind: "variant", Name: ext.Name, Owner: owner, Extender: extender}
	}

	var invalid []string
	for _, option := range ext.Options {
		if _, ok := v.Option(option.Name); !ok {
			invalid = append(invalid, option.Name)
		}
	}
	if len(invalid) > 0 {
		return Variant{}, &NewOptionsError{Kind: "variant", Name: v.Name, Extender: extender, Options: invalid}
	}

	merged := v
	merged.Options = make([]VariantOption, len(v.Options))
	for i, option := range v.Options {
		combined := VariantOption{
			Name:                 option.Name,
			Defines:              slices.Clone(option.Defines),
			ExternalDependencies: slices.Clone(option.ExternalDependencies),
		}
		if extOption, ok := ext.Option(option.Name); ok {
			for _, external := range extOption.ExternalDependencies {
				if slices.ContainsFunc(combined.ExternalDependencies, func(e ExternalDependency) bool { return e.Name == external.Name }) {
					return Variant{}, &OverwriteError{Variant: v.Name, Option: option.Name, Extender: extender, Attribute: "external dependency", Name: external.Name}
				}
				combined.ExternalDependencies = append(combined.ExternalDependencies, external)
			}
			for _, define := range extOption.Defines {
				if define.Access == AccessLink {
					continue
				}
				if slices.ContainsFunc(combined.Defines, func(d Define) bool { return d.Name == define.Name }) {
					return Variant{}, &OverwriteError{Variant: v.Name, Option: option.Name, Extender: extender, Attribute: "define", Name: define.Name}
				}
				combined.Defines = append(combined.Defines, define)
			}
		}
		merged.Options[i] = combined
	}
	return merged, nil
}
