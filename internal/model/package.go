// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines RawPackage, the unit every later stage is built from.
package model

// RawPackage is one package descriptor flattened for a single platform.
type RawPackage struct {
	Name      string
	Type      PackageType
	Namespace string

	// Virtual packages never count as actual consumers of an attribute.
	Virtual bool
	// UnitTest packages get the source directory of the tested package as a
	// private include directory.
	UnitTest bool
	// NotSupported marks the package as unavailable on the platform.
	NotSupported bool

	IncludePath string
	SourcePath  string

	Dependencies         []Dependency
	Defines              []Define
	ExternalDependencies []ExternalDependency
	Variants             []Variant
	Flavors              []Flavor
	FlavorExtensions     []FlavorExtension
	Requirements         []Requirement
}

// IsVirtual reports whether the package is virtual, either declared so or
// because its type is synthetic.
func (p *RawPackage) IsVirtual() bool {
	return p.Virtual || p.Type.IsSynthetic()
}

// Flavor returns the flavor the package defines with the given name.
func (p *RawPackage) Flavor(name string) (Flavor, bool) {
	for _, flavor := range p.Flavors {
		if flavor.Name == name {
			return flavor, true
		}
	}
	return Flavor{}, false
}

// AllDependencyNames returns the names of every plain, flavor option and
// flavor extension dependency in declaration order, without duplicates.
func (p *RawPackage) AllDependencyNames() []string {
	seen := make(map[string]struct{})
	var names []string
	add := func(deps []Dependency) {
		for _, dep := range deps {
			if _, ok := seen[dep.Name]; ok {
				continue
			}
			seen[dep.Name] = struct{}{}
			names = append(names, dep.Name)
		}
	}
	add(p.Dependencies)
	for _, flavor := range p.Flavors {
		for _, option := range flavor.Options {
			add(option.Dependencies)
		}
	}
	for _, ext := range p.FlavorExtensions {
		for _, option := range ext.Options {
			add(option.Dependencies)
		}
	}
	return names
}
