// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package modeltest provides fluent builders for raw packages used by tests
// across the resolution pipeline.
package modeltest

import "github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"

// Builder assembles one raw package.
type Builder struct {
	pkg *model.RawPackage
}

// Package starts a builder for a package of the given type.
func Package(name string, t model.PackageType) *Builder {
	return &Builder{pkg: &model.RawPackage{Name: name, Type: t}}
}

// Lib starts a library package.
func Lib(name string) *Builder {
	return Package(name, model.PackageTypeLibrary)
}

// Exe starts an executable package.
func Exe(name string) *Builder {
	return Package(name, model.PackageTypeExecutable)
}

// Dep adds a dependency with the given access and optional flavor pins.
func (b *Builder) Dep(name string, access model.AccessType, pins ...model.FlavorSelection) *Builder {
	b.pkg.Dependencies = append(b.pkg.Dependencies, model.Dependency{Name: name, Access: access, Constraints: pins})
	return b
}

// Public adds public dependencies.
func (b *Builder) Public(names ...string) *Builder {
	for _, name := range names {
		b.Dep(name, model.AccessPublic)
	}
	return b
}

// Define adds a define.
func (b *Builder) Define(name, value string, access model.AccessType) *Builder {
	b.pkg.Defines = append(b.pkg.Defines, model.Define{Name: name, Value: value, Access: access})
	return b
}

// External adds an external dependency.
func (b *Builder) External(ext model.ExternalDependency) *Builder {
	b.pkg.ExternalDependencies = append(b.pkg.ExternalDependencies, ext)
	return b
}

// Include sets the public include directory.
func (b *Builder) Include(path string) *Builder {
	b.pkg.IncludePath = path
	return b
}

// Source sets the source directory.
func (b *Builder) Source(path string) *Builder {
	b.pkg.SourcePath = path
	return b
}

// UnitTest marks the package as a unit test.
func (b *Builder) UnitTest() *Builder {
	b.pkg.UnitTest = true
	return b
}

// Virtual marks the package as virtual.
func (b *Builder) Virtual() *Builder {
	b.pkg.Virtual = true
	return b
}

// NotSupported marks the package as unsupported on the current platform.
func (b *Builder) NotSupported() *Builder {
	b.pkg.NotSupported = true
	return b
}

// Flavor adds a flavor definition.
func (b *Builder) Flavor(f model.Flavor) *Builder {
	b.pkg.Flavors = append(b.pkg.Flavors, f)
	return b
}

// Extend adds a flavor extension.
func (b *Builder) Extend(ext model.FlavorExtension) *Builder {
	b.pkg.FlavorExtensions = append(b.pkg.FlavorExtensions, ext)
	return b
}

// Variant adds a variant.
func (b *Builder) Variant(v model.Variant) *Builder {
	b.pkg.Variants = append(b.pkg.Variants, v)
	return b
}

// Require adds a requirement.
func (b *Builder) Require(name string, t model.RequirementType, extends string) *Builder {
	b.pkg.Requirements = append(b.pkg.Requirements, model.Requirement{Name: name, Type: t, Extends: extends})
	return b
}

// Build returns the assembled package.
func (b *Builder) Build() *model.RawPackage {
	return b.pkg
}

// Pin creates a flavor selection whose owner is the edge target.
func Pin(flavor, option string) model.FlavorSelection {
	return model.FlavorSelection{Flavor: flavor, Option: option}
}

// Options creates flavor options without content.
func Options(names ...string) []model.FlavorOption {
	options := make([]model.FlavorOption, 0, len(names))
	for _, name := range names {
		options = append(options, model.FlavorOption{Name: name})
	}
	return options
}

// NormalFlavor creates a normal flavor with empty options.
func NormalFlavor(name string, allowExtend bool, options ...string) model.Flavor {
	return model.Flavor{Name: name, AllowExtend: allowExtend, Options: Options(options...)}
}
