package config

import (
	"slices"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
)

// Model is the unified, format-agnostic representation of every loaded
// package descriptor.
type Model struct {
	Descriptors []*PackageDescriptor
}

// PackageDescriptor is one declared package before platform flattening.
type PackageDescriptor struct {
	Name      string
	Type      model.PackageType
	Namespace string
	Virtual   bool
	UnitTest  bool

	IncludePath string
	SourcePath  string

	// File is the descriptor file the package was declared in.
	File string

	Common    Section
	Platforms map[string]*PlatformSection
}

// Section is the platform independent content of a descriptor or the
// content a platform adds on top of it.
type Section struct {
	Dependencies         []model.Dependency
	Defines              []model.Define
	ExternalDependencies []model.ExternalDependency
	Variants             []model.Variant
	Flavors              []model.Flavor
	FlavorExtensions     []model.FlavorExtension
	Requirements         []model.Requirement
}

// PlatformSection is the content a descriptor declares for one platform.
type PlatformSection struct {
	Section
	NotSupported bool
}

// Platforms returns the sorted names of every platform any descriptor
// mentions.
func (m *Model) Platforms() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, desc := range m.Descriptors {
		for name := range desc.Platforms {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Packages flattens every descriptor for the given platform. A descriptor
// without a section for the platform contributes its common section only.
// The order of the descriptors is preserved.
func (m *Model) Packages(platform string) []*model.RawPackage {
	packages := make([]*model.RawPackage, 0, len(m.Descriptors))
	for _, desc := range m.Descriptors {
		packages = append(packages, desc.Flatten(platform))
	}
	return packages
}

// Flatten builds the raw package of the descriptor for one platform.
func (d *PackageDescriptor) Flatten(platform string) *model.RawPackage {
	pkg := &model.RawPackage{
		Name:                 d.Name,
		Type:                 d.Type,
		Namespace:            d.Namespace,
		Virtual:              d.Virtual,
		UnitTest:             d.UnitTest,
		IncludePath:          d.IncludePath,
		SourcePath:           d.SourcePath,
		Dependencies:         slices.Clone(d.Common.Dependencies),
		Defines:              slices.Clone(d.Common.Defines),
		ExternalDependencies: slices.Clone(d.Common.ExternalDependencies),
		Variants:             slices.Clone(d.Common.Variants),
		Flavors:              slices.Clone(d.Common.Flavors),
		FlavorExtensions:     slices.Clone(d.Common.FlavorExtensions),
		Requirements:         slices.Clone(d.Common.Requirements),
	}

	section, ok := d.Platforms[platform]
	if !ok {
		return pkg
	}
	pkg.NotSupported = section.NotSupported
	pkg.Dependencies = append(pkg.Dependencies, section.Dependencies...)
	pkg.Defines = append(pkg.Defines, section.Defines...)
	pkg.ExternalDependencies = append(pkg.ExternalDependencies, section.ExternalDependencies...)
	pkg.Variants = append(pkg.Variants, section.Variants...)
	pkg.Flavors = append(pkg.Flavors, section.Flavors...)
	pkg.FlavorExtensions = append(pkg.FlavorExtensions, section.FlavorExtensions...)
	pkg.Requirements = append(pkg.Requirements, section.Requirements...)
	return pkg
}

// Narrow returns the names of the requested packages and everything they
// reach through any kind of dependency, in the order of the descriptors.
// Names that are not declared are returned separately.
func Narrow(packages []*model.RawPackage, requested []string) (kept []*model.RawPackage, unknown []string) {
	lookup := make(map[string]*model.RawPackage, len(packages))
	for _, pkg := range packages {
		if _, ok := lookup[pkg.Name]; !ok {
			lookup[pkg.Name] = pkg
		}
	}

	reached := make(map[string]struct{})
	stack := make([]string, 0, len(requested))
	for _, name := range requested {
		if _, ok := lookup[name]; !ok {
			unknown = append(unknown, name)
			continue
		}
		stack = append(stack, name)
	}
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := reached[name]; ok {
			continue
		}
		reached[name] = struct{}{}
		if pkg, ok := lookup[name]; ok {
			stack = append(stack, pkg.AllDependencyNames()...)
		}
	}

	for _, pkg := range packages {
		if _, ok := reached[pkg.Name]; ok {
			kept = append(kept, pkg)
		}
	}
	return kept, unknown
}
