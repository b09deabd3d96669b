package resolve

import (
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/buildorder"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/pkgname"
)

// familyPass resolves one attribute family for every package in build order.
// declare adds the package's own entries; inherit folds in what its
// dependencies expose.
type familyPass[T any] struct {
	family  string
	declare func(m *merger[T], p *buildorder.OrderedPackage) error
	inherit func(m *merger[T], dep AttributeSet[T], access model.AccessType) error
}

func (f familyPass[T]) run(packages []*buildorder.OrderedPackage) (map[string]AttributeSet[T], error) {
	sets := make(map[string]AttributeSet[T], len(packages))
	for _, p := range packages {
		m := newMerger[T](f.family, p)
		if p.IsTopLevel() {
			sets[p.Name] = m.set()
			continue
		}
		if err := f.declare(m, p); err != nil {
			return nil, err
		}
		// Flavor option edges carry attributes only inside an instance.
		for _, dep := range p.PlainDependencies {
			if err := f.inherit(m, sets[dep.Target], dep.Access); err != nil {
				return nil, err
			}
		}
		sets[p.Name] = m.set()
	}
	return sets, nil
}

// inheritPublic folds the public entries of non-Link edges.
func inheritPublic[T any](m *merger[T], dep AttributeSet[T], access model.AccessType) error {
	if access == model.AccessLink {
		return nil
	}
	return m.fold(dep.Public, access)
}

func resolveDefines(packages []*buildorder.OrderedPackage) (map[string]AttributeSet[model.Define], error) {
	return familyPass[model.Define]{
		family: "define",
		declare: func(m *merger[model.Define], p *buildorder.OrderedPackage) error {
			for _, d := range p.Package.Defines {
				if err := m.declare(d.Name, d, d.Access); err != nil {
					return err
				}
			}
			return nil
		},
		inherit: inheritPublic[model.Define],
	}.run(packages)
}

// resolveExternalDependencies lets dynamic libraries cross Link edges and
// keeps passing them on at Link access so they reach the final link step.
func resolveExternalDependencies(packages []*buildorder.OrderedPackage) (map[string]AttributeSet[model.ExternalDependency], error) {
	return familyPass[model.ExternalDependency]{
		family: "external dependency",
		declare: func(m *merger[model.ExternalDependency], p *buildorder.OrderedPackage) error {
			for _, ext := range p.Package.ExternalDependencies {
				if err := m.declare(ext.Name, ext, ext.Access); err != nil {
					return err
				}
			}
			return nil
		},
		inherit: func(m *merger[model.ExternalDependency], dep AttributeSet[model.ExternalDependency], access model.AccessType) error {
			if access == model.AccessLink {
				if err := m.fold(dynamicLibs(dep.Public), model.AccessLink); err != nil {
					return err
				}
			} else if err := m.fold(dep.Public, access); err != nil {
				return err
			}
			return m.fold(dynamicLibs(dep.Link), model.AccessLink)
		},
	}.run(packages)
}

func dynamicLibs(entries []Entry[model.ExternalDependency]) []Entry[model.ExternalDependency] {
	var out []Entry[model.ExternalDependency]
	for _, e := range entries {
		if e.Value.ProducesDynamicLib() {
			out = append(out, e)
		}
	}
	return out
}

// resolveIncludeDirs collects the package include path, the include paths
// of its external dependencies and, for unit tests, the source directory of
// the package under test.
func resolveIncludeDirs(packages []*buildorder.OrderedPackage, order *buildorder.Order) (map[string]AttributeSet[string], error) {
	return familyPass[string]{
		family: "include directory",
		declare: func(m *merger[string], p *buildorder.OrderedPackage) error {
			if path := p.Package.IncludePath; path != "" {
				if err := m.declare(path, path, model.AccessPublic); err != nil {
					return err
				}
			}
			for _, ext := range p.Package.ExternalDependencies {
				if ext.Include == "" {
					continue
				}
				if err := m.declare(ext.Include, ext.Include, ext.Access); err != nil {
					return err
				}
			}
			if tested, ok := testedPackage(p, order); ok && tested.Package.SourcePath != "" {
				return m.declare(tested.Package.SourcePath, tested.Package.SourcePath, model.AccessPrivate)
			}
			return nil
		},
		inherit: inheritPublic[string],
	}.run(packages)
}

// testedPackage finds the package a unit test belongs to: the dependency
// with the longest name that is a segment-aligned prefix of the test's name.
func testedPackage(p *buildorder.OrderedPackage, order *buildorder.Order) (*buildorder.OrderedPackage, bool) {
	if !p.Package.UnitTest {
		return nil, false
	}
	name, err := pkgname.Parse(p.Name)
	if err != nil {
		return nil, false
	}
	var best *buildorder.OrderedPackage
	bestLen := 0
	for _, depName := range p.AllDependencies {
		depParsed, err := pkgname.Parse(depName)
		if err != nil || !name.HasPrefix(depParsed) {
			continue
		}
		if len(depParsed.Segments) > bestLen {
			best, _ = order.Package(depName)
			bestLen = len(depParsed.Segments)
		}
	}
	return best, best != nil
}
