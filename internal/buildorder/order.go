package buildorder

import (
	"slices"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/node"
)

// OrderedPackage is one package placed in the global build order.
type OrderedPackage struct {
	Name    string
	Package *model.RawPackage
	// BuildIndex is the position in the global order.
	BuildIndex int
	// Dependencies are the sealed dependency records in declaration order.
	Dependencies []node.Dependency
	// PlainDependencies are the records not tied to a flavor option.
	PlainDependencies []node.Dependency
	// DirectDependencies holds the distinct direct targets in build order.
	DirectDependencies []string
	// AllDependencies holds the transitive closure without the package
	// itself, in build order.
	AllDependencies []string
	// BuildOrder is AllDependencies followed by the package itself.
	BuildOrder []string
}

// IsTopLevel reports whether this is the virtual top level package.
func (p *OrderedPackage) IsTopLevel() bool {
	return p.Package.Type == model.PackageTypeTopLevel
}

// Order is the immutable result of Resolve.
type Order struct {
	packages []*OrderedPackage
	index    map[string]*OrderedPackage
	flavors  map[model.FlavorID]model.Flavor
	narrowed bool
	complete bool
}

// Complete reports whether the order was produced by a successful Resolve.
func (o *Order) Complete() bool {
	return o != nil && o.complete
}

// Packages returns the packages in build order, virtual top level last.
func (o *Order) Packages() []*OrderedPackage {
	return slices.Clone(o.packages)
}

// Names returns the package names in build order.
func (o *Order) Names() []string {
	names := make([]string, 0, len(o.packages))
	for _, p := range o.packages {
		names = append(names, p.Name)
	}
	return names
}

// Package looks up an ordered package by name.
func (o *Order) Package(name string) (*OrderedPackage, bool) {
	p, ok := o.index[name]
	return p, ok
}

// TopLevel returns the virtual top level package.
func (o *Order) TopLevel() *OrderedPackage {
	return o.packages[len(o.packages)-1]
}

// Flavor returns a flavor definition with every legal extension merged in.
func (o *Order) Flavor(id model.FlavorID) (model.Flavor, bool) {
	f, ok := o.flavors[id]
	return f, ok
}

// Narrowed reports whether the order was built for a requested subset of
// packages rather than the full default build.
func (o *Order) Narrowed() bool {
	return o.narrowed
}
