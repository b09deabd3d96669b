// Package node defines the sealed graph node built from one raw package. A
// node collects its resolved dependency records while the build-order pass
// wires the graph and is sealed once that list is final; it is read-only
// afterwards.
package node

import (
	"errors"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/model"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/pkgname"
)

// ErrSealed is returned when a sealed node is modified.
var ErrSealed = errors.New("node is sealed")

// FlavorTag records that a dependency edge comes from one option of a flavor
// (or of a flavor extension) instead of the package's plain dependency list.
type FlavorTag struct {
	Flavor model.FlavorID
	Option string
}

func (t FlavorTag) String() string {
	return fmt.Sprintf("%s=%s", t.Flavor.Name, t.Option)
}

// Dependency is a resolved dependency record.
type Dependency struct {
	Target string
	Access model.AccessType
	// Flavor is nil for plain dependencies.
	Flavor *FlavorTag
	// Constraints are the flavor selections pinned by the edge with their
	// owner defaulted to Target.
	Constraints []model.FlavorSelection
}

// Node is a single vertex of the package graph.
type Node struct {
	pkg  *model.RawPackage
	deps []Dependency

	// sealed flips once; every mutation checks it.
	sealed atomic.Bool
}

// New creates an unsealed node for the given package.
func New(pkg *model.RawPackage) *Node {
	return &Node{pkg: pkg}
}

// Name returns the package name.
func (n *Node) Name() string {
	return n.pkg.Name
}

// Package returns the wrapped raw package.
func (n *Node) Package() *model.RawPackage {
	return n.pkg
}

// AddDependency appends a dependency record.
func (n *Node) AddDependency(dep Dependency) error {
	if n.sealed.Load() {
		return fmt.Errorf("adding dependency '%s' to '%s': %w", dep.Target, n.Name(), ErrSealed)
	}
	n.deps = append(n.deps, dep)
	return nil
}

// Seal freezes the dependency list.
func (n *Node) Seal() {
	n.sealed.Store(true)
}

// IsSealed reports whether Seal was called.
func (n *Node) IsSealed() bool {
	return n.sealed.Load()
}

// Dependencies returns a copy of the dependency records in declaration order.
func (n *Node) Dependencies() []Dependency {
	return slices.Clone(n.deps)
}

// DependencyNames returns the distinct dependency targets, sorted.
func (n *Node) DependencyNames() []string {
	seen := make(map[string]struct{}, len(n.deps))
	names := make([]string, 0, len(n.deps))
	for _, dep := range n.deps {
		if _, ok := seen[dep.Target]; ok {
			continue
		}
		seen[dep.Target] = struct{}{}
		names = append(names, dep.Target)
	}
	pkgname.Sort(names)
	return names
}

// PlainDependencies returns the records that are not tied to a flavor option,
// in declaration order. These are the edges attributes propagate along.
func (n *Node) PlainDependencies() []Dependency {
	var plain []Dependency
	for _, dep := range n.deps {
		if dep.Flavor == nil {
			plain = append(plain, dep)
		}
	}
	return plain
}
