// Package topologystore defines the interface for storing and retrieving the
// static structure of a package graph: the sealed nodes and the dependency
// edges between them.
//
// The store is created once per resolution run, populated while the
// build-order pass wires the graph, and read-only afterwards. Ordering and
// cycle detection live in the dag package; the store only answers "which node
// has this name" and "what does it depend on".
package topologystore

import (
	"context"
	"fmt"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/node"
)

// Store is the interface for managing the topology of one package graph.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// AddNode registers a node under its package name. Registering a second
	// node with the same name returns a *DuplicateNodeError.
	AddNode(ctx context.Context, n *node.Node) error

	// AddDependency records that the node named 'to' depends on the node named
	// 'from'. Both nodes must already be registered.
	AddDependency(ctx context.Context, from, to string) error

	// GetNode retrieves a single node by name.
	GetNode(ctx context.Context, name string) (*node.Node, bool)

	// AllNodes returns every registered node sorted by package name.
	AllNodes(ctx context.Context) []*node.Node

	// DependenciesOf returns the sorted names of the nodes the given node
	// directly depends on, or an error if the node is unknown.
	DependenciesOf(ctx context.Context, name string) ([]string, error)
}

// DuplicateNodeError is returned when two nodes share a package name.
type DuplicateNodeError struct {
	Name string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("package '%s' defined multiple times", e.Name)
}
