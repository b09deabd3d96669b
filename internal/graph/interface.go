package graph

import (
	"context"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/node"
)

// Graph is the package graph of a single resolution run.
//
// Implementations must be safe for concurrent reads once population has
// finished.
type Graph interface {
	// Add registers an unsealed or sealed node. A second node with the same
	// name is rejected with a *topologystore.DuplicateNodeError.
	Add(ctx context.Context, n *node.Node) error

	// Link turns the dependency records of a sealed node into edges. Every
	// target must already have been added.
	Link(ctx context.Context, name string) error

	// Node looks up a node by package name.
	Node(ctx context.Context, name string) (*node.Node, bool)

	// AllNodes returns every node sorted by package name.
	AllNodes(ctx context.Context) []*node.Node

	// DependenciesOf returns the nodes the given node directly depends on,
	// sorted by package name.
	DependenciesOf(ctx context.Context, name string) ([]*node.Node, error)

	// Roots returns the sorted names of all nodes nothing depends on.
	Roots(ctx context.Context) []string

	// LocalBuildOrder sorts only the transitive closure of one node. It is
	// used to report a cycle close to the package that causes it.
	LocalBuildOrder(ctx context.Context, name string) ([]string, error)

	// DetectCycles reports the first cycle of the complete graph as a
	// *dag.CycleError.
	DetectCycles(ctx context.Context) error

	// BuildOrder sorts the complete graph.
	BuildOrder(ctx context.Context) ([]string, error)

	// ClosureOrder returns the transitive closure of a node in dependency
	// order, ending with the node itself.
	ClosureOrder(ctx context.Context, name string) ([]string, error)
}
