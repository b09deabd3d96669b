package graph

import (
	"context"
	"fmt"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/ctxlog"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/dag"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/node"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/topologystore"
)

// Manager composes a topology store with a dag.Graph.
type Manager struct {
	topology topologystore.Store
	dag      *dag.Graph
}

// New creates a new graph manager on top of the given topology store.
func New(ts topologystore.Store) Graph {
	return &Manager{
		topology: ts,
		dag:      dag.New(),
	}
}

func (m *Manager) Add(ctx context.Context, n *node.Node) error {
	if err := m.topology.AddNode(ctx, n); err != nil {
		return err
	}
	m.dag.AddNode(n.Name())
	return nil
}

func (m *Manager) Link(ctx context.Context, name string) error {
	n, ok := m.topology.GetNode(ctx, name)
	if !ok {
		return fmt.Errorf("node '%s' not found in graph", name)
	}
	if !n.IsSealed() {
		return fmt.Errorf("node '%s' must be sealed before it is linked", name)
	}
	for _, target := range n.DependencyNames() {
		if err := m.dag.AddEdge(target, name); err != nil {
			return err
		}
		if err := m.topology.AddDependency(ctx, target, name); err != nil {
			return err
		}
	}
	ctxlog.FromContext(ctx).Debug("Graph: Node linked.", "package", name, "dependency_count", len(n.DependencyNames()))
	return nil
}

func (m *Manager) Node(ctx context.Context, name string) (*node.Node, bool) {
	return m.topology.GetNode(ctx, name)
}

func (m *Manager) AllNodes(ctx context.Context) []*node.Node {
	return m.topology.AllNodes(ctx)
}

func (m *Manager) DependenciesOf(ctx context.Context, name string) ([]*node.Node, error) {
	names, err := m.topology.DependenciesOf(ctx, name)
	if err != nil {
		return nil, err
	}
	deps := make([]*node.Node, 0, len(names))
	for _, depName := range names {
		dep, ok := m.topology.GetNode(ctx, depName)
		if !ok {
			return nil, fmt.Errorf("internal inconsistency: dependency '%s' of '%s' missing from topology", depName, name)
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

func (m *Manager) Roots(ctx context.Context) []string {
	return m.dag.Roots()
}

func (m *Manager) LocalBuildOrder(ctx context.Context, name string) ([]string, error) {
	sub, err := m.dag.Closure(name)
	if err != nil {
		return nil, err
	}
	return sub.TopologicalSort()
}

func (m *Manager) DetectCycles(ctx context.Context) error {
	return m.dag.DetectCycles()
}

func (m *Manager) BuildOrder(ctx context.Context) ([]string, error) {
	order, err := m.dag.TopologicalSort()
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Graph: Global order computed.", "package_count", len(order))
	return order, nil
}

func (m *Manager) ClosureOrder(ctx context.Context, name string) ([]string, error) {
	return m.dag.TopologicalSortFrom(name)
}
