package inmemorytopology

import (
	"context"
	"fmt"
	"sync"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/node"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/pkgname"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/topologystore"
)

// Store implements the topologystore.Store interface using maps and a mutex
// for thread-safe concurrent access.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]*node.Node
	deps  map[string]map[string]struct{} // Key: node name, Value: set of dependency names
}

// New creates a new, empty in-memory topology store.
func New() topologystore.Store {
	return &Store{
		nodes: make(map[string]*node.Node),
		deps:  make(map[string]map[string]struct{}),
	}
}

// AddNode adds a new node to the store.
func (s *Store) AddNode(ctx context.Context, n *node.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := n.Name()
	if _, exists := s.nodes[name]; exists {
		return &topologystore.DuplicateNodeError{Name: name}
	}
	s.nodes[name] = n
	return nil
}

// AddDependency creates a dependency link from one node to another.
func (s *Store) AddDependency(ctx context.Context, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.nodes[from]; !exists {
		return fmt.Errorf("dependency source node '%s' not found in topology", from)
	}
	if _, exists := s.nodes[to]; !exists {
		return fmt.Errorf("dependency target node '%s' not found in topology", to)
	}

	if s.deps[to] == nil {
		s.deps[to] = make(map[string]struct{})
	}
	s.deps[to][from] = struct{}{}
	return nil
}

// GetNode retrieves a single node by name.
func (s *Store) GetNode(ctx context.Context, name string) (*node.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[name]
	return n, ok
}

// AllNodes returns a sorted snapshot of all nodes in the topology.
func (s *Store) AllNodes(ctx context.Context) []*node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.nodes))
	for name := range s.nodes {
		names = append(names, name)
	}
	pkgname.Sort(names)

	nodes := make([]*node.Node, 0, len(names))
	for _, name := range names {
		nodes = append(nodes, s.nodes[name])
	}
	return nodes
}

// DependenciesOf returns the names of all nodes that the given node depends on.
func (s *Store) DependenciesOf(ctx context.Context, name string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.nodes[name]; !exists {
		return nil, fmt.Errorf("node '%s' not found in topology", name)
	}

	depSet := s.deps[name]
	deps := make([]string, 0, len(depSet))
	for dep := range depSet {
		deps = append(deps, dep)
	}
	pkgname.Sort(deps)
	return deps, nil
}
