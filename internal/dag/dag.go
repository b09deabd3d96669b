package dag

import (
	"fmt"
	"slices"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/pkgname"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given ID to the graph. If a node with
// the same ID already exists, the function does nothing.
func (g *Graph) AddNode(id string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.addNodeLocked(id)
}

func (g *Graph) addNodeLocked(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{
		id:         id,
		deps:       make(map[string]*node),
		dependents: make(map[string]*node),
	}
}

// AddEdge creates a directed edge from the `fromID` node to the `toID` node.
// This signifies that `toID` has a dependency on `fromID`. An error is returned
// if either node does not exist or if the edge would create a self-reference.
// Adding the same edge twice is a no-op.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return &CycleError{Path: []string{fromID}}
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	toNode.deps[fromID] = fromNode
	fromNode.dependents[toID] = toNode
	return nil
}

// Dependencies returns the sorted ids of the nodes the given node depends on.
func (g *Graph) Dependencies(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	return sortedKeys(n.deps), nil
}

// Roots returns the sorted ids of every node nothing depends on.
func (g *Graph) Roots() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var roots []string
	for id, n := range g.nodes {
		if len(n.dependents) == 0 {
			roots = append(roots, id)
		}
	}
	pkgname.Sort(roots)
	return roots
}

// Closure returns a new graph holding the given node and everything it
// transitively depends on, with the edges between them.
func (g *Graph) Closure(id string) (*Graph, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	start, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}

	sub := New()
	queue := []*node{start}
	sub.addNodeLocked(start.id)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, depID := range sortedKeys(current.deps) {
			dep := current.deps[depID]
			if _, seen := sub.nodes[depID]; !seen {
				sub.addNodeLocked(depID)
				queue = append(queue, dep)
			}
			sub.nodes[current.id].deps[depID] = sub.nodes[depID]
			sub.nodes[depID].dependents[current.id] = sub.nodes[current.id]
		}
	}
	return sub, nil
}

func (g *Graph) sortedIDsLocked() []string {
	return sortedKeys(g.nodes)
}

func sortedKeys(m map[string]*node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, pkgname.Compare)
	return keys
}
