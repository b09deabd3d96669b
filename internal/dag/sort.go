package dag

import (
	"fmt"
)

type visitState int

const (
	unvisited visitState = iota
	onPath
	done
)

// frame is one entry of the explicit DFS stack.
type frame struct {
	n    *node
	deps []string
	next int
}

// TopologicalSort returns every node ordered so that each dependency appears
// strictly before its dependents. Traversal starts at the roots and visits
// children in sorted order. Nodes unreachable from any root can only be part
// of a cycle and are visited afterwards, so such a cycle is still reported.
func (g *Graph) TopologicalSort() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var roots []string
	for _, id := range g.sortedIDsLocked() {
		if len(g.nodes[id].dependents) == 0 {
			roots = append(roots, id)
		}
	}

	state := make(map[string]visitState, len(g.nodes))
	order := make([]string, 0, len(g.nodes))
	if err := g.visitLocked(roots, state, &order); err != nil {
		return nil, err
	}
	if len(order) < len(g.nodes) {
		if err := g.visitLocked(g.sortedIDsLocked(), state, &order); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// TopologicalSortFrom returns the build order of the given node's transitive
// closure, ending with the node itself.
func (g *Graph) TopologicalSortFrom(id string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if _, ok := g.nodes[id]; !ok {
		return nil, fmt.Errorf("node not found: %s", id)
	}
	state := make(map[string]visitState)
	var order []string
	if err := g.visitLocked([]string{id}, state, &order); err != nil {
		return nil, err
	}
	return order, nil
}

// DetectCycles checks the graph for any cycles and returns a *CycleError
// describing the first one found.
func (g *Graph) DetectCycles() error {
	_, err := g.TopologicalSort()
	return err
}

// visitLocked runs a post-order DFS from each start node using an explicit
// stack. The stack doubles as the active path, so a back edge yields the
// exact cycle.
func (g *Graph) visitLocked(starts []string, state map[string]visitState, order *[]string) error {
	for _, start := range starts {
		if state[start] != unvisited {
			continue
		}
		startNode := g.nodes[start]
		state[start] = onPath
		stack := []frame{{n: startNode, deps: sortedKeys(startNode.deps)}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next < len(top.deps) {
				childID := top.deps[top.next]
				top.next++

				switch state[childID] {
				case done:
				case onPath:
					return cycleFromStack(stack, childID)
				default:
					child := g.nodes[childID]
					state[childID] = onPath
					stack = append(stack, frame{n: child, deps: sortedKeys(child.deps)})
				}
				continue
			}

			state[top.n.id] = done
			*order = append(*order, top.n.id)
			stack = stack[:len(stack)-1]
		}
	}
	return nil
}

func cycleFromStack(stack []frame, reentered string) error {
	for i, f := range stack {
		if f.n.id != reentered {
			continue
		}
		path := make([]string, 0, len(stack)-i)
		for _, entry := range stack[i:] {
			path = append(path, entry.n.id)
		}
		return &CycleError{Path: path}
	}
	return &CycleError{Path: []string{reentered}}
}
