package algorithms

import (
	"github.com/kestrelsec/threatviz/pkg/graph"
)

// SimpleCycles enumerates every elementary cycle in the graph with
// Johnson's algorithm: each cycle is reported exactly once, rooted at its
// lexicographically smallest node and without repeating that node at the
// end. Self-loops come first as single-node cycles.
//
// Cycle enumeration is the analytic most likely to blow up on pathological
// inputs, so any internal panic is converted to an empty result instead of
// propagating.
func SimpleCycles(m *graph.Model) (cycles [][]string) {
	defer func() {
		if r := recover(); r != nil {
			cycles = [][]string{}
		}
	}()

	cycles = make([][]string, 0)
	ids := m.NodeIDs()
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}

	for _, id := range ids {
		if m.Forward[id][id] {
			cycles = append(cycles, []string{id})
		}
	}

	for start := range ids {
		root := ids[start]
		component := componentContaining(m, pos, start, root)
		if len(component) < 2 {
			continue
		}
		cycles = append(cycles, circuitsFrom(m, pos, start, root, component)...)
	}
	return cycles
}

// componentContaining runs Tarjan over the subgraph induced by nodes whose
// position is >= min and returns the SCC containing root as a set.
func componentContaining(m *graph.Model, pos map[string]int, min int, root string) map[string]bool {
	state := make(map[string]*tarjanState)
	var stack []string
	indexCounter := 0
	var found map[string]bool

	var strongconnect func(u string)
	strongconnect = func(u string) {
		state[u] = &tarjanState{index: indexCounter, lowlink: indexCounter, onStack: true}
		indexCounter++
		stack = append(stack, u)

		for _, v := range m.Successors(u) {
			if pos[v] < min {
				continue
			}
			if _, exists := state[v]; !exists {
				strongconnect(v)
				if state[v].lowlink < state[u].lowlink {
					state[u].lowlink = state[v].lowlink
				}
			} else if state[v].onStack {
				if state[v].index < state[u].lowlink {
					state[u].lowlink = state[v].index
				}
			}
		}

		if state[u].lowlink == state[u].index {
			members := make(map[string]bool)
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				state[w].onStack = false
				members[w] = true
				if w == u {
					break
				}
			}
			if members[root] {
				found = members
			}
		}
	}

	strongconnect(root)
	return found
}

// circuitsFrom finds every elementary circuit through root within its SCC,
// using Johnson's blocked-set bookkeeping to avoid re-exploring dead ends.
func circuitsFrom(m *graph.Model, pos map[string]int, min int, root string, component map[string]bool) [][]string {
	var cycles [][]string
	blocked := make(map[string]bool)
	blockList := make(map[string]map[string]bool)
	var path []string

	var unblock func(v string)
	unblock = func(v string) {
		blocked[v] = false
		for w := range blockList[v] {
			delete(blockList[v], w)
			if blocked[w] {
				unblock(w)
			}
		}
	}

	var circuit func(v string) bool
	circuit = func(v string) bool {
		found := false
		path = append(path, v)
		blocked[v] = true

		for _, w := range m.Successors(v) {
			if !component[w] || pos[w] < min {
				continue
			}
			if w == root {
				if len(path) > 1 {
					cycle := make([]string, len(path))
					copy(cycle, path)
					cycles = append(cycles, cycle)
				}
				found = true
			} else if !blocked[w] {
				if circuit(w) {
					found = true
				}
			}
		}

		if found {
			unblock(v)
		} else {
			for _, w := range m.Successors(v) {
				if !component[w] || pos[w] < min {
					continue
				}
				if blockList[w] == nil {
					blockList[w] = make(map[string]bool)
				}
				blockList[w][v] = true
			}
		}

		path = path[:len(path)-1]
		return found
	}

	circuit(root)
	return cycles
}
