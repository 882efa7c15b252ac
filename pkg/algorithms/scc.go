package algorithms

import (
	"sort"

	"github.com/kestrelsec/threatviz/pkg/graph"
)

// Component is one strongly connected component.
type Component struct {
	ID    int      `json:"id"`
	Nodes []string `json:"nodes"`
	Size  int      `json:"size"`
}

// tarjanState holds per-node bookkeeping during Tarjan's DFS.
type tarjanState struct {
	index   int
	lowlink int
	onStack bool
}

// StronglyConnectedComponents partitions the graph into SCCs with Tarjan's
// algorithm in O(V+E) time, following outgoing edges only. Components come
// back sorted by size descending, component IDs reassigned after sorting.
func StronglyConnectedComponents(m *graph.Model) []Component {
	state := make(map[string]*tarjanState, m.NodeCount())
	var stack []string
	indexCounter := 0
	var components []Component

	var strongconnect func(u string)
	strongconnect = func(u string) {
		state[u] = &tarjanState{index: indexCounter, lowlink: indexCounter, onStack: true}
		indexCounter++
		stack = append(stack, u)

		for _, v := range m.Successors(u) {
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

		// u is a root node: pop the stack down to u to form one SCC
		if state[u].lowlink == state[u].index {
			var members []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				state[w].onStack = false
				members = append(members, w)
				if w == u {
					break
				}
			}
			sort.Strings(members)
			components = append(components, Component{Nodes: members, Size: len(members)})
		}
	}

	for _, id := range m.NodeIDs() {
		if _, exists := state[id]; !exists {
			strongconnect(id)
		}
	}

	sort.SliceStable(components, func(i, j int) bool {
		if components[i].Size != components[j].Size {
			return components[i].Size > components[j].Size
		}
		return components[i].Nodes[0] < components[j].Nodes[0]
	})
	for i := range components {
		components[i].ID = i
	}
	return components
}

// LargestComponent returns the biggest SCC, or nil for an empty graph.
func LargestComponent(m *graph.Model) *Component {
	components := StronglyConnectedComponents(m)
	if len(components) == 0 {
		return nil
	}
	return &components[0]
}
