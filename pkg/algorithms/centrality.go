package algorithms

import (
	"container/list"
	"sort"

	"github.com/kestrelsec/threatviz/pkg/graph"
)

// NodeCriticality ranks a node by its combined degree.
type NodeCriticality struct {
	ID          string `json:"id"`
	InDegree    int    `json:"in_degree"`
	OutDegree   int    `json:"out_degree"`
	Criticality int    `json:"criticality"`
}

// DegreeCriticality scores every node as in-degree + out-degree and returns
// the ranking in descending order, ties keeping node-ID order. A topN of
// zero or less returns all nodes.
func DegreeCriticality(m *graph.Model, topN int) []NodeCriticality {
	ids := m.NodeIDs()
	ranked := make([]NodeCriticality, 0, len(ids))
	for _, id := range ids {
		in, out := m.InDegree(id), m.OutDegree(id)
		ranked = append(ranked, NodeCriticality{
			ID:          id,
			InDegree:    in,
			OutDegree:   out,
			Criticality: in + out,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Criticality > ranked[j].Criticality
	})
	if topN > 0 && topN < len(ranked) {
		ranked = ranked[:topN]
	}
	return ranked
}

// BetweennessCentrality computes betweenness for every node with Brandes'
// algorithm: one BFS plus back-propagation per source, O(VE) total. Scores
// are normalized by 1/((n-1)(n-2)) for n > 2, matching the directed-graph
// convention.
func BetweennessCentrality(m *graph.Model) map[string]float64 {
	ids := m.NodeIDs()
	betweenness := make(map[string]float64, len(ids))
	for _, id := range ids {
		betweenness[id] = 0.0
	}

	for _, source := range ids {
		stack := make([]string, 0, len(ids))
		predecessors := make(map[string][]string, len(ids))
		sigma := map[string]float64{source: 1.0}
		distance := map[string]int{source: 0}

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v := queue.Remove(queue.Front()).(string)
			stack = append(stack, v)

			for _, w := range m.Successors(v) {
				if _, seen := distance[w]; !seen {
					distance[w] = distance[v] + 1
					queue.PushBack(w)
				}
				if distance[w] == distance[v]+1 {
					sigma[w] += sigma[v]
					predecessors[w] = append(predecessors[w], v)
				}
			}
		}

		delta := make(map[string]float64, len(stack))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range predecessors[w] {
				delta[v] += (sigma[v] / sigma[w]) * (1.0 + delta[w])
			}
			if w != source {
				betweenness[w] += delta[w]
			}
		}
	}

	if n := len(ids); n > 2 {
		norm := 1.0 / float64((n-1)*(n-2))
		for id := range betweenness {
			betweenness[id] *= norm
		}
	}
	return betweenness
}

// ClosenessCentrality measures how near each node sits to everything it can
// reach: reachable count divided by total forward BFS distance. Nodes that
// reach nothing score zero.
func ClosenessCentrality(m *graph.Model) map[string]float64 {
	ids := m.NodeIDs()
	closeness := make(map[string]float64, len(ids))

	for _, source := range ids {
		distance := map[string]int{source: 0}

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v := queue.Remove(queue.Front()).(string)
			for _, w := range m.Successors(v) {
				if _, seen := distance[w]; !seen {
					distance[w] = distance[v] + 1
					queue.PushBack(w)
				}
			}
		}

		total, reachable := 0, 0
		for _, d := range distance {
			if d > 0 {
				total += d
				reachable++
			}
		}
		if total > 0 {
			closeness[source] = float64(reachable) / float64(total)
		} else {
			closeness[source] = 0.0
		}
	}
	return closeness
}
