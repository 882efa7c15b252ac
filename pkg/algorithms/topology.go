package algorithms

import (
	"container/list"

	"github.com/kestrelsec/threatviz/pkg/graph"
)

// Density returns the ratio of actual to possible directed edges. Empty and
// single-node graphs have density 0.
func Density(m *graph.Model) float64 {
	n := m.NodeCount()
	if n <= 1 {
		return 0.0
	}
	return float64(m.EdgeCount()) / float64(n*(n-1))
}

// IsDAG reports whether the graph contains no cycle, using three-color DFS
// and stopping at the first back edge.
func IsDAG(m *graph.Model) bool {
	const (
		white = 0 // unvisited
		gray  = 1 // in the current DFS stack
		black = 2 // fully explored
	)
	color := make(map[string]int, m.NodeCount())

	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		for _, next := range m.Successors(id) {
			switch color[next] {
			case white:
				if !visit(next) {
					return false
				}
			case gray:
				return false // back edge
			}
		}
		color[id] = black
		return true
	}

	for _, id := range m.NodeIDs() {
		if color[id] == white {
			if !visit(id) {
				return false
			}
		}
	}
	return true
}

// Diameter returns the longest shortest path in the graph. When the graph
// is not strongly connected the diameter is taken over the largest SCC of
// size > 1; with no such component the diameter is not computable and ok is
// false.
func Diameter(m *graph.Model) (int, bool) {
	n := m.NodeCount()
	if n == 0 {
		return 0, false
	}

	components := StronglyConnectedComponents(m)
	if len(components) == 1 && components[0].Size == n && n > 1 {
		return eccentricityMax(m, nil), true
	}

	largest := components[0]
	if largest.Size <= 1 {
		return 0, false
	}
	within := make(map[string]bool, largest.Size)
	for _, id := range largest.Nodes {
		within[id] = true
	}
	return eccentricityMax(m, within), true
}

// eccentricityMax runs a BFS from every node (optionally restricted to a
// member set) and returns the largest finite distance observed.
func eccentricityMax(m *graph.Model, within map[string]bool) int {
	max := 0
	for _, source := range m.NodeIDs() {
		if within != nil && !within[source] {
			continue
		}
		distance := map[string]int{source: 0}

		queue := list.New()
		queue.PushBack(source)

		for queue.Len() > 0 {
			v := queue.Remove(queue.Front()).(string)
			for _, w := range m.Successors(v) {
				if within != nil && !within[w] {
					continue
				}
				if _, seen := distance[w]; !seen {
					distance[w] = distance[v] + 1
					if distance[w] > max {
						max = distance[w]
					}
					queue.PushBack(w)
				}
			}
		}
	}
	return max
}

// GraphMetrics bundles the aggregate structural measures of one model.
type GraphMetrics struct {
	Nodes          int                `json:"nodes"`
	Edges          int                `json:"edges"`
	Density        float64            `json:"density"`
	Diameter       *int               `json:"diameter"` // nil when not computable
	ComponentCount int                `json:"scc_count"`
	LargestSCCSize int                `json:"largest_scc_size"`
	CycleCount     int                `json:"cycle_count"`
	IsDAG          bool               `json:"is_dag"`
	KindCounts     map[graph.Kind]int `json:"kind_counts"`
}

// Metrics computes the aggregate metrics bundle. Tolerant of empty and
// single-node graphs.
func Metrics(m *graph.Model) *GraphMetrics {
	metrics := &GraphMetrics{
		Nodes:      m.NodeCount(),
		Edges:      m.EdgeCount(),
		Density:    Density(m),
		IsDAG:      IsDAG(m),
		KindCounts: m.KindCounts(),
		CycleCount: len(SimpleCycles(m)),
	}

	if d, ok := Diameter(m); ok {
		metrics.Diameter = &d
	}

	components := StronglyConnectedComponents(m)
	metrics.ComponentCount = len(components)
	if len(components) > 0 {
		metrics.LargestSCCSize = components[0].Size
	}
	return metrics
}
