package algorithms

import (
	"container/heap"
	"container/list"
	"math"

	"github.com/kestrelsec/threatviz/pkg/graph"
)

// ShortestPath finds a shortest path (by hop count) from source to target
// using BFS with parent-pointer reconstruction, so the queue never stores
// whole paths. Returns [source] when source equals target and nil when no
// path exists; absence of a path is a valid result, not an error.
func ShortestPath(m *graph.Model, source, target string) []string {
	if source == target {
		if m.HasNode(source) {
			return []string{source}
		}
		return nil
	}
	if !m.HasNode(source) || !m.HasNode(target) {
		return nil
	}

	parent := map[string]string{source: source}
	queue := list.New()
	queue.PushBack(source)

	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(string)
		for _, next := range m.Successors(current) {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = current
			if next == target {
				return reconstruct(parent, source, target)
			}
			queue.PushBack(next)
		}
	}
	return nil
}

// reconstruct walks the parent pointers back from target to source.
func reconstruct(parent map[string]string, source, target string) []string {
	path := []string{target}
	for node := target; node != source; {
		node = parent[node]
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// WeightFunc gives the cost of traversing into a node. Edge (u, v) costs
// weight(v), so a path's total is the sum over its nodes after the source.
type WeightFunc func(nodeID string) float64

// Severity defaults used by DefaultWeight.
const (
	// DefaultSeverity substitutes for a vulnerability with no resolved
	// CVSS score. Applied only here, at weight-computation time.
	DefaultSeverity = 5.0

	// MinTraversalCost keeps Dijkstra's weights strictly positive even for
	// a 10.0-severity vulnerability.
	MinTraversalCost = 0.1
)

// DefaultWeight builds the standard attack-cost function: a vulnerability
// costs max(0.1, 10 − severity), anything else costs 1.0. Inverting the
// severity makes high-severity vulnerabilities cheap to traverse, so the
// cheapest path is the highest-risk one.
func DefaultWeight(m *graph.Model) WeightFunc {
	return func(nodeID string) float64 {
		if m.KindOf(nodeID) != graph.KindVulnerability {
			return 1.0
		}
		severity, ok := m.Severity(nodeID)
		if !ok {
			severity = DefaultSeverity
		}
		cost := 10.0 - severity
		if cost < MinTraversalCost {
			cost = MinTraversalCost
		}
		return cost
	}
}

// pqItem is one priority-queue entry for Dijkstra.
type pqItem struct {
	node string
	dist float64
}

// distanceQueue is a min-heap of pqItems ordered by distance, node ID
// breaking ties for deterministic expansion order.
type distanceQueue []pqItem

func (q distanceQueue) Len() int { return len(q) }
func (q distanceQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}
func (q distanceQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *distanceQueue) Push(x any) { *q = append(*q, x.(pqItem)) }

func (q *distanceQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

// WeightedShortestPath runs Dijkstra's algorithm from source to target with
// the given weight function (nil selects DefaultWeight). Returns the path
// and its total cost; (nil, +Inf) when target is unreachable and
// ([source], 0) when source equals target.
func WeightedShortestPath(m *graph.Model, source, target string, weight WeightFunc) ([]string, float64) {
	if weight == nil {
		weight = DefaultWeight(m)
	}
	if source == target {
		if m.HasNode(source) {
			return []string{source}, 0
		}
		return nil, math.Inf(1)
	}
	if !m.HasNode(source) || !m.HasNode(target) {
		return nil, math.Inf(1)
	}

	dist := map[string]float64{source: 0}
	parent := map[string]string{source: source}
	done := make(map[string]bool)

	pq := &distanceQueue{{node: source, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		current := heap.Pop(pq).(pqItem)
		if done[current.node] {
			continue
		}
		done[current.node] = true

		if current.node == target {
			return reconstruct(parent, source, target), current.dist
		}

		for _, next := range m.Successors(current.node) {
			if done[next] {
				continue
			}
			candidate := current.dist + weight(next)
			if old, seen := dist[next]; !seen || candidate < old {
				dist[next] = candidate
				parent[next] = current.node
				heap.Push(pq, pqItem{node: next, dist: candidate})
			}
		}
	}
	return nil, math.Inf(1)
}
