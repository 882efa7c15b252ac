// Package algorithms implements path finding and structural analytics over
// the attack-graph adjacency model. Every function treats the model as
// read-only, so a single model can serve many analyses concurrently.
package algorithms

import (
	"github.com/kestrelsec/threatviz/pkg/graph"
)

// Default bounds for simple-path enumeration. DFS over a dense graph blows
// up combinatorially, so both limits are always in force.
const (
	DefaultMaxPaths = 100
	DefaultMaxDepth = 10
)

// dfsFrame is one entry of the explicit DFS stack: the node being expanded
// and the simple path that reached it.
type dfsFrame struct {
	node string
	path []string
}

// FindAllPaths enumerates up to maxPaths distinct simple paths from source
// to target, each at most maxDepth nodes long. Non-positive limits fall back
// to the package defaults.
//
// The search is an iterative depth-first traversal. Successors are expanded
// in sorted ID order, so the result sequence is identical across calls for
// the same model. An unknown source is a structural error; an unreachable
// target yields an empty result.
func FindAllPaths(m *graph.Model, source, target string, maxPaths, maxDepth int) ([][]string, error) {
	if !m.HasNode(source) {
		return nil, graph.NewNodeNotFound("find_all_paths", source)
	}
	if maxPaths <= 0 {
		maxPaths = DefaultMaxPaths
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	paths := make([][]string, 0)
	stack := []dfsFrame{{node: source, path: []string{source}}}

	for len(stack) > 0 && len(paths) < maxPaths {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if frame.node == target {
			paths = append(paths, frame.path)
			continue
		}
		if len(frame.path) >= maxDepth {
			continue
		}
		stack = pushSuccessors(m, stack, frame)
	}

	return paths, nil
}

// pushSuccessors pushes the unvisited successors of frame.node in reverse
// sorted order, so the lexicographically first successor is popped first.
func pushSuccessors(m *graph.Model, stack []dfsFrame, frame dfsFrame) []dfsFrame {
	successors := m.Successors(frame.node)
	for i := len(successors) - 1; i >= 0; i-- {
		next := successors[i]
		if onPath(frame.path, next) {
			continue
		}
		path := make([]string, len(frame.path)+1)
		copy(path, frame.path)
		path[len(frame.path)] = next
		stack = append(stack, dfsFrame{node: next, path: path})
	}
	return stack
}

func onPath(path []string, node string) bool {
	for _, p := range path {
		if p == node {
			return true
		}
	}
	return false
}

// PathIterator produces simple paths from source to target one at a time,
// in the same order FindAllPaths would, without a path-count cap. A consumer
// that stops after N results pays only for those N; a fresh iterator
// restarts the enumeration.
type PathIterator struct {
	model    *graph.Model
	target   string
	maxDepth int
	stack    []dfsFrame
}

// NewPathIterator starts a lazy enumeration of simple paths. Depth is the
// only bound; non-positive maxDepth falls back to DefaultMaxDepth.
func NewPathIterator(m *graph.Model, source, target string, maxDepth int) (*PathIterator, error) {
	if !m.HasNode(source) {
		return nil, graph.NewNodeNotFound("all_paths", source)
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &PathIterator{
		model:    m,
		target:   target,
		maxDepth: maxDepth,
		stack:    []dfsFrame{{node: source, path: []string{source}}},
	}, nil
}

// Next returns the next path, or false when the enumeration is exhausted.
func (it *PathIterator) Next() ([]string, bool) {
	for len(it.stack) > 0 {
		frame := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		if frame.node == it.target {
			return frame.path, true
		}
		if len(frame.path) >= it.maxDepth {
			continue
		}
		it.stack = pushSuccessors(it.model, it.stack, frame)
	}
	return nil, false
}
