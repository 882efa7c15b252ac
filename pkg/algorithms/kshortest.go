package algorithms

import (
	"container/list"
	"sort"
	"strings"

	"github.com/kestrelsec/threatviz/pkg/graph"
)

// KShortestPaths returns up to k shortest simple paths from source to
// target using Yen's algorithm over hop-count BFS, ordered by increasing
// length with lexicographic order breaking ties. An unreachable target (or
// unknown endpoint) yields an empty result.
func KShortestPaths(m *graph.Model, source, target string, k int) [][]string {
	if k <= 0 {
		return [][]string{}
	}

	first := restrictedBFS(m, source, target, nil, nil)
	if first == nil {
		return [][]string{}
	}

	accepted := [][]string{first}
	seen := map[string]bool{pathKey(first): true}
	var candidates [][]string

	for len(accepted) < k {
		prev := accepted[len(accepted)-1]

		for i := 0; i < len(prev)-1; i++ {
			spur := prev[i]
			rootPath := prev[:i+1]

			// Ban edges that would reproduce an already-accepted path
			// sharing this root, and the root's interior nodes.
			bannedEdges := make(map[[2]string]bool)
			for _, p := range accepted {
				if len(p) > i+1 && samePrefix(p, rootPath) {
					bannedEdges[[2]string{p[i], p[i+1]}] = true
				}
			}
			bannedNodes := make(map[string]bool, i)
			for _, node := range rootPath[:i] {
				bannedNodes[node] = true
			}

			spurPath := restrictedBFS(m, spur, target, bannedNodes, bannedEdges)
			if spurPath == nil {
				continue
			}

			total := make([]string, 0, i+len(spurPath))
			total = append(total, rootPath[:i]...)
			total = append(total, spurPath...)
			if key := pathKey(total); !seen[key] {
				seen[key] = true
				candidates = append(candidates, total)
			}
		}

		if len(candidates) == 0 {
			break
		}
		sort.SliceStable(candidates, func(a, b int) bool {
			if len(candidates[a]) != len(candidates[b]) {
				return len(candidates[a]) < len(candidates[b])
			}
			return pathKey(candidates[a]) < pathKey(candidates[b])
		})
		accepted = append(accepted, candidates[0])
		candidates = candidates[1:]
	}

	return accepted
}

// restrictedBFS is ShortestPath with node and edge bans, the primitive
// Yen's spur searches need.
func restrictedBFS(m *graph.Model, source, target string, bannedNodes map[string]bool, bannedEdges map[[2]string]bool) []string {
	if !m.HasNode(source) || !m.HasNode(target) || bannedNodes[source] {
		return nil
	}
	if source == target {
		return []string{source}
	}

	parent := map[string]string{source: source}
	queue := list.New()
	queue.PushBack(source)

	for queue.Len() > 0 {
		current := queue.Remove(queue.Front()).(string)
		for _, next := range m.Successors(current) {
			if bannedNodes[next] || bannedEdges[[2]string{current, next}] {
				continue
			}
			if _, visited := parent[next]; visited {
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

func samePrefix(path, prefix []string) bool {
	if len(path) < len(prefix) {
		return false
	}
	for i := range prefix {
		if path[i] != prefix[i] {
			return false
		}
	}
	return true
}

func pathKey(path []string) string {
	return strings.Join(path, "\x1f")
}
