package algorithms

import (
	"testing"

	"github.com/kestrelsec/threatviz/pkg/graph"
)

// edgeModel builds a model of plain host nodes from an edge list.
func edgeModel(edges ...[2]string) *graph.Model {
	m := graph.NewModel()
	for _, e := range edges {
		ensureTestNode(m, e[0], graph.KindHost)
		ensureTestNode(m, e[1], graph.KindHost)
		m.Forward[e[0]][e[1]] = true
		m.Reverse[e[1]][e[0]] = true
	}
	return m
}

func ensureTestNode(m *graph.Model, id string, kind graph.Kind) {
	if m.Forward[id] == nil {
		m.Forward[id] = make(map[string]bool)
		m.Reverse[id] = make(map[string]bool)
		m.Kinds[id] = kind
	}
}

// addNode adds an isolated node of the given kind.
func addNode(m *graph.Model, id string, kind graph.Kind) {
	ensureTestNode(m, id, kind)
}

// diamondModel is the end-to-end scenario graph: hosts a, b, c, d with
// edges a->b, b->c, a->c, c->d.
func diamondModel() *graph.Model {
	return edgeModel(
		[2]string{"a", "b"},
		[2]string{"b", "c"},
		[2]string{"a", "c"},
		[2]string{"c", "d"},
	)
}

func samePath(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func requirePath(t *testing.T, got, want []string) {
	t.Helper()
	if !samePath(got, want) {
		t.Fatalf("Expected path %v, got %v", want, got)
	}
}
