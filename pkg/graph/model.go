package graph

import "sort"

// Model is the canonical adjacency representation of an attack graph:
// forward and reverse successor sets plus a kind tag per node. It is built
// in full by Build, never mutated afterwards, and therefore safe for
// concurrent read-only use. Re-loading a configuration produces a fresh
// Model; nothing is patched in place.
type Model struct {
	// BuildID correlates log entries from one build with the analyses run
	// against it.
	BuildID string

	// Forward maps node ID -> set of successor IDs; Reverse maps node ID ->
	// set of predecessor IDs. Every node has an entry in both, possibly
	// empty. Sets deduplicate multi-edges between the same pair.
	Forward map[string]map[string]bool
	Reverse map[string]map[string]bool

	// Kinds tags every node with exactly one Kind.
	Kinds map[string]Kind

	// Records keeps the raw attributes of declared nodes for callers that
	// need labels, ports or CVE identifiers. The algorithms ignore it.
	Records map[string]map[string]any

	// Severities holds resolved CVSS scores for vulnerability nodes. A
	// missing entry means "no opinion"; the 5.0 default is applied only at
	// weight-computation time, never stored here.
	Severities map[string]float64
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		Forward:    make(map[string]map[string]bool),
		Reverse:    make(map[string]map[string]bool),
		Kinds:      make(map[string]Kind),
		Records:    make(map[string]map[string]any),
		Severities: make(map[string]float64),
	}
}

// HasNode reports whether id exists in the model.
func (m *Model) HasNode(id string) bool {
	_, ok := m.Forward[id]
	if !ok {
		_, ok = m.Kinds[id]
	}
	return ok
}

// KindOf returns the kind of id, or KindImplicit for unknown nodes.
func (m *Model) KindOf(id string) Kind {
	if k, ok := m.Kinds[id]; ok {
		return k
	}
	return KindImplicit
}

// Severity returns the resolved CVSS score for id and whether one exists.
func (m *Model) Severity(id string) (float64, bool) {
	s, ok := m.Severities[id]
	return s, ok
}

// NodeIDs returns all node IDs in sorted order. Algorithms iterate this
// instead of ranging over maps so results are reproducible across runs.
func (m *Model) NodeIDs() []string {
	ids := make([]string, 0, len(m.Forward))
	for id := range m.Forward {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Successors returns the forward neighbors of id in sorted order.
func (m *Model) Successors(id string) []string {
	return sortedSet(m.Forward[id])
}

// Predecessors returns the reverse neighbors of id in sorted order.
func (m *Model) Predecessors(id string) []string {
	return sortedSet(m.Reverse[id])
}

// OutDegree returns the number of distinct successors of id.
func (m *Model) OutDegree(id string) int { return len(m.Forward[id]) }

// InDegree returns the number of distinct predecessors of id.
func (m *Model) InDegree(id string) int { return len(m.Reverse[id]) }

// NodeCount returns the number of nodes in the model.
func (m *Model) NodeCount() int { return len(m.Forward) }

// EdgeCount returns the number of distinct directed edges.
func (m *Model) EdgeCount() int {
	n := 0
	for _, targets := range m.Forward {
		n += len(targets)
	}
	return n
}

// KindCounts returns the number of nodes per kind.
func (m *Model) KindCounts() map[Kind]int {
	counts := make(map[Kind]int)
	for _, id := range m.NodeIDs() {
		counts[m.KindOf(id)]++
	}
	return counts
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
