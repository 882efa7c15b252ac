package algorithms

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kestrelsec/threatviz/pkg/graph"
)

// CriticalBetweenness is the betweenness threshold above which a chokepoint
// is flagged critical.
const CriticalBetweenness = 0.1

// EntryPointNames are the well-known external-actor IDs treated as attack
// surface regardless of their in-degree, matched case-insensitively.
var EntryPointNames = map[string]bool{
	"internet": true,
	"attacker": true,
	"external": true,
}

// Chokepoint is a node that shortest paths funnel through.
type Chokepoint struct {
	ID          string  `json:"id"`
	Betweenness float64 `json:"betweenness"`
	InDegree    int     `json:"in_degree"`
	OutDegree   int     `json:"out_degree"`
	Critical    bool    `json:"critical"`
}

// Chokepoints returns every node with betweenness > 0, annotated with its
// degrees and flagged critical above CriticalBetweenness, sorted by
// betweenness descending with node-ID order breaking ties.
func Chokepoints(m *graph.Model) []Chokepoint {
	betweenness := BetweennessCentrality(m)

	points := make([]Chokepoint, 0)
	for _, id := range m.NodeIDs() {
		b := betweenness[id]
		if b <= 0 {
			continue
		}
		points = append(points, Chokepoint{
			ID:          id,
			Betweenness: b,
			InDegree:    m.InDegree(id),
			OutDegree:   m.OutDegree(id),
			Critical:    b > CriticalBetweenness,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Betweenness > points[j].Betweenness
	})
	return points
}

// EntryPoint is a node attacks can originate from.
type EntryPoint struct {
	ID             string     `json:"id"`
	Kind           graph.Kind `json:"kind"`
	ReachableCount int        `json:"reachable_count"`
}

// AttackSurface identifies entry points: nodes with zero in-degree and
// nonzero out-degree, plus any node whose ID matches a well-known
// external-actor name. Each is annotated with the number of nodes reachable
// from it, and the list is sorted by that count descending.
func AttackSurface(m *graph.Model) []EntryPoint {
	points := make([]EntryPoint, 0)
	for _, id := range m.NodeIDs() {
		structural := m.InDegree(id) == 0 && m.OutDegree(id) > 0
		wellKnown := EntryPointNames[strings.ToLower(id)]
		if !structural && !wellKnown {
			continue
		}
		points = append(points, EntryPoint{
			ID:             id,
			Kind:           m.KindOf(id),
			ReachableCount: len(Descendants(m, id)),
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].ReachableCount > points[j].ReachableCount
	})
	return points
}

// Descendants returns the set of nodes reachable from id by forward edges,
// excluding id itself.
func Descendants(m *graph.Model, id string) map[string]bool {
	return reachable(m, id, m.Successors)
}

// Ancestors returns the set of nodes from which id is reachable, excluding
// id itself.
func Ancestors(m *graph.Model, id string) map[string]bool {
	return reachable(m, id, m.Predecessors)
}

func reachable(m *graph.Model, id string, neighbors func(string) []string) map[string]bool {
	seen := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range neighbors(current) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	delete(seen, id)
	return seen
}

// ImpactResult reports how much damage a single vulnerability unlocks.
type ImpactResult struct {
	ID                   string  `json:"id"`
	Severity             float64 `json:"severity"`
	Impact               float64 `json:"impact"`
	DescendantCount      int     `json:"descendant_count"`
	PrivilegeDescendants int     `json:"privilege_descendants"`
	AncestorCount        int     `json:"ancestor_count"`
}

// VulnerabilityImpact combines a vulnerability's severity with its
// reachability: impact = severity × (1 + min(descendants/10, 2.0) × 0.2),
// capped at 10.0. A vulnerability without a resolved score uses the neutral
// default severity. Unknown nodes are a structural error, as is asking
// about a node of any other kind.
func VulnerabilityImpact(m *graph.Model, id string) (*ImpactResult, error) {
	if !m.HasNode(id) {
		return nil, graph.NewNodeNotFound("vulnerability_impact", id)
	}
	if kind := m.KindOf(id); kind != graph.KindVulnerability {
		return nil, fmt.Errorf("node %q has kind %q, want %q", id, kind, graph.KindVulnerability)
	}

	severity, ok := m.Severity(id)
	if !ok {
		severity = DefaultSeverity
	}

	descendants := Descendants(m, id)
	privileges := 0
	for node := range descendants {
		if m.KindOf(node) == graph.KindPrivilege {
			privileges++
		}
	}

	reach := float64(len(descendants)) / 10.0
	if reach > 2.0 {
		reach = 2.0
	}
	impact := severity * (1.0 + reach*0.2)
	if impact > 10.0 {
		impact = 10.0
	}

	return &ImpactResult{
		ID:                   id,
		Severity:             severity,
		Impact:               impact,
		DescendantCount:      len(descendants),
		PrivilegeDescendants: privileges,
		AncestorCount:        len(Ancestors(m, id)),
	}, nil
}
