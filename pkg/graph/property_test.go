package graph

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestModelInvariants verifies with property-based testing the two
// structural invariants every built model must satisfy: the forward and
// reverse maps mirror each other exactly, and normalizing input twice
// builds the same adjacency as normalizing it once.
func TestModelInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("forward and reverse adjacency are symmetric", prop.ForAll(
		func(names []string) bool {
			m, err := Build(chainConfig(names))
			if err != nil {
				return false
			}
			return symmetric(m)
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.Property("normalization is idempotent under Build", prop.ForAll(
		func(names []string) bool {
			raw := chainConfig(names)
			once, err := Build(Normalize(raw))
			if err != nil {
				return false
			}
			direct, err := Build(raw)
			if err != nil {
				return false
			}
			return reflect.DeepEqual(once.Forward, direct.Forward) &&
				reflect.DeepEqual(once.Reverse, direct.Reverse) &&
				reflect.DeepEqual(once.Kinds, direct.Kinds)
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}

// chainConfig turns a name list into a config declaring the names as hosts
// in list form plus network edges chaining them together.
func chainConfig(names []string) map[string]any {
	hosts := make([]any, 0, len(names))
	for _, name := range names {
		hosts = append(hosts, map[string]any{"id": name})
	}
	edges := make([]any, 0)
	for i := 1; i < len(names); i++ {
		edges = append(edges, map[string]any{"from": names[i-1], "to": names[i]})
	}
	return map[string]any{
		"hosts":         hosts,
		"network_edges": edges,
	}
}

func symmetric(m *Model) bool {
	for u, targets := range m.Forward {
		for v := range targets {
			if !m.Reverse[v][u] {
				return false
			}
		}
	}
	for v, sources := range m.Reverse {
		for u := range sources {
			if !m.Forward[u][v] {
				return false
			}
		}
	}
	return true
}
