package algorithms

import (
	"math"
	"testing"

	"github.com/kestrelsec/threatviz/pkg/graph"
)

func TestPageRank_EmptyGraph(t *testing.T) {
	result := PageRank(graph.NewModel(), DefaultPageRankOptions())

	if len(result.Scores) != 0 {
		t.Errorf("Expected no scores for empty graph, got %v", result.Scores)
	}
	if !result.Converged {
		t.Error("Expected trivial convergence on empty graph")
	}
}

func TestPageRank_ScoresSumToOne(t *testing.T) {
	m := diamondModel()

	result := PageRank(m, DefaultPageRankOptions())

	sum := 0.0
	for _, s := range result.Scores {
		sum += s
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Expected scores to sum to 1, got %v", sum)
	}
	if !result.Converged {
		t.Errorf("Expected convergence on a 4-node graph after %d iterations", result.Iterations)
	}
}

func TestPageRank_SinkAccumulates(t *testing.T) {
	// Everything flows into d; it must outrank the sources.
	m := diamondModel()

	result := PageRank(m, DefaultPageRankOptions())

	if result.Scores["d"] <= result.Scores["a"] {
		t.Errorf("Expected sink d to outrank source a, got d=%v a=%v", result.Scores["d"], result.Scores["a"])
	}
}

func TestPageRank_ZeroOptionsGetDefaults(t *testing.T) {
	m := diamondModel()

	result := PageRank(m, PageRankOptions{})

	if len(result.Scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(result.Scores))
	}
	if !result.Converged {
		t.Error("Expected convergence with defaulted options")
	}
}

func TestPageRank_RetriesInsteadOfFailing(t *testing.T) {
	// A chain with an absurdly tight iteration cap cannot converge on the
	// first run; the retry must still return usable scores.
	m := edgeModel([2]string{"a", "b"}, [2]string{"b", "c"})

	opts := DefaultPageRankOptions()
	opts.MaxIterations = 1

	result := PageRank(m, opts)

	if len(result.Scores) != 3 {
		t.Fatalf("Expected scores despite non-convergence, got %v", result.Scores)
	}
	if result.Iterations <= 1 {
		t.Errorf("Expected a relaxed retry to run more iterations, got %d", result.Iterations)
	}
}
