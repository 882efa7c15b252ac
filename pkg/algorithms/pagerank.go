package algorithms

import (
	"math"

	"github.com/kestrelsec/threatviz/pkg/graph"
	"github.com/kestrelsec/threatviz/pkg/logging"
)

// PageRankOptions configures the power iteration.
type PageRankOptions struct {
	DampingFactor float64
	MaxIterations int
	Tolerance     float64

	// Logger reports the internal retry when the first run fails to
	// converge. Nil means no logging.
	Logger logging.Logger
}

// DefaultPageRankOptions returns the standard configuration.
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		DampingFactor: 0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

// PageRankResult holds the scores and convergence outcome.
type PageRankResult struct {
	Scores     map[string]float64
	Iterations int
	Converged  bool
}

// PageRank computes PageRank scores for all nodes. If the power iteration
// does not converge within MaxIterations it is retried once with a four
// times larger cap and a relaxed tolerance instead of failing; the result
// of the retry is returned either way, so callers never see a hard error
// for a convergence problem.
func PageRank(m *graph.Model, opts PageRankOptions) *PageRankResult {
	if opts.DampingFactor <= 0 || opts.DampingFactor >= 1 {
		opts.DampingFactor = 0.85
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 100
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = 1e-6
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}

	result := powerIteration(m, opts)
	if !result.Converged {
		relaxed := opts
		relaxed.MaxIterations = opts.MaxIterations * 4
		relaxed.Tolerance = opts.Tolerance * 10
		log.Warn("pagerank did not converge, retrying with relaxed parameters",
			logging.Component("pagerank"),
			logging.Int("max_iterations", relaxed.MaxIterations),
			logging.Float64("tolerance", relaxed.Tolerance))
		retried := powerIteration(m, relaxed)
		retried.Iterations += result.Iterations
		result = retried
	}
	return result
}

func powerIteration(m *graph.Model, opts PageRankOptions) *PageRankResult {
	ids := m.NodeIDs()
	if len(ids) == 0 {
		return &PageRankResult{Scores: map[string]float64{}, Converged: true}
	}

	n := float64(len(ids))
	scores := make(map[string]float64, len(ids))
	for _, id := range ids {
		scores[id] = 1.0 / n
	}

	newScores := make(map[string]float64, len(ids))
	iterations := 0
	converged := false

	for iterations < opts.MaxIterations {
		iterations++

		for _, id := range ids {
			score := (1.0 - opts.DampingFactor) / n
			for _, from := range m.Predecessors(id) {
				if out := m.OutDegree(from); out > 0 {
					score += opts.DampingFactor * scores[from] / float64(out)
				}
			}
			newScores[id] = score
		}

		maxDiff := 0.0
		for _, id := range ids {
			if diff := math.Abs(newScores[id] - scores[id]); diff > maxDiff {
				maxDiff = diff
			}
		}
		scores, newScores = newScores, scores

		if maxDiff < opts.Tolerance {
			converged = true
			break
		}
	}

	// Normalize so scores sum to 1
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	if sum > 0 {
		for id := range scores {
			scores[id] /= sum
		}
	}

	return &PageRankResult{Scores: scores, Iterations: iterations, Converged: converged}
}
