package graph

import (
	"radius/internal/change"
)

// Options configures the score diffusion computation.
type Options struct {
	// Damping is the fraction of rank carried over each iteration (default: 0.85)
	Damping float64

	// MaxIterations is the hard iteration cap (default: 100)
	MaxIterations int

	// Tolerance for convergence detection, total absolute change (default: 1e-4)
	Tolerance float64
}

// DefaultOptions returns the standard diffusion parameters.
func DefaultOptions() Options {
	return Options{
		Damping:       0.85,
		MaxIterations: 100,
		Tolerance:     1e-4,
	}
}

// Stats describes how a diffusion run terminated.
type Stats struct {
	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`
}

// contractBoost is the extra multiplier for components named in the
// change's affected contracts.
const contractBoost = 1.4

// Propagate runs the diffusion with default options.
func Propagate(g *Graph, spec *change.Specification) map[string]float64 {
	scores, _ := PropagateWithOptions(g, spec, DefaultOptions())
	return scores
}

// PropagateWithOptions computes the per-component impact scores for a
// change. The raw diffusion assigns every node rank 1/N, then repeatedly
// sets newRank(v) = (1−d) + d·Σ rank(u)·w(u→v)/outDeg(u) until total
// absolute change falls below the tolerance or the iteration cap is hit.
// A node without outgoing edges keeps its rank to itself; that dangling
// mass is deliberately lost, not redistributed.
//
// Ranks are then normalized to sum to 1 and adjusted for the change's
// character: the change-type multiplier and, for nodes named in
// affectedContracts, the contract boost. Scores cap at 1.0.
func PropagateWithOptions(g *Graph, spec *change.Specification, opts Options) (map[string]float64, Stats) {
	n := g.NumNodes()
	if n == 0 {
		return map[string]float64{}, Stats{}
	}

	if opts.Damping <= 0 || opts.Damping >= 1 {
		opts.Damping = 0.85
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 100
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = 1e-4
	}

	// Pre-compute out-degree normalization as total outgoing weight.
	// Build assigns DefaultEdgeWeight (1.0) to every edge, so today this
	// equals the edge count; summing keeps the split of a node's rank
	// proportional if weighted edges ever appear.
	outDegree := make([]float64, n)
	for i, edges := range g.outEdges {
		for _, e := range edges {
			outDegree[i] += e.weight
		}
	}

	ranks := make([]float64, n)
	for i := range ranks {
		ranks[i] = 1.0 / float64(n)
	}

	var stats Stats
	newRanks := make([]float64, n)

	for iter := 0; iter < opts.MaxIterations; iter++ {
		stats.Iterations = iter + 1

		for i := range newRanks {
			newRanks[i] = 0
		}

		for i, edges := range g.outEdges {
			if len(edges) == 0 || outDegree[i] == 0 {
				continue
			}
			contrib := ranks[i] / outDegree[i]
			for _, e := range edges {
				newRanks[e.target] += contrib * e.weight
			}
		}

		totalDiff := 0.0
		for i := range newRanks {
			newRanks[i] = (1-opts.Damping) + opts.Damping*newRanks[i]
			totalDiff += abs(newRanks[i] - ranks[i])
		}

		// Synchronous update: swap the full vectors
		ranks, newRanks = newRanks, ranks

		if totalDiff < opts.Tolerance {
			stats.Converged = true
			break
		}
	}

	// Normalize so that ranks sum to 1
	sum := 0.0
	for _, r := range ranks {
		sum += r
	}
	if sum > 0 {
		for i := range ranks {
			ranks[i] /= sum
		}
	}

	// Adjustment pass: the change's character scales impact system-wide
	typeMult := spec.ChangeType.Multiplier()
	contracts := make(map[string]bool, len(spec.AffectedContracts))
	for _, c := range spec.AffectedContracts {
		contracts[c] = true
	}

	scores := make(map[string]float64, n)
	for i, name := range g.nodes {
		score := ranks[i] * typeMult
		if contracts[name] {
			score *= contractBoost
		}
		if score > 1.0 {
			score = 1.0
		}
		scores[name] = score
	}

	return scores, stats
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
