package impact

import (
	"context"
	"fmt"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"radius/internal/change"
	"radius/internal/contracts"
	raderr "radius/internal/errors"
	"radius/internal/graph"
	"radius/internal/logging"
	"radius/internal/structure"
)

// ExpectedImpactTolerance is the maximum absolute deviation between a
// declared expected impact and the computed score before a validation
// warning is logged.
const ExpectedImpactTolerance = 0.2

// Analyzer runs impact analysis over a component structure.
type Analyzer struct {
	provider  structure.Provider
	validator contracts.Validator
	logger    *logging.Logger

	// Options tunes impact diffusion. Zero fields fall back to the
	// defaults during propagation.
	Options graph.Options
}

// NewAnalyzer wires an analyzer to its structure provider and contract
// validator. The validator may be nil when no contract directory is
// configured; validation then fails for any change that names contracts.
func NewAnalyzer(provider structure.Provider, validator contracts.Validator, logger *logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.NewLogger(logging.DefaultConfig())
	}
	return &Analyzer{
		provider:  provider,
		validator: validator,
		logger:    logger,
		Options:   graph.DefaultOptions(),
	}
}

// AnalyzeChangeImpact computes impact scores for spec and derives the
// risk report, mitigation advice, and severity grouping from them.
func (a *Analyzer) AnalyzeChangeImpact(ctx context.Context, spec *change.Specification) (*AnalysisResult, error) {
	scores, err := a.CalculateImpactScores(ctx, spec)
	if err != nil {
		return nil, err
	}
	return a.buildResult(scores, spec), nil
}

// ValidateChange runs the full analysis and then checks the change
// specification against it: every affected contract is validated as an
// interface contract, and declared expected impacts are compared to the
// computed scores.
//
// An invalid contract is fatal and returns a ContractCompliance error;
// the partially built result is returned alongside it. Expected-impact
// deviations beyond ExpectedImpactTolerance are logged as warnings and
// never fail validation. Expected components absent from the computed
// scores are skipped.
func (a *Analyzer) ValidateChange(ctx context.Context, spec *change.Specification) (*AnalysisResult, error) {
	result, err := a.AnalyzeChangeImpact(ctx, spec)
	if err != nil {
		return nil, err
	}

	if err := a.validateContracts(ctx, spec); err != nil {
		return result, err
	}

	a.checkExpectedImpact(result.ImpactScores, spec)
	return result, nil
}

// CalculateImpactScores builds the dependency graph from the structure
// provider and runs impact diffusion for spec over it.
func (a *Analyzer) CalculateImpactScores(ctx context.Context, spec *change.Specification) (map[string]float64, error) {
	components, err := a.provider.ListComponents(ctx)
	if err != nil {
		return nil, err
	}

	g := graph.Build(components)
	a.logger.Debug("built dependency graph", map[string]interface{}{
		"component": spec.Component,
		"nodes":     g.NumNodes(),
		"edges":     g.NumEdges(),
	})

	scores, stats := graph.PropagateWithOptions(g, spec, a.Options)
	if !stats.Converged {
		a.logger.Warn("impact diffusion did not converge", map[string]interface{}{
			"component":  spec.Component,
			"iterations": stats.Iterations,
		})
	}
	return scores, nil
}

func (a *Analyzer) buildResult(scores map[string]float64, spec *change.Specification) *AnalysisResult {
	areas := ClassifyRisks(scores, spec)
	return &AnalysisResult{
		ImpactScores:         scores,
		RiskAreas:            areas,
		SuggestedMitigations: SuggestMitigations(areas),
		AffectedComponents:   groupComponents(scores, spec),
	}
}

// groupComponents buckets every scored component into a severity tier
// and echoes the change's affected contracts under their own key. Each
// tier is sorted by name.
func groupComponents(scores map[string]float64, spec *change.Specification) map[string][]string {
	groups := map[string][]string{
		TierHigh:      {},
		TierMedium:    {},
		TierLow:       {},
		TierContracts: {},
	}
	for name, score := range scores {
		switch {
		case score >= HighThreshold:
			groups[TierHigh] = append(groups[TierHigh], name)
		case score >= MediumThreshold:
			groups[TierMedium] = append(groups[TierMedium], name)
		default:
			groups[TierLow] = append(groups[TierLow], name)
		}
	}
	for _, tier := range []string{TierHigh, TierMedium, TierLow} {
		sort.Strings(groups[tier])
	}
	groups[TierContracts] = append(groups[TierContracts], spec.AffectedContracts...)
	return groups
}

// validateContracts checks every affected contract concurrently. All
// contracts are validated even when an early one fails, so the returned
// error carries the full set of violations.
func (a *Analyzer) validateContracts(ctx context.Context, spec *change.Specification) error {
	if len(spec.AffectedContracts) == 0 {
		return nil
	}
	if a.validator == nil {
		return raderr.New(raderr.ContractNotFound,
			"change names affected contracts but no contract directory is configured", nil)
	}

	validations := make([]*contracts.Validation, len(spec.AffectedContracts))
	eg, ctx := errgroup.WithContext(ctx)
	for i, name := range spec.AffectedContracts {
		i, name := i, name
		eg.Go(func() error {
			v, err := a.validator.Validate(ctx, name, contracts.TypeInterface)
			if err != nil {
				return err
			}
			validations[i] = v
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	violations := make(map[string]interface{})
	for _, v := range validations {
		if v.IsValid {
			continue
		}
		violations[v.Contract] = v.Errors
		a.logger.Error("contract validation failed", map[string]interface{}{
			"contract": v.Contract,
			"errors":   v.Errors,
		})
	}
	if len(violations) > 0 {
		return raderr.New(raderr.ContractCompliance,
			fmt.Sprintf("%d of %d affected contracts failed validation", len(violations), len(validations)),
			nil).WithDetails(violations)
	}
	return nil
}

// checkExpectedImpact compares declared expectations to computed scores
// and logs a warning for each deviation beyond the tolerance.
func (a *Analyzer) checkExpectedImpact(scores map[string]float64, spec *change.Specification) {
	names := make([]string, 0, len(spec.ExpectedImpact))
	for name := range spec.ExpectedImpact {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		actual, ok := scores[name]
		if !ok {
			continue
		}
		expected := spec.ExpectedImpact[name]
		if math.Abs(actual-expected) > ExpectedImpactTolerance {
			a.logger.Warn("impact deviates from expectation", map[string]interface{}{
				"component": name,
				"expected":  expected,
				"actual":    actual,
				"tolerance": ExpectedImpactTolerance,
			})
		}
	}
}
