package impact

import (
	"fmt"
	"sort"
	"strings"

	"radius/internal/change"
)

// Score bands for risk reporting. Components below RiskThreshold are
// omitted from the risk report entirely, even when they are named in
// affectedContracts.
const (
	RiskThreshold   = 0.6
	MediumThreshold = 0.4
	HighThreshold   = 0.7
)

// ClassifyRisks turns adjusted impact scores into a risk report. Only
// components scoring at or above RiskThreshold are flagged. A flagged
// component that is itself named in the change's affected contracts is
// reported as a contract-compliance risk regardless of its band;
// otherwise the band alone picks the risk type. Output is sorted by
// component name.
func ClassifyRisks(scores map[string]float64, spec *change.Specification) []RiskArea {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	areas := make([]RiskArea, 0)
	for _, name := range names {
		score := scores[name]
		if score < RiskThreshold {
			continue
		}
		area := RiskArea{
			Component:   name,
			RiskScore:   score,
			Description: describeRisk(name, score),
		}
		switch {
		case spec.AffectsContract(name):
			area.RiskType = RiskContractCompliance
			// Contracts whose names extend the component name count as
			// threatened too (prefix match, looser than membership).
			area.AffectedContracts = matchContracts(name, spec.AffectedContracts)
		case score >= HighThreshold:
			area.RiskType = RiskHighImpact
		case score >= MediumThreshold:
			area.RiskType = RiskMediumImpact
		default:
			area.RiskType = RiskLowImpact
		}
		areas = append(areas, area)
	}
	return areas
}

// matchContracts returns the contracts whose names start with the
// component name, preserving their declared order.
func matchContracts(component string, contracts []string) []string {
	var matched []string
	for _, c := range contracts {
		if strings.HasPrefix(c, component) {
			matched = append(matched, c)
		}
	}
	return matched
}

func describeRisk(name string, score float64) string {
	switch {
	case score >= HighThreshold:
		return fmt.Sprintf("High impact expected for %s (score %.2f): widespread downstream effects likely", name, score)
	case score >= MediumThreshold:
		return fmt.Sprintf("Moderate impact expected for %s (score %.2f): several dependents may be affected", name, score)
	default:
		return fmt.Sprintf("Low impact expected for %s (score %.2f)", name, score)
	}
}
