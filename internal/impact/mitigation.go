package impact

import "fmt"

// SuggestMitigations builds an advisory list from the risk report. Each
// risk area contributes the suggestions for its risk type; duplicates
// keep their first occurrence, so the list follows risk-report order.
func SuggestMitigations(areas []RiskArea) []string {
	seen := make(map[string]bool)
	suggestions := make([]string, 0)
	add := func(s string) {
		if seen[s] {
			return
		}
		seen[s] = true
		suggestions = append(suggestions, s)
	}

	for _, area := range areas {
		switch area.RiskType {
		case RiskContractCompliance:
			add(fmt.Sprintf("Implement compatibility layer for %s", area.Component))
			add(fmt.Sprintf("Add contract validation tests for %s", area.Component))
		case RiskHighImpact:
			add(fmt.Sprintf("Plan a phased rollout for %s", area.Component))
			add(fmt.Sprintf("Increase test coverage for %s before release", area.Component))
			add(fmt.Sprintf("Prepare a rollback procedure for %s", area.Component))
		case RiskMediumImpact:
			add(fmt.Sprintf("Add monitoring for %s during rollout", area.Component))
			add(fmt.Sprintf("Run performance tests covering %s", area.Component))
		}
	}
	return suggestions
}
