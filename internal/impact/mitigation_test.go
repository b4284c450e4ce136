package impact

import (
	"reflect"
	"testing"
)

func TestSuggestMitigationsPerRiskType(t *testing.T) {
	areas := []RiskArea{
		{Component: "pay", RiskType: RiskContractCompliance},
		{Component: "core", RiskType: RiskHighImpact},
		{Component: "cache", RiskType: RiskMediumImpact},
	}
	got := SuggestMitigations(areas)
	want := []string{
		"Implement compatibility layer for pay",
		"Add contract validation tests for pay",
		"Plan a phased rollout for core",
		"Increase test coverage for core before release",
		"Prepare a rollback procedure for core",
		"Add monitoring for cache during rollout",
		"Run performance tests covering cache",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("suggestions = %v, want %v", got, want)
	}
}

func TestSuggestMitigationsDeduplicates(t *testing.T) {
	areas := []RiskArea{
		{Component: "core", RiskType: RiskHighImpact},
		{Component: "core", RiskType: RiskHighImpact},
	}
	got := SuggestMitigations(areas)
	if len(got) != 3 {
		t.Errorf("suggestions = %v, want 3 unique entries", got)
	}
}

func TestSuggestMitigationsLowImpactContributesNothing(t *testing.T) {
	got := SuggestMitigations([]RiskArea{{Component: "docs", RiskType: RiskLowImpact}})
	if len(got) != 0 {
		t.Errorf("suggestions = %v, want none", got)
	}
}
