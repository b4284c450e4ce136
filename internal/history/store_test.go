package history

import (
	"path/filepath"
	"testing"
	"time"

	"radius/internal/change"
	"radius/internal/impact"
	"radius/internal/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".radius", "history.db")
	store, err := Open(path, logging.NewLogger(logging.DefaultConfig()))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleRun(component string) *Run {
	spec := &change.Specification{Component: component, ChangeType: change.TypeImplementation}
	result := &impact.AnalysisResult{
		ImpactScores: map[string]float64{component: 0.9, "dep": 0.3},
		RiskAreas: []impact.RiskArea{
			{Component: component, RiskType: impact.RiskHighImpact, RiskScore: 0.9},
		},
		SuggestedMitigations: []string{"Plan a phased rollout for " + component},
		AffectedComponents: map[string][]string{
			impact.TierHigh: {component},
		},
	}
	return NewRun(spec, result)
}

func TestSaveAndGetRun(t *testing.T) {
	store := newTestStore(t)
	run := sampleRun("core")

	if err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := store.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got == nil {
		t.Fatal("GetRun returned nil for saved run")
	}
	if got.Component != "core" {
		t.Errorf("Component = %q, want core", got.Component)
	}
	if got.Result == nil {
		t.Fatal("result payload not round-tripped")
	}
	if score := got.Result.ImpactScores["core"]; score != 0.9 {
		t.Errorf("score = %v, want 0.9", score)
	}
	if len(got.Result.RiskAreas) != 1 {
		t.Errorf("risk areas = %d, want 1", len(got.Result.RiskAreas))
	}
}

func TestGetRunMissing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetRun("no-such-run")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got != nil {
		t.Errorf("GetRun = %+v, want nil", got)
	}
}

func TestListRuns(t *testing.T) {
	store := newTestStore(t)

	for _, component := range []string{"core", "api", "core"} {
		run := sampleRun(component)
		if err := store.SaveRun(run); err != nil {
			t.Fatalf("SaveRun(%s): %v", component, err)
		}
	}

	all, err := store.ListRuns(ListOptions{})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ListRuns = %d runs, want 3", len(all))
	}
	for _, sum := range all {
		if sum.RiskCount != 1 {
			t.Errorf("RiskCount = %d, want 1", sum.RiskCount)
		}
		if sum.MaxScore != 0.9 {
			t.Errorf("MaxScore = %v, want 0.9", sum.MaxScore)
		}
	}

	filtered, err := store.ListRuns(ListOptions{Component: "core"})
	if err != nil {
		t.Fatalf("ListRuns(core): %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("ListRuns(core) = %d runs, want 2", len(filtered))
	}

	limited, err := store.ListRuns(ListOptions{Limit: 1})
	if err != nil {
		t.Fatalf("ListRuns(limit): %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("ListRuns(limit 1) = %d runs, want 1", len(limited))
	}
}

func TestSaveRunWithoutResult(t *testing.T) {
	store := newTestStore(t)
	run := NewRun(&change.Specification{Component: "x"}, nil)

	if err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	got, err := store.GetRun(run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Result != nil {
		t.Errorf("Result = %+v, want nil", got.Result)
	}
}

func TestPruneRuns(t *testing.T) {
	store := newTestStore(t)

	old := sampleRun("old")
	old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
	if err := store.SaveRun(old); err != nil {
		t.Fatalf("SaveRun(old): %v", err)
	}
	fresh := sampleRun("fresh")
	if err := store.SaveRun(fresh); err != nil {
		t.Fatalf("SaveRun(fresh): %v", err)
	}

	deleted, err := store.PruneRuns(24 * time.Hour)
	if err != nil {
		t.Fatalf("PruneRuns: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	remaining, err := store.ListRuns(ListOptions{})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Component != "fresh" {
		t.Errorf("remaining = %+v, want only fresh", remaining)
	}
}
