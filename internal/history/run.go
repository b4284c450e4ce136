package history

import (
	"time"

	"github.com/google/uuid"

	"radius/internal/change"
	"radius/internal/impact"
)

// Run records one completed analysis.
type Run struct {
	ID         string                 `json:"id"`
	Component  string                 `json:"component"`
	ChangeType string                 `json:"changeType"`
	CreatedAt  time.Time              `json:"createdAt"`
	Result     *impact.AnalysisResult `json:"result,omitempty"`
}

// Summary is the payload-free view of a run used in listings.
type Summary struct {
	ID         string    `json:"id"`
	Component  string    `json:"component"`
	ChangeType string    `json:"changeType"`
	CreatedAt  time.Time `json:"createdAt"`
	RiskCount  int       `json:"riskCount"`
	MaxScore   float64   `json:"maxScore"`
}

// NewRun stamps a fresh run for the given analysis.
func NewRun(spec *change.Specification, result *impact.AnalysisResult) *Run {
	return &Run{
		ID:         uuid.New().String(),
		Component:  spec.Component,
		ChangeType: string(spec.ChangeType),
		CreatedAt:  time.Now().UTC(),
		Result:     result,
	}
}

func (r *Run) summary() Summary {
	s := Summary{
		ID:         r.ID,
		Component:  r.Component,
		ChangeType: r.ChangeType,
		CreatedAt:  r.CreatedAt,
	}
	if r.Result != nil {
		s.RiskCount = len(r.Result.RiskAreas)
		for _, score := range r.Result.ImpactScores {
			if score > s.MaxScore {
				s.MaxScore = score
			}
		}
	}
	return s
}
