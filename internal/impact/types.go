package impact

// RiskType categorizes why a component showed up in the risk report.
type RiskType string

const (
	RiskContractCompliance RiskType = "ContractCompliance"
	RiskHighImpact         RiskType = "HighImpact"
	RiskMediumImpact       RiskType = "MediumImpact"
	RiskLowImpact          RiskType = "LowImpact"
)

// Severity tiers used when grouping affected components.
const (
	TierHigh      = "high"
	TierMedium    = "medium"
	TierLow       = "low"
	TierContracts = "contracts"
)

// RiskArea flags a single component whose impact score crossed the
// reporting threshold.
type RiskArea struct {
	Component         string   `json:"component" yaml:"component"`
	RiskType          RiskType `json:"riskType" yaml:"riskType"`
	RiskScore         float64  `json:"riskScore" yaml:"riskScore"`
	Description       string   `json:"description" yaml:"description"`
	AffectedContracts []string `json:"affectedContracts,omitempty" yaml:"affectedContracts,omitempty"`
}

// AnalysisResult is the full output of an impact analysis run.
type AnalysisResult struct {
	ImpactScores         map[string]float64  `json:"impactScores" yaml:"impactScores"`
	RiskAreas            []RiskArea          `json:"riskAreas" yaml:"riskAreas"`
	SuggestedMitigations []string            `json:"suggestedMitigations" yaml:"suggestedMitigations"`
	AffectedComponents   map[string][]string `json:"affectedComponents" yaml:"affectedComponents"`
}
