package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"radius/internal/impact"
)

// WriteOutput writes rendered output to path, or to stdout when path is
// empty. A trailing newline is ensured either way.
func WriteOutput(output, path string) error {
	if !strings.HasSuffix(output, "\n") {
		output += "\n"
	}
	if path == "" {
		_, err := fmt.Print(output)
		return err
	}
	return os.WriteFile(path, []byte(output), 0o644)
}

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatHuman OutputFormat = "human"
)

// FormatResult renders an analysis result in the specified format
func FormatResult(result *impact.AnalysisResult, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(result)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return string(data), nil
	case FormatHuman:
		return formatResultHuman(result), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatResultHuman(result *impact.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("Change Impact Analysis\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(fmt.Sprintf("Impact Scores (%d components):\n", len(result.ImpactScores)))
	names := make([]string, 0, len(result.ImpactScores))
	for name := range result.ImpactScores {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		si, sj := result.ImpactScores[names[i]], result.ImpactScores[names[j]]
		if si != sj {
			return si > sj
		}
		return names[i] < names[j]
	})
	for i, name := range names {
		if i >= 15 {
			b.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-15))
			break
		}
		b.WriteString(fmt.Sprintf("  %-30s %.3f\n", name, result.ImpactScores[name]))
	}
	b.WriteString("\n")

	if len(result.RiskAreas) > 0 {
		b.WriteString(fmt.Sprintf("Risk Areas (%d):\n", len(result.RiskAreas)))
		for _, area := range result.RiskAreas {
			b.WriteString(fmt.Sprintf("  [%s] %s (score: %.2f)\n", area.RiskType, area.Component, area.RiskScore))
			b.WriteString(fmt.Sprintf("    %s\n", area.Description))
			if len(area.AffectedContracts) > 0 {
				b.WriteString(fmt.Sprintf("    Contracts: %s\n", strings.Join(area.AffectedContracts, ", ")))
			}
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Risk Areas: none\n\n")
	}

	if len(result.SuggestedMitigations) > 0 {
		b.WriteString("Suggested Mitigations:\n")
		for i, m := range result.SuggestedMitigations {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, m))
		}
		b.WriteString("\n")
	}

	b.WriteString("Affected Components:\n")
	for _, tier := range []string{impact.TierHigh, impact.TierMedium, impact.TierLow, impact.TierContracts} {
		components := result.AffectedComponents[tier]
		if len(components) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %s\n", tier, strings.Join(components, ", ")))
	}

	return b.String()
}
