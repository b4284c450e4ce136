package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"radius/internal/change"
)

var (
	scoresFormat string
	scoresOut    string
)

var scoresCmd = &cobra.Command{
	Use:   "scores <change.yaml>",
	Short: "Compute raw impact scores",
	Long: `Compute per-component impact scores without risk classification.

Useful for scripting and for comparing against the expectedImpact block
of a change specification.

Examples:
  radius scores change.yaml
  radius scores change.yaml --format=json`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&scoresFormat, "format", "yaml", "Output format (yaml, json, human)")
	scoresCmd.Flags().StringVar(&scoresOut, "out", "", "Write the scores to a file instead of stdout")
	rootCmd.AddCommand(scoresCmd)
}

func runScores(cmd *cobra.Command, args []string) {
	logger := newLogger(scoresFormat)

	spec, err := change.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading change specification: %v\n", err)
		os.Exit(1)
	}

	repoRoot := mustGetRepoRoot()
	analyzer, _ := mustGetAnalyzer(repoRoot, logger)

	scores, err := analyzer.CalculateImpactScores(newContext(), spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing impact scores: %v\n", err)
		os.Exit(1)
	}

	output, err := formatScores(spec.Component, scores, OutputFormat(scoresFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	if err := WriteOutput(output, scoresOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

// formatScores renders a raw score map in the requested format. Human
// output lists components by descending score, ties broken by name.
func formatScores(component string, scores map[string]float64, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(scores, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(scores)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return string(data), nil
	case FormatHuman:
		names := make([]string, 0, len(scores))
		for name := range scores {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if scores[names[i]] != scores[names[j]] {
				return scores[names[i]] > scores[names[j]]
			}
			return names[i] < names[j]
		})
		var b strings.Builder
		fmt.Fprintf(&b, "Impact Scores for %s\n", component)
		b.WriteString(strings.Repeat("=", 60) + "\n")
		for _, name := range names {
			fmt.Fprintf(&b, "  %-30s %.3f\n", name, scores[name])
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
