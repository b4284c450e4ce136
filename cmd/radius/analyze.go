package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"radius/internal/change"
	"radius/internal/config"
	"radius/internal/history"
	"radius/internal/impact"
	"radius/internal/logging"
)

var (
	analyzeFormat    string
	analyzeOut       string
	analyzeNoHistory bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <change.yaml>",
	Short: "Analyze change impact",
	Long: `Analyze the potential impact of a proposed change.

Reads a change specification, diffuses impact across the component
dependency graph, and reports:
  - Per-component impact scores (0..1)
  - Risk areas above the reporting threshold
  - Suggested mitigations
  - Components grouped by severity tier

Examples:
  radius analyze change.yaml
  radius analyze change.yaml --format=human
  radius analyze change.yaml --no-history`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "yaml", "Output format (yaml, json, human)")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "Write the result to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeNoHistory, "no-history", false, "Skip recording this run in history")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger(analyzeFormat)

	spec, err := change.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading change specification: %v\n", err)
		os.Exit(1)
	}

	repoRoot := mustGetRepoRoot()
	analyzer, cfg := mustGetAnalyzer(repoRoot, logger)
	ctx := newContext()

	result, err := analyzer.AnalyzeChangeImpact(ctx, spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing change impact: %v\n", err)
		os.Exit(1)
	}

	recordRun(spec, result, repoRoot, cfg.History, analyzeNoHistory, logger)

	output, err := FormatResult(result, OutputFormat(analyzeFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	if err := WriteOutput(output, analyzeOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	logger.Debug("Impact analysis completed", map[string]interface{}{
		"component": spec.Component,
		"scored":    len(result.ImpactScores),
		"risks":     len(result.RiskAreas),
		"duration":  time.Since(start).Milliseconds(),
	})
}

// recordRun stores the analysis in history when enabled. Failures are
// logged and never fail the command.
func recordRun(spec *change.Specification, result *impact.AnalysisResult, repoRoot string, histCfg config.HistoryConfig, skip bool, logger *logging.Logger) {
	if skip || !histCfg.Enabled {
		return
	}

	store, err := history.Open(resolvePath(repoRoot, histCfg.Path), logger)
	if err != nil {
		logger.Warn("history unavailable, run not recorded", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	defer func() { _ = store.Close() }()

	run := history.NewRun(spec, result)
	if err := store.SaveRun(run); err != nil {
		logger.Warn("failed to record run", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	logger.Info("recorded analysis run", map[string]interface{}{
		"runId": run.ID,
	})
}
