package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"radius/internal/history"
	"radius/internal/logging"
)

var (
	historyComponent string
	historyLimit     int
	historyFormat    string
	historyRetention time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded analysis runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent analysis runs",
	Long: `List recorded analysis runs, newest first.

Examples:
  radius history list
  radius history list --component=PayAPI --limit=5`,
	Run: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a recorded run with its full result",
	Args:  cobra.ExactArgs(1),
	Run:   runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than the retention period",
	Run:   runHistoryPrune,
}

func init() {
	historyListCmd.Flags().StringVar(&historyComponent, "component", "", "Filter by changed component")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to list")
	historyShowCmd.Flags().StringVar(&historyFormat, "format", "yaml", "Output format (yaml, json, human)")
	historyPruneCmd.Flags().DurationVar(&historyRetention, "retention", 30*24*time.Hour, "Delete runs older than this")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory(logger *logging.Logger) *history.Store {
	repoRoot := mustGetRepoRoot()
	_, cfg := mustGetAnalyzer(repoRoot, logger)
	if !cfg.History.Enabled {
		fmt.Fprintln(os.Stderr, "History is disabled in configuration")
		os.Exit(1)
	}

	store, err := history.Open(resolvePath(repoRoot, cfg.History.Path), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runHistoryList(cmd *cobra.Command, args []string) {
	logger := newLogger("human")
	store := openHistory(logger)
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(history.ListOptions{
		Component: historyComponent,
		Limit:     historyLimit,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return
	}

	fmt.Printf("%-36s  %-20s  %-14s  %-5s  %-8s  %s\n",
		"RUN", "COMPONENT", "CHANGE", "RISKS", "MAX", "WHEN")
	fmt.Println(strings.Repeat("-", 100))
	for _, run := range runs {
		fmt.Printf("%-36s  %-20s  %-14s  %-5d  %-8.2f  %s\n",
			run.ID,
			run.Component,
			run.ChangeType,
			run.RiskCount,
			run.MaxScore,
			run.CreatedAt.Format(time.RFC3339),
		)
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) {
	logger := newLogger(historyFormat)
	store := openHistory(logger)
	defer func() { _ = store.Close() }()

	run, err := store.GetRun(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading run: %v\n", err)
		os.Exit(1)
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "Run not found: %s\n", args[0])
		os.Exit(1)
	}

	if run.Result == nil {
		fmt.Printf("Run %s (%s, %s) has no stored result\n", run.ID, run.Component, run.ChangeType)
		return
	}

	switch OutputFormat(historyFormat) {
	case FormatHuman:
		fmt.Printf("Run: %s\nComponent: %s\nChange: %s\nRecorded: %s\n\n",
			run.ID, run.Component, run.ChangeType, run.CreatedAt.Format(time.RFC3339))
		output, err := FormatResult(run.Result, FormatHuman)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
	case FormatJSON:
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	default:
		output, err := FormatResult(run.Result, OutputFormat(historyFormat))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(output)
	}
}

func runHistoryPrune(cmd *cobra.Command, args []string) {
	logger := newLogger("human")
	store := openHistory(logger)
	defer func() { _ = store.Close() }()

	deleted, err := store.PruneRuns(historyRetention)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pruning runs: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted %d run(s) older than %s\n", deleted, historyRetention)
}
