package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"radius/internal/change"
	raderr "radius/internal/errors"
)

var (
	validateFormat string
	validateOut    string
)

var validateCmd = &cobra.Command{
	Use:   "validate <change.yaml>",
	Short: "Validate a change against contracts and expectations",
	Long: `Run impact analysis and then validate the change specification.

Validation performs two checks on top of the analysis:
  1. Every affected contract is validated as an interface contract.
     An invalid contract fails the command.
  2. Declared expected impacts are compared to the computed scores.
     Deviations beyond the tolerance are reported as warnings only.

Examples:
  radius validate change.yaml
  radius validate change.yaml --format=human`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFormat, "format", "yaml", "Output format (yaml, json, human)")
	validateCmd.Flags().StringVar(&validateOut, "out", "", "Write the result to a file instead of stdout")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger(validateFormat)

	spec, err := change.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading change specification: %v\n", err)
		os.Exit(1)
	}

	repoRoot := mustGetRepoRoot()
	analyzer, _ := mustGetAnalyzer(repoRoot, logger)
	ctx := newContext()

	result, err := analyzer.ValidateChange(ctx, spec)
	if err != nil {
		// A compliance failure still carries the analysis result, so
		// show it before reporting the failure.
		if result != nil {
			if output, ferr := FormatResult(result, OutputFormat(validateFormat)); ferr == nil {
				_ = WriteOutput(output, validateOut)
			}
		}
		var re *raderr.RadiusError
		if errors.As(err, &re) {
			if re.Code == raderr.ContractCompliance {
				fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "Error validating change: %v\n", err)
			}
			if raderr.IsFatal(re.Code) {
				os.Exit(1)
			}
			return
		}
		fmt.Fprintf(os.Stderr, "Error validating change: %v\n", err)
		os.Exit(1)
	}

	output, err := FormatResult(result, OutputFormat(validateFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	if err := WriteOutput(output, validateOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	logger.Debug("Change validation completed", map[string]interface{}{
		"component": spec.Component,
		"contracts": len(spec.AffectedContracts),
		"duration":  time.Since(start).Milliseconds(),
	})
}
