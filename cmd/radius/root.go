package main

import (
	"radius/internal/version"

	"github.com/spf13/cobra"
)

var (
	// logLevelFlag overrides the configured log level
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "radius",
	Short: "radius - change blast-radius prediction",
	Long: `radius predicts the blast radius of a proposed change before it lands.

It builds a dependency graph of your system's components, diffuses impact
from the changed component across the graph, and reports which components
are at risk, which contracts are threatened, and what mitigations to plan.`,
	Version: version.Info(),
}

func init() {
	rootCmd.SetVersionTemplate("radius version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default: from config)")
}
