package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"radius/internal/config"
	"radius/internal/contracts"
	"radius/internal/graph"
	"radius/internal/impact"
	"radius/internal/logging"
	"radius/internal/structure"
)

var (
	analyzerOnce   sync.Once
	sharedAnalyzer *impact.Analyzer
	sharedConfig   *config.Config
	analyzerErr    error
)

// getAnalyzer returns a shared Analyzer instance.
// The analyzer is lazily initialized on first use.
func getAnalyzer(repoRoot string, logger *logging.Logger) (*impact.Analyzer, *config.Config, error) {
	analyzerOnce.Do(func() {
		cfg, err := config.LoadConfig(repoRoot)
		if err != nil {
			logger.Warn("Failed to load config, using defaults", map[string]interface{}{
				"error": err.Error(),
			})
			cfg = config.DefaultConfig()
		}
		if err := cfg.Validate(); err != nil {
			analyzerErr = err
			return
		}

		provider, err := buildProvider(repoRoot, cfg)
		if err != nil {
			analyzerErr = err
			return
		}

		var validator contracts.Validator
		if cfg.Contracts.Dir != "" {
			validator = contracts.NewDirValidator(resolvePath(repoRoot, cfg.Contracts.Dir))
		}

		analyzer := impact.NewAnalyzer(provider, validator, logger)
		analyzer.Options = graph.Options{
			Damping:       cfg.Diffusion.Damping,
			MaxIterations: cfg.Diffusion.MaxIterations,
			Tolerance:     cfg.Diffusion.Tolerance,
		}

		sharedAnalyzer = analyzer
		sharedConfig = cfg
	})

	return sharedAnalyzer, sharedConfig, analyzerErr
}

// mustGetAnalyzer returns the shared Analyzer or exits on error.
func mustGetAnalyzer(repoRoot string, logger *logging.Logger) (*impact.Analyzer, *config.Config) {
	analyzer, cfg, err := getAnalyzer(repoRoot, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing analyzer: %v\n", err)
		os.Exit(1)
	}
	return analyzer, cfg
}

// buildProvider constructs the structure provider selected in config.
func buildProvider(repoRoot string, cfg *config.Config) (structure.Provider, error) {
	switch cfg.Structure.Provider {
	case config.ProviderManifest:
		return structure.NewManifestProvider(resolvePath(repoRoot, cfg.Structure.Manifest.Path)), nil
	case config.ProviderSource:
		return structure.NewSourceProvider(resolvePath(repoRoot, cfg.Structure.Source.Root)), nil
	case config.ProviderScip:
		return structure.NewSCIPProvider(resolvePath(repoRoot, cfg.Structure.Scip.IndexPath)), nil
	default:
		return nil, fmt.Errorf("unknown structure provider: %s", cfg.Structure.Provider)
	}
}

func resolvePath(repoRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(repoRoot, path)
}

// getRepoRoot returns the repository root directory.
func getRepoRoot() (string, error) {
	return os.Getwd()
}

// mustGetRepoRoot returns the repository root or exits on error.
func mustGetRepoRoot() string {
	repoRoot, err := getRepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return repoRoot
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}

// newLogger creates a logger matching the requested output format.
func newLogger(format string) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}
	level := logging.InfoLevel
	if logLevelFlag != "" {
		level = logging.ParseLevel(logLevelFlag)
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  level,
	})
}
