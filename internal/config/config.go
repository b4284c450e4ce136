package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete radius configuration (v1 schema)
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Structure StructureConfig `json:"structure" mapstructure:"structure"`
	Contracts ContractsConfig `json:"contracts" mapstructure:"contracts"`
	Diffusion DiffusionConfig `json:"diffusion" mapstructure:"diffusion"`
	History   HistoryConfig   `json:"history" mapstructure:"history"`
	Logging   LoggingConfig   `json:"logging" mapstructure:"logging"`
}

// StructureConfig selects and configures the component structure provider
type StructureConfig struct {
	Provider string         `json:"provider" mapstructure:"provider"`
	Manifest ManifestConfig `json:"manifest" mapstructure:"manifest"`
	Source   SourceConfig   `json:"source" mapstructure:"source"`
	Scip     ScipConfig     `json:"scip" mapstructure:"scip"`
}

// ManifestConfig configures the manifest provider
type ManifestConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// SourceConfig configures the source-scanning provider
type SourceConfig struct {
	Root   string   `json:"root" mapstructure:"root"`
	Ignore []string `json:"ignore" mapstructure:"ignore"`
}

// ScipConfig configures the SCIP index provider
type ScipConfig struct {
	IndexPath string `json:"indexPath" mapstructure:"indexPath"`
}

// ContractsConfig configures contract document lookup
type ContractsConfig struct {
	Dir string `json:"dir" mapstructure:"dir"`
}

// DiffusionConfig contains impact diffusion parameters
type DiffusionConfig struct {
	Damping       float64 `json:"damping" mapstructure:"damping"`
	MaxIterations int     `json:"maxIterations" mapstructure:"maxIterations"`
	Tolerance     float64 `json:"tolerance" mapstructure:"tolerance"`
}

// HistoryConfig configures the analysis history store
type HistoryConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// Provider names accepted by StructureConfig.Provider.
const (
	ProviderManifest = "manifest"
	ProviderSource   = "source"
	ProviderScip     = "scip"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		RepoRoot: ".",
		Structure: StructureConfig{
			Provider: ProviderManifest,
			Manifest: ManifestConfig{
				Path: "COMPONENTS.toml",
			},
			Source: SourceConfig{
				Root:   ".",
				Ignore: []string{"node_modules", "vendor", "testdata"},
			},
			Scip: ScipConfig{
				IndexPath: ".scip/index.scip",
			},
		},
		Contracts: ContractsConfig{
			Dir: "contracts",
		},
		Diffusion: DiffusionConfig{
			Damping:       0.85,
			MaxIterations: 100,
			Tolerance:     1e-4,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    ".radius/history.db",
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from .radius/config.json
func LoadConfig(repoRoot string) (*Config, error) {
	v := viper.New()

	v.SetDefault("version", 1)
	v.SetDefault("repoRoot", ".")

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".radius"))

	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to .radius/config.json
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".radius")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	switch c.Structure.Provider {
	case ProviderManifest, ProviderSource, ProviderScip:
	default:
		return &ConfigError{Field: "structure.provider", Message: "unknown provider '" + c.Structure.Provider + "'"}
	}
	if c.Diffusion.Damping <= 0 || c.Diffusion.Damping >= 1 {
		return &ConfigError{Field: "diffusion.damping", Message: "must be between 0 and 1"}
	}
	if c.Diffusion.MaxIterations <= 0 {
		return &ConfigError{Field: "diffusion.maxIterations", Message: "must be positive"}
	}
	if c.Diffusion.Tolerance <= 0 {
		return &ConfigError{Field: "diffusion.tolerance", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
