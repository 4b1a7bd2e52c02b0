package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/ludo-technologies/scorediff/domain"
)

// Default comparison settings
const (
	// DefaultDetail is the detail level used when none is configured
	DefaultDetail = "all"

	// DefaultTimeoutSeconds bounds one comparison; 0 means no limit
	DefaultTimeoutSeconds = 0

	// DefaultSortBy orders batch evaluation results
	DefaultSortBy = "name"
)

// Config represents the main configuration structure
type Config struct {
	// Compare holds comparison configuration
	Compare CompareConfig `mapstructure:"compare" yaml:"compare"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Evaluate holds batch evaluation configuration
	Evaluate EvaluateConfig `mapstructure:"evaluate" yaml:"evaluate"`
}

// CompareConfig holds configuration for the score comparison itself
type CompareConfig struct {
	// Detail names the comparison detail level: notes, decorated-notes,
	// other-objects, all, all+style, all+metadata, all+voicing, everything
	Detail string `mapstructure:"detail" yaml:"detail"`

	// TimeoutSeconds bounds one comparison. When the budget elapses the
	// result is marked incomplete. 0 disables the limit.
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" yaml:"format"`

	// ShowOps controls whether the full edit-operation list is printed
	ShowOps bool `mapstructure:"show_ops" yaml:"show_ops"`
}

// EvaluateConfig holds configuration for batch evaluation
type EvaluateConfig struct {
	// SortBy specifies how to sort pair results: cost, name, similarity
	SortBy string `mapstructure:"sort_by" yaml:"sort_by"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Compare: CompareConfig{
			Detail:         DefaultDetail,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Output: OutputConfig{
			Format:  "text",
			ShowOps: false,
		},
		Evaluate: EvaluateConfig{
			SortBy: DefaultSortBy,
		},
	}
}

// LoadConfig loads configuration from file or returns default config.
// An explicit .toml path, or a scorediff.toml discovered when no YAML
// candidate exists, goes through the TOML loader.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if filepath.Ext(configPath) == ".toml" {
		return NewTomlConfigLoader().LoadConfigFile(configPath)
	}
	if configPath == "" {
		configPath = findDefaultConfig()
	}
	if configPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return config, nil
		}
		return NewTomlConfigLoader().LoadConfig(cwd)
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("failed to read config file %s", configPath), err)
	}
	if err := v.Unmarshal(config); err != nil {
		return nil, domain.NewConfigError("failed to unmarshal config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// findDefaultConfig looks for default configuration files in common locations
func findDefaultConfig() string {
	candidates := []string{
		"scorediff.yaml",
		"scorediff.yml",
		".scorediff.yaml",
		".scorediff.yml",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range candidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if _, ok := domain.ParseDetailLevel(c.Compare.Detail); !ok {
		return domain.NewConfigError(fmt.Sprintf("invalid compare.detail %q", c.Compare.Detail), nil)
	}
	if c.Compare.TimeoutSeconds < 0 {
		return domain.NewConfigError(fmt.Sprintf("compare.timeout_seconds must be >= 0, got %d", c.Compare.TimeoutSeconds), nil)
	}

	switch domain.OutputFormat(c.Output.Format) {
	case domain.OutputFormatText, domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatCSV:
	default:
		return domain.NewConfigError(fmt.Sprintf("invalid output.format %q, must be one of: text, json, yaml, csv", c.Output.Format), nil)
	}

	switch domain.SortCriteria(c.Evaluate.SortBy) {
	case domain.SortByCost, domain.SortByName, domain.SortBySimilarity:
	default:
		return domain.NewConfigError(fmt.Sprintf("invalid evaluate.sort_by %q, must be one of: cost, name, similarity", c.Evaluate.SortBy), nil)
	}

	return nil
}

// DetailLevel resolves the configured detail name. Validate guarantees the
// name parses.
func (c *Config) DetailLevel() domain.DetailLevel {
	level, _ := domain.ParseDetailLevel(c.Compare.Detail)
	return level
}
