package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ScorediffTomlConfig represents the structure of scorediff.toml
type ScorediffTomlConfig struct {
	Compare  TomlCompareConfig  `toml:"compare"`
	Output   TomlOutputConfig   `toml:"output"`
	Evaluate TomlEvaluateConfig `toml:"evaluate"`
}

type TomlCompareConfig struct {
	Detail         string `toml:"detail"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type TomlOutputConfig struct {
	Format  string `toml:"format"`
	ShowOps *bool  `toml:"show_ops"` // pointer to detect unset
}

type TomlEvaluateConfig struct {
	SortBy string `toml:"sort_by"`
}

// TomlConfigLoader handles TOML-only configuration loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads configuration from scorediff.toml, searching upward from
// startDir, falling back to defaults when no file is found.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	configPath, err := l.findScorediffToml(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific TOML file.
func (l *TomlConfigLoader) LoadConfigFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var fileConfig ScorediffTomlConfig
	if err := toml.Unmarshal(data, &fileConfig); err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	l.merge(defaults, &fileConfig)

	if err := defaults.Validate(); err != nil {
		return nil, err
	}
	return defaults, nil
}

// findScorediffToml walks up the directory tree to find scorediff.toml
func (l *TomlConfigLoader) findScorediffToml(startDir string) (string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, "scorediff.toml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// merge applies file values over defaults, leaving unset fields alone
func (l *TomlConfigLoader) merge(defaults *Config, file *ScorediffTomlConfig) {
	if file.Compare.Detail != "" {
		defaults.Compare.Detail = file.Compare.Detail
	}
	if file.Compare.TimeoutSeconds > 0 {
		defaults.Compare.TimeoutSeconds = file.Compare.TimeoutSeconds
	}

	if file.Output.Format != "" {
		defaults.Output.Format = file.Output.Format
	}
	if file.Output.ShowOps != nil {
		defaults.Output.ShowOps = *file.Output.ShowOps
	}

	if file.Evaluate.SortBy != "" {
		defaults.Evaluate.SortBy = file.Evaluate.SortBy
	}
}

// GetSupportedConfigFiles returns the supported TOML config files in order
// of precedence
func (l *TomlConfigLoader) GetSupportedConfigFiles() []string {
	return []string{"scorediff.toml"}
}
