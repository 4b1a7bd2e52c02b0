package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/scorediff/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "all", cfg.Compare.Detail)
	assert.Equal(t, 0, cfg.Compare.TimeoutSeconds)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.False(t, cfg.Output.ShowOps)
	assert.Equal(t, "name", cfg.Evaluate.SortBy)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, domain.DetailAllObjects, cfg.DetailLevel())
}

func TestLoadConfigFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scorediff.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
compare:
  detail: all+voicing
  timeout_seconds: 30
output:
  format: json
  show_ops: true
evaluate:
  sort_by: cost
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "all+voicing", cfg.Compare.Detail)
	assert.Equal(t, 30, cfg.Compare.TimeoutSeconds)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.ShowOps)
	assert.Equal(t, "cost", cfg.Evaluate.SortBy)
	assert.Equal(t, domain.DetailAllObjects|domain.DetailVoicing, cfg.DetailLevel())
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	// Run from an empty directory so no scorediff.yaml is discovered.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigExplicitTomlPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[compare]
detail = "notes"

[output]
format = "csv"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "notes", cfg.Compare.Detail)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, DefaultSortBy, cfg.Evaluate.SortBy)
}

func TestLoadConfigFallsBackToScorediffToml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scorediff.toml"), []byte(`
[evaluate]
sort_by = "cost"
`), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "cost", cfg.Evaluate.SortBy)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad detail", "compare:\n  detail: ultra\n"},
		{"bad format", "output:\n  format: xml\n"},
		{"bad sort", "evaluate:\n  sort_by: rank\n"},
		{"negative timeout", "compare:\n  timeout_seconds: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scorediff.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}
