package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeToml(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scorediff.toml"), []byte(content), 0o644))
}

func TestTomlLoaderDefaultsWhenMissing(t *testing.T) {
	cfg, err := NewTomlConfigLoader().LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestTomlLoaderMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	writeToml(t, dir, `
[compare]
detail = "everything"

[output]
show_ops = true
`)

	cfg, err := NewTomlConfigLoader().LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "everything", cfg.Compare.Detail)
	assert.True(t, cfg.Output.ShowOps)
	// Untouched sections keep their defaults.
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "name", cfg.Evaluate.SortBy)
}

func TestTomlLoaderWalksUpward(t *testing.T) {
	root := t.TempDir()
	writeToml(t, root, "[output]\nformat = \"csv\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := NewTomlConfigLoader().LoadConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Output.Format)
}

func TestTomlLoaderRejectsInvalidConfig(t *testing.T) {
	t.Run("bad toml", func(t *testing.T) {
		dir := t.TempDir()
		writeToml(t, dir, "not [valid toml")
		_, err := NewTomlConfigLoader().LoadConfig(dir)
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		dir := t.TempDir()
		writeToml(t, dir, "[compare]\ndetail = \"nope\"\n")
		_, err := NewTomlConfigLoader().LoadConfig(dir)
		assert.Error(t, err)
	})
}
