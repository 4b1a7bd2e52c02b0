package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/config"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["diff"])
	assert.True(t, names["evaluate"])
	assert.True(t, names["version"])
}

func TestDiffBuildRequestDefaults(t *testing.T) {
	c := NewDiffCommand()
	cmd := c.CreateCobraCommand()
	require.NoError(t, cmd.ParseFlags(nil))

	req, err := c.buildRequest(cmd, config.DefaultConfig(), []string{"gt.musicxml", "omr.musicxml"})
	require.NoError(t, err)

	assert.Equal(t, "gt.musicxml", req.OriginalPath)
	assert.Equal(t, "omr.musicxml", req.TargetPath)
	assert.Equal(t, domain.DetailAllObjects, req.Detail)
	assert.Equal(t, domain.OutputFormatText, req.OutputFormat)
	assert.False(t, req.ShowOps)
	assert.Equal(t, time.Duration(0), req.Timeout)
}

func TestDiffBuildRequestFlagsOverrideConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Compare.Detail = "notes"
	cfg.Output.Format = "yaml"
	cfg.Compare.TimeoutSeconds = 10

	c := NewDiffCommand()
	cmd := c.CreateCobraCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--detail", "everything", "--json", "--timeout", "5", "--ops"}))

	req, err := c.buildRequest(cmd, cfg, []string{"a.xml", "b.xml"})
	require.NoError(t, err)

	everything, _ := domain.ParseDetailLevel("everything")
	assert.Equal(t, everything, req.Detail)
	assert.Equal(t, domain.OutputFormatJSON, req.OutputFormat)
	assert.Equal(t, 5*time.Second, req.Timeout)
	assert.True(t, req.ShowOps)
}

func TestDiffBuildRequestConfigFormatWhenNoFlag(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Format = "yaml"

	c := NewDiffCommand()
	cmd := c.CreateCobraCommand()
	require.NoError(t, cmd.ParseFlags(nil))

	req, err := c.buildRequest(cmd, cfg, []string{"a.xml", "b.xml"})
	require.NoError(t, err)
	assert.Equal(t, domain.OutputFormatYAML, req.OutputFormat)
}

func TestDiffBuildRequestRejectsBadDetail(t *testing.T) {
	c := NewDiffCommand()
	cmd := c.CreateCobraCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--detail", "bogus"}))

	_, err := c.buildRequest(cmd, config.DefaultConfig(), []string{"a.xml", "b.xml"})
	assert.Error(t, err)
}

func TestDiffBuildRequestRejectsConflictingFormats(t *testing.T) {
	c := NewDiffCommand()
	cmd := c.CreateCobraCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--json", "--csv"}))

	_, err := c.buildRequest(cmd, config.DefaultConfig(), []string{"a.xml", "b.xml"})
	assert.Error(t, err)
}

func TestEvaluateBuildRequest(t *testing.T) {
	c := NewEvaluateCommand()
	cmd := c.CreateCobraCommand()
	require.NoError(t, cmd.ParseFlags([]string{
		"--original", "gt/*.musicxml",
		"--target", "omr/*.musicxml",
		"--sort", "cost",
		"--csv",
	}))

	req, err := c.buildRequest(cmd, config.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"gt/*.musicxml"}, req.OriginalPatterns)
	assert.Equal(t, []string{"omr/*.musicxml"}, req.TargetPatterns)
	assert.Equal(t, domain.SortByCost, req.SortBy)
	assert.Equal(t, domain.OutputFormatCSV, req.OutputFormat)
}
