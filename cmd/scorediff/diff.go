package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/scorediff/app"
	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/config"
)

// DiffCommand represents the two-score comparison command
type DiffCommand struct {
	// Configuration
	configFile string

	// Comparison flags
	detail         string
	timeoutSeconds int

	// Output flags
	outputJSON bool
	outputCSV  bool
	outputYAML bool
	outputPath string
	showOps    bool
}

// NewDiffCommand creates a new diff command
func NewDiffCommand() *DiffCommand {
	return &DiffCommand{}
}

// CreateCobraCommand creates the cobra command for score comparison
func (c *DiffCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <original> <target>",
		Short: "Compare two score files",
		Long: `Compare two MusicXML score files and report the visual notation
differences as edit operations with a scalar cost.

The first file is the reference (ground truth); the second is the score
compared to it, typically OMR output. A cost of 0 means the scores are
notation-identical at the requested detail level.

Detail levels: notes, decorated-notes, other-objects, all (default),
all+style, all+metadata, all+voicing, everything.

Examples:
  # Compare with defaults
  scorediff diff ground_truth.musicxml omr_output.musicxml

  # Show every edit operation
  scorediff diff --ops gt.musicxml omr.musicxml

  # Compare only note content, as JSON
  scorediff diff --detail notes --json gt.musicxml omr.musicxml`,
		Args: cobra.ExactArgs(2),
		RunE: c.runDiff,
	}

	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVarP(&c.detail, "detail", "d", "", "Comparison detail level")
	cmd.Flags().IntVar(&c.timeoutSeconds, "timeout", 0, "Per-comparison time budget in seconds (0 = no limit)")
	cmd.Flags().BoolVar(&c.outputJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&c.outputCSV, "csv", false, "Output in CSV format")
	cmd.Flags().BoolVar(&c.outputYAML, "yaml", false, "Output in YAML format")
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "", "Write output to file instead of stdout")
	cmd.Flags().BoolVar(&c.showOps, "ops", false, "Print the full edit-operation list")

	return cmd
}

// runDiff executes the comparison
func (c *DiffCommand) runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(c.configFile)
	if err != nil {
		return err
	}

	req, err := c.buildRequest(cmd, cfg, args)
	if err != nil {
		return err
	}

	uc := app.NewDiffUseCaseBuilder().Build()
	return uc.Execute(context.Background(), req)
}

// buildRequest merges configuration and flags; flags win where set.
func (c *DiffCommand) buildRequest(cmd *cobra.Command, cfg *config.Config, args []string) (*domain.DiffRequest, error) {
	detailName := cfg.Compare.Detail
	if cmd.Flags().Changed("detail") {
		detailName = c.detail
	}
	detail, ok := domain.ParseDetailLevel(detailName)
	if !ok {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown detail level %q", detailName), nil)
	}

	format, err := resolveOutputFormat(cmd.Flags(), cfg, c.outputJSON, c.outputCSV, c.outputYAML)
	if err != nil {
		return nil, err
	}

	timeoutSeconds := cfg.Compare.TimeoutSeconds
	if cmd.Flags().Changed("timeout") {
		timeoutSeconds = c.timeoutSeconds
	}

	showOps := cfg.Output.ShowOps
	if cmd.Flags().Changed("ops") {
		showOps = c.showOps
	}

	return &domain.DiffRequest{
		OriginalPath: args[0],
		TargetPath:   args[1],
		Detail:       detail,
		OutputFormat: format,
		OutputPath:   c.outputPath,
		ShowOps:      showOps,
		Timeout:      time.Duration(timeoutSeconds) * time.Second,
		ConfigPath:   c.configFile,
	}, nil
}

// NewDiffCmd creates and returns the diff cobra command
func NewDiffCmd() *cobra.Command {
	return NewDiffCommand().CreateCobraCommand()
}
