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

// EvaluateCommand represents the batch evaluation command
type EvaluateCommand struct {
	// Configuration
	configFile string

	// Input flags
	originalPatterns []string
	targetPatterns   []string

	// Comparison flags
	detail         string
	timeoutSeconds int

	// Output flags
	outputJSON bool
	outputCSV  bool
	outputYAML bool
	outputPath string
	sortBy     string
}

// NewEvaluateCommand creates a new evaluate command
func NewEvaluateCommand() *EvaluateCommand {
	return &EvaluateCommand{}
}

// CreateCobraCommand creates the cobra command for batch evaluation
func (c *EvaluateCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate --original <pattern> --target <pattern>",
		Short: "Evaluate OMR output over many score pairs",
		Long: `Compare many pairs of score files and report per-pair costs plus
aggregate OMR-NED and SECR metrics.

Original (ground truth) and target (OMR output) files are matched
positionally after each pattern list is expanded and sorted, so mirrored
directory layouts pair naturally.

Examples:
  # Evaluate an OMR engine against a ground-truth corpus
  scorediff evaluate --original 'gt/**/*.musicxml' --target 'omr/**/*.musicxml'

  # Worst pairs first, as CSV
  scorediff evaluate --original 'gt/*.xml' --target 'omr/*.xml' --sort cost --csv`,
		Args: cobra.NoArgs,
		RunE: c.runEvaluate,
	}

	cmd.Flags().StringVarP(&c.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().StringSliceVar(&c.originalPatterns, "original", nil, "Ground-truth files or glob patterns")
	cmd.Flags().StringSliceVar(&c.targetPatterns, "target", nil, "Target files or glob patterns")
	cmd.Flags().StringVarP(&c.detail, "detail", "d", "", "Comparison detail level")
	cmd.Flags().IntVar(&c.timeoutSeconds, "timeout", 0, "Per-pair time budget in seconds (0 = no limit)")
	cmd.Flags().BoolVar(&c.outputJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&c.outputCSV, "csv", false, "Output in CSV format")
	cmd.Flags().BoolVar(&c.outputYAML, "yaml", false, "Output in YAML format")
	cmd.Flags().StringVarP(&c.outputPath, "output", "o", "", "Write output to file instead of stdout")
	cmd.Flags().StringVar(&c.sortBy, "sort", "", "Sort pair results by: cost, name, similarity")

	_ = cmd.MarkFlagRequired("original")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

// runEvaluate executes the batch evaluation
func (c *EvaluateCommand) runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(c.configFile)
	if err != nil {
		return err
	}

	req, err := c.buildRequest(cmd, cfg)
	if err != nil {
		return err
	}

	uc := app.NewEvaluateUseCaseBuilder().Build()
	return uc.Execute(context.Background(), req)
}

func (c *EvaluateCommand) buildRequest(cmd *cobra.Command, cfg *config.Config) (*domain.EvaluateRequest, error) {
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

	sortBy := cfg.Evaluate.SortBy
	if cmd.Flags().Changed("sort") {
		sortBy = c.sortBy
	}

	return &domain.EvaluateRequest{
		OriginalPatterns: c.originalPatterns,
		TargetPatterns:   c.targetPatterns,
		Detail:           detail,
		OutputFormat:     format,
		OutputPath:       c.outputPath,
		SortBy:           domain.SortCriteria(sortBy),
		Timeout:          time.Duration(timeoutSeconds) * time.Second,
		ConfigPath:       c.configFile,
	}, nil
}

// NewEvaluateCmd creates and returns the evaluate cobra command
func NewEvaluateCmd() *cobra.Command {
	return NewEvaluateCommand().CreateCobraCommand()
}
