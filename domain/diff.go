package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
)

// SortCriteria represents the criteria for sorting evaluation results
type SortCriteria string

const (
	SortByCost       SortCriteria = "cost"
	SortByName       SortCriteria = "name"
	SortBySimilarity SortCriteria = "similarity"
)

// DiffRequest represents a request to compare two scores
type DiffRequest struct {
	// Input files: the reference (ground truth) and the score compared to it
	OriginalPath string `json:"original_path"`
	TargetPath   string `json:"target_path"`

	// Comparison configuration
	Detail DetailLevel `json:"detail"`

	// Output configuration
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	OutputPath   string       `json:"output_path,omitempty"`
	ShowOps      bool         `json:"show_ops"`

	// Performance configuration. When the budget elapses the comparison is
	// reported as incomplete, not failed.
	Timeout time.Duration `json:"-"`

	// Configuration file
	ConfigPath string `json:"config_path,omitempty"`
}

// Validate validates a diff request
func (req *DiffRequest) Validate() error {
	if req.OriginalPath == "" || req.TargetPath == "" {
		return NewValidationError("two score paths are required")
	}
	if req.Detail == 0 {
		return NewValidationError("detail level cannot be empty")
	}
	return nil
}

// DiffResult holds the outcome of one score comparison.
type DiffResult struct {
	// Operations is the minimal-cost edit script from original to target.
	Operations []Operation `json:"-"`

	// Cost approximates the number of visually distinct symbols that
	// differ. Zero means the scores are notation-identical at the
	// requested detail level.
	Cost int `json:"cost"`

	// Notation sizes of both scores, for normalized metrics.
	OriginalSize int `json:"original_size"`
	TargetSize   int `json:"target_size"`

	// SyntaxErrorsFixed is the (possibly clamped) repair credit included
	// in Cost.
	SyntaxErrorsFixed int `json:"syntax_errors_fixed"`

	// Incomplete is set when the comparison ran out of its time budget.
	Incomplete bool `json:"incomplete,omitempty"`
}

// OMRNED returns the normalized edit distance: cost over combined notation
// size. Identical scores score 0.0.
func (r *DiffResult) OMRNED() float64 {
	total := r.OriginalSize + r.TargetSize
	if total == 0 {
		return 0.0
	}
	return float64(r.Cost) / float64(total)
}

// SECR returns the symbolic error-correction ratio, 1 - OMRNED. Identical
// scores score 1.0.
func (r *DiffResult) SECR() float64 {
	return 1.0 - r.OMRNED()
}

// DiffResponse represents the response from a score comparison
type DiffResponse struct {
	Result *DiffResult `json:"result"`

	// Metadata
	Request  *DiffRequest `json:"request,omitempty"`
	Duration int64        `json:"duration_ms"`
	Success  bool         `json:"success"`
	Error    string       `json:"error,omitempty"`
}

// EvaluateRequest represents a batch evaluation of score pairs
type EvaluateRequest struct {
	// Ground-truth paths or glob patterns, paired positionally with the
	// comparison targets (e.g. OMR engine output).
	OriginalPatterns []string `json:"original_patterns"`
	TargetPatterns   []string `json:"target_patterns"`

	Detail DetailLevel `json:"detail"`

	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	OutputPath   string       `json:"output_path,omitempty"`
	SortBy       SortCriteria `json:"sort_by"`

	Timeout    time.Duration `json:"-"`
	ConfigPath string        `json:"config_path,omitempty"`
}

// Validate validates an evaluate request
func (req *EvaluateRequest) Validate() error {
	if len(req.OriginalPatterns) == 0 || len(req.TargetPatterns) == 0 {
		return NewValidationError("original and target patterns cannot be empty")
	}
	if req.Detail == 0 {
		return NewValidationError("detail level cannot be empty")
	}
	switch req.SortBy {
	case SortByCost, SortByName, SortBySimilarity, "":
	default:
		return NewValidationError("sort_by must be one of: cost, name, similarity")
	}
	return nil
}

// PairResult is the evaluation outcome for one score pair.
type PairResult struct {
	OriginalPath string  `json:"original_path" yaml:"original_path"`
	TargetPath   string  `json:"target_path" yaml:"target_path"`
	Cost         int     `json:"cost" yaml:"cost"`
	CombinedSize int     `json:"combined_size" yaml:"combined_size"`
	OMRNED       float64 `json:"omr_ned" yaml:"omr_ned"`
	SECR         float64 `json:"secr" yaml:"secr"`
	Incomplete   bool    `json:"incomplete,omitempty" yaml:"incomplete,omitempty"`
	Error        string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// EvaluateResponse represents the response from a batch evaluation
type EvaluateResponse struct {
	Pairs []PairResult `json:"pairs" yaml:"pairs"`

	// Aggregates over all successfully compared pairs
	MeanOMRNED float64 `json:"mean_omr_ned" yaml:"mean_omr_ned"`
	MeanSECR   float64 `json:"mean_secr" yaml:"mean_secr"`

	Duration int64  `json:"duration_ms" yaml:"duration_ms"`
	Success  bool   `json:"success" yaml:"success"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// DiffService defines the interface for score comparison services
type DiffService interface {
	// Diff compares two score files and produces the edit script and cost
	Diff(ctx context.Context, req *DiffRequest) (*DiffResponse, error)

	// Evaluate runs a batch comparison over many score pairs
	Evaluate(ctx context.Context, req *EvaluateRequest) (*EvaluateResponse, error)
}

// DiffFormatter defines the interface for formatting comparison results
type DiffFormatter interface {
	// FormatDiffResponse formats a single-pair comparison result
	FormatDiffResponse(response *DiffResponse, format OutputFormat, writer io.Writer) error

	// FormatEvaluateResponse formats a batch evaluation result
	FormatEvaluateResponse(response *EvaluateResponse, format OutputFormat, writer io.Writer) error
}

// ProgressReporter reports batch progress to the user. Implementations must
// tolerate being nil-checked and used from a single goroutine.
type ProgressReporter interface {
	// Start begins reporting over total units of work
	Start(total int)

	// Step records one completed unit
	Step()

	// Finish completes reporting
	Finish()
}
