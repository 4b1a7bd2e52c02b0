package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/ludo-technologies/scorediff/domain"
)

// DiffFormatterImpl implements the domain.DiffFormatter interface
type DiffFormatterImpl struct{}

// NewDiffFormatter creates a new diff output formatter
func NewDiffFormatter() *DiffFormatterImpl {
	return &DiffFormatterImpl{}
}

// FormatDiffResponse formats a single-pair comparison result
func (f *DiffFormatterImpl) FormatDiffResponse(response *domain.DiffResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.formatDiffAsText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, f.diffResponseForYAML(response))
	case domain.OutputFormatCSV:
		return f.formatDiffAsCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// FormatEvaluateResponse formats a batch evaluation result
func (f *DiffFormatterImpl) FormatEvaluateResponse(response *domain.EvaluateResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return f.formatEvaluateAsText(response, writer)
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return f.formatEvaluateAsCSV(response, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *DiffFormatterImpl) formatDiffAsText(response *domain.DiffResponse, writer io.Writer) error {
	if !response.Success {
		fmt.Fprintf(writer, "Comparison failed: %s\n", response.Error)
		return nil
	}
	result := response.Result

	width := terminalWidth(writer)

	fmt.Fprintln(writer, "Score Comparison")
	fmt.Fprintln(writer, strings.Repeat("=", min(40, width)))
	if response.Request != nil {
		fmt.Fprintf(writer, "  Original: %s\n", response.Request.OriginalPath)
		fmt.Fprintf(writer, "  Target:   %s\n", response.Request.TargetPath)
	}
	fmt.Fprintf(writer, "  Cost:                %d\n", result.Cost)
	fmt.Fprintf(writer, "  Original size:       %d\n", result.OriginalSize)
	fmt.Fprintf(writer, "  Target size:         %d\n", result.TargetSize)
	fmt.Fprintf(writer, "  OMR-NED:             %.4f\n", result.OMRNED())
	fmt.Fprintf(writer, "  SECR:                %.4f\n", result.SECR())
	if result.SyntaxErrorsFixed > 0 {
		fmt.Fprintf(writer, "  Syntax errors fixed: %d\n", result.SyntaxErrorsFixed)
	}
	if result.Incomplete {
		fmt.Fprintln(writer, "  Incomplete: comparison ran out of its time budget")
	}

	showOps := response.Request != nil && response.Request.ShowOps
	if showOps && len(result.Operations) > 0 {
		fmt.Fprintln(writer)
		fmt.Fprintln(writer, "OPERATIONS")
		fmt.Fprintln(writer, strings.Repeat("-", 10))
		for _, op := range result.Operations {
			fmt.Fprintln(writer, truncateLine("  "+op.String(), width))
		}
	}
	fmt.Fprintf(writer, "\nCompleted in %dms\n", response.Duration)
	return nil
}

func (f *DiffFormatterImpl) formatDiffAsCSV(response *domain.DiffResponse, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	header := []string{"original", "target", "cost", "original_size", "target_size", "omr_ned", "secr", "syntax_errors_fixed", "incomplete"}
	if err := csvWriter.Write(header); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}

	result := response.Result
	originalPath, targetPath := "", ""
	if response.Request != nil {
		originalPath = response.Request.OriginalPath
		targetPath = response.Request.TargetPath
	}
	record := []string{
		originalPath,
		targetPath,
		strconv.Itoa(result.Cost),
		strconv.Itoa(result.OriginalSize),
		strconv.Itoa(result.TargetSize),
		strconv.FormatFloat(result.OMRNED(), 'f', 4, 64),
		strconv.FormatFloat(result.SECR(), 'f', 4, 64),
		strconv.Itoa(result.SyntaxErrorsFixed),
		strconv.FormatBool(result.Incomplete),
	}
	if err := csvWriter.Write(record); err != nil {
		return domain.NewOutputError("failed to write CSV record", err)
	}
	return nil
}

// diffResponseForYAML avoids yaml.v3 choking on the embedded io.Writer and
// interface-typed operation subjects.
func (f *DiffFormatterImpl) diffResponseForYAML(response *domain.DiffResponse) map[string]interface{} {
	result := response.Result
	out := map[string]interface{}{
		"cost":          result.Cost,
		"original_size": result.OriginalSize,
		"target_size":   result.TargetSize,
		"omr_ned":       result.OMRNED(),
		"secr":          result.SECR(),
		"duration_ms":   response.Duration,
		"success":       response.Success,
	}
	if result.SyntaxErrorsFixed > 0 {
		out["syntax_errors_fixed"] = result.SyntaxErrorsFixed
	}
	if result.Incomplete {
		out["incomplete"] = true
	}
	if response.Request != nil {
		out["original"] = response.Request.OriginalPath
		out["target"] = response.Request.TargetPath
	}
	return out
}

func (f *DiffFormatterImpl) formatEvaluateAsText(response *domain.EvaluateResponse, writer io.Writer) error {
	if !response.Success {
		fmt.Fprintf(writer, "Evaluation failed: %s\n", response.Error)
		return nil
	}

	width := terminalWidth(writer)

	fmt.Fprintln(writer, "Batch Evaluation")
	fmt.Fprintln(writer, strings.Repeat("=", min(40, width)))
	fmt.Fprintf(writer, "  Pairs:       %d\n", len(response.Pairs))
	fmt.Fprintf(writer, "  Mean OMR-NED: %.4f\n", response.MeanOMRNED)
	fmt.Fprintf(writer, "  Mean SECR:    %.4f\n", response.MeanSECR)
	fmt.Fprintln(writer)

	for _, pair := range response.Pairs {
		name := pair.OriginalPath
		if runes := []rune(name); len(runes) > width-30 && width > 33 {
			name = "..." + string(runes[len(runes)-(width-33):])
		}
		switch {
		case pair.Error != "":
			fmt.Fprintf(writer, "  %s: error: %s\n", name, pair.Error)
		case pair.Incomplete:
			fmt.Fprintf(writer, "  %s: cost %d (incomplete)\n", name, pair.Cost)
		default:
			fmt.Fprintf(writer, "  %s: cost %d, SECR %.4f\n", name, pair.Cost, pair.SECR)
		}
	}
	fmt.Fprintf(writer, "\nCompleted in %dms\n", response.Duration)
	return nil
}

func (f *DiffFormatterImpl) formatEvaluateAsCSV(response *domain.EvaluateResponse, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	header := []string{"original", "target", "cost", "combined_size", "omr_ned", "secr", "incomplete", "error"}
	if err := csvWriter.Write(header); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	for _, pair := range response.Pairs {
		record := []string{
			pair.OriginalPath,
			pair.TargetPath,
			strconv.Itoa(pair.Cost),
			strconv.Itoa(pair.CombinedSize),
			strconv.FormatFloat(pair.OMRNED, 'f', 4, 64),
			strconv.FormatFloat(pair.SECR, 'f', 4, 64),
			strconv.FormatBool(pair.Incomplete),
			pair.Error,
		}
		if err := csvWriter.Write(record); err != nil {
			return domain.NewOutputError("failed to write CSV record", err)
		}
	}
	return nil
}

// truncateLine shortens a line to the given column width, cutting on rune
// boundaries so multi-byte text is never split mid-character.
func truncateLine(line string, width int) string {
	runes := []rune(line)
	if len(runes) <= width || width < 4 {
		return line
	}
	return string(runes[:width-3]) + "..."
}

// terminalWidth returns the column width of the writer's terminal, or a
// conventional 80 for non-terminal writers.
func terminalWidth(writer io.Writer) int {
	if file, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 20 {
			return width
		}
	}
	return 80
}
