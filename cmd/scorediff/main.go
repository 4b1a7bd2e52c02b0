package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/scorediff/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "scorediff",
	Short: "A music score comparison tool",
	Long: `scorediff compares two music scores and reports their visual
notation differences as a minimal-cost list of edit operations.

It is built for grading Optical Music Recognition (OMR) output against
ground truth: the scalar cost approximates how many notation symbols an
engraver would have to change, and the normalized OMR-NED / SECR metrics
make scores of different sizes comparable.

Features:
  • Myers-aligned, measure-by-measure tree diff
  • Configurable detail levels, from bare notes to full style and voicing
  • Batch evaluation over paired ground-truth / OMR corpora`,
	Version: version.Short(),
}

func init() {
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewEvaluateCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
