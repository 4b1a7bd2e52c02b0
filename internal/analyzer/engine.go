package analyzer

import (
	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/score"
)

// Comparison owns the memoization state of one top-level score comparison.
// The caches are keyed by content signatures, so results from different
// comparisons must never mix: create a fresh Comparison per run and discard
// it afterwards. A Comparison is not safe for concurrent use.
type Comparison struct {
	measureMemo map[memoKey]diffResult
	noteMemo    map[memoKey]diffResult
	voicesMemo  map[string]diffResult
}

// NewComparison returns an empty, run-scoped comparison state.
func NewComparison() *Comparison {
	return &Comparison{
		measureMemo: make(map[memoKey]diffResult),
		noteMemo:    make(map[memoKey]diffResult),
		voicesMemo:  make(map[string]diffResult),
	}
}

// CompareScores computes the edit script and cost transforming original
// into compareTo. Parts are paired positionally; measures of unpaired tail
// parts are inserted or deleted wholesale. The syntax-repair credit of both
// scores is added last, clamped so the total never exceeds the combined
// notation size.
func (c *Comparison) CompareScores(original, compareTo *score.Score) ([]domain.Operation, int) {
	var ops []domain.Operation
	cost := 0

	paired := len(original.Parts)
	if len(compareTo.Parts) < paired {
		paired = len(compareTo.Parts)
	}
	for p := 0; p < paired; p++ {
		for _, run := range nonCommonRuns(original.Parts[p].Measures, compareTo.Parts[p].Measures) {
			res := c.blockDiff(run.original, run.compareTo)
			ops = append(ops, res.ops...)
			cost += res.cost
		}
	}
	for _, part := range original.Parts[paired:] {
		for _, m := range part.Measures {
			ops = append(ops, domain.Operation{Op: domain.OpDelBar, Original: m, Cost: m.NotationSize()})
			cost += m.NotationSize()
		}
	}
	for _, part := range compareTo.Parts[paired:] {
		for _, m := range part.Measures {
			ops = append(ops, domain.Operation{Op: domain.OpInsBar, Target: m, Cost: m.NotationSize()})
			cost += m.NotationSize()
		}
	}

	groupOps, groupCost := staffGroupsDiff(original.Groups, compareTo.Groups)
	ops = append(ops, groupOps...)
	cost += groupCost

	mdOps, mdCost := metadataDiff(original.Metadata, compareTo.Metadata)
	ops = append(ops, mdOps...)
	cost += mdCost

	fixed := original.SyntaxErrorsFixed + compareTo.SyntaxErrorsFixed
	if fixed > 0 {
		limit := original.NotationSize() + compareTo.NotationSize()
		if cost+fixed > limit {
			fixed = limit - cost
			if fixed < 0 {
				fixed = 0
			}
		}
		if fixed > 0 {
			ops = append(ops, domain.Operation{Op: domain.OpSyntaxError, Cost: fixed})
			cost += fixed
		}
	}

	return ops, cost
}
