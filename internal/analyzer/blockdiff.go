package analyzer

import (
	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/score"
)

// blockDiff is the measure-level edit distance of one non-common run.
// Insertion and deletion cost a measure's full notation size; substitution
// descends into the measure's contents.
func (c *Comparison) blockDiff(original, compareTo []*score.Measure) diffResult {
	ops, cost := seqDiff{
		lenA:    len(original),
		lenB:    len(compareTo),
		delCost: func(i int) int { return original[i].NotationSize() },
		insCost: func(j int) int { return compareTo[j].NotationSize() },
		delOps: func(i int) []domain.Operation {
			return []domain.Operation{{Op: domain.OpDelBar, Original: original[i], Cost: original[i].NotationSize()}}
		},
		insOps: func(j int) []domain.Operation {
			return []domain.Operation{{Op: domain.OpInsBar, Target: compareTo[j], Cost: compareTo[j].NotationSize()}}
		},
		equal: func(i, j int) bool { return original[i].Signature() == compareTo[j].Signature() },
		subst: func(i, j int) diffResult { return c.measureDiff(original[i], compareTo[j]) },
	}.run()
	return diffResult{ops: ops, cost: cost}
}

// measureDiff substitutes one measure for another: extras are paired by the
// greedy set distance, lyrics are diffed linearly, and the notes go through
// voice coupling in voiced mode or the inside-bar diff in flat mode.
func (c *Comparison) measureDiff(original, compareTo *score.Measure) diffResult {
	key := memoKey{a: original.Signature(), b: compareTo.Signature()}
	if res, ok := c.measureMemo[key]; ok {
		return res
	}

	var ops []domain.Operation
	cost := 0

	if original.Voiced() || compareTo.Voiced() {
		vOps, vCost := c.voicesCoupling(original.Voices, compareTo.Voices)
		ops = append(ops, vOps...)
		cost += vCost
	} else {
		res := c.insideBarDiff(original.Notes, compareTo.Notes)
		ops = append(ops, res.ops...)
		cost += res.cost
	}

	eOps, eCost := c.extrasSetDistance(original.Extras, compareTo.Extras)
	ops = append(ops, eOps...)
	cost += eCost

	lOps, lCost := c.lyricsDiff(original.Lyrics, compareTo.Lyrics)
	ops = append(ops, lOps...)
	cost += lCost

	res := diffResult{ops: ops, cost: cost}
	c.measureMemo[key] = res
	return res
}
