package analyzer

import (
	"strings"

	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/score"
)

// voicesCoupling matches the voices of a voiced measure pair by full
// permutation search with deletion and insertion: either drop the first
// original voice, or pair it with each remaining target voice in turn. A
// pairing costs nothing when the voices are content-equal, otherwise the
// inside-bar diff of their note lists. Voice counts per measure are small,
// so the combinatorial search stays affordable; the signature-keyed memo
// catches the repeated sub-pools.
func (c *Comparison) voicesCoupling(original, compareTo []*score.Voice) ([]domain.Operation, int) {
	if len(original) == 0 && len(compareTo) == 0 {
		return nil, 0
	}

	key := voicesKey(original, compareTo)
	if res, ok := c.voicesMemo[key]; ok {
		return res.ops, res.cost
	}

	var ops []domain.Operation
	var cost int

	switch {
	case len(original) == 0:
		v := compareTo[0]
		ops, cost = c.voicesCoupling(original, compareTo[1:])
		ops = appendOp(ops, domain.Operation{Op: domain.OpVoiceIns, Target: v, Cost: v.NotationSize()})
		cost += v.NotationSize()

	case len(compareTo) == 0:
		v := original[0]
		ops, cost = c.voicesCoupling(original[1:], compareTo)
		ops = appendOp(ops, domain.Operation{Op: domain.OpVoiceDel, Original: v, Cost: v.NotationSize()})
		cost += v.NotationSize()

	default:
		// Deletion candidate first; ties go to it.
		delOps, delCost := c.voicesCoupling(original[1:], compareTo)
		delCost += original[0].NotationSize()
		bestOps := appendOp(delOps, domain.Operation{Op: domain.OpVoiceDel, Original: original[0], Cost: original[0].NotationSize()})
		bestCost := delCost

		for i, cand := range compareTo {
			rest := make([]*score.Voice, 0, len(compareTo)-1)
			rest = append(rest, compareTo[:i]...)
			rest = append(rest, compareTo[i+1:]...)

			subOps, subCost := c.voicesCoupling(original[1:], rest)
			if cand.Signature() != original[0].Signature() {
				inner := c.insideBarDiff(original[0].Notes, cand.Notes)
				subOps = append(append([]domain.Operation(nil), subOps...), inner.ops...)
				subCost += inner.cost
			}
			if subCost < bestCost {
				bestOps = subOps
				bestCost = subCost
			}
		}
		ops, cost = bestOps, bestCost
	}

	c.voicesMemo[key] = diffResult{ops: ops, cost: cost}
	return ops, cost
}

// appendOp clones before appending so memoized slices stay frozen.
func appendOp(ops []domain.Operation, op domain.Operation) []domain.Operation {
	out := make([]domain.Operation, 0, len(ops)+1)
	out = append(out, ops...)
	return append(out, op)
}

func voicesKey(original, compareTo []*score.Voice) string {
	var sb strings.Builder
	for _, v := range original {
		sb.WriteString(v.Signature())
		sb.WriteByte(30)
	}
	sb.WriteByte(31)
	for _, v := range compareTo {
		sb.WriteString(v.Signature())
		sb.WriteByte(30)
	}
	return sb.String()
}
