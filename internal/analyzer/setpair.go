package analyzer

import (
	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/score"
)

// setPairing is the outcome of one greedy pairing pass: matched index
// pairs, unmatched originals (deletions), unmatched targets (insertions).
type setPairing struct {
	pairs [][2]int
	dels  []int
	inss  []int
}

// greedyPairs pairs elements of two unordered collections. For each
// original element in order, the first unpaired target matching primary
// and secondary keys is consumed as a perfect match; failing that, the
// first target seen that matched primary keys alone is consumed as a
// fallback. A later target that would have been a perfect match does not
// displace an earlier fallback: the pairing is deliberately greedy, and
// the reported costs depend on exactly this behavior.
func greedyPairs(lenA, lenB int, primary, secondary func(i, j int) bool) setPairing {
	var out setPairing
	used := make([]bool, lenB)

	for i := 0; i < lenA; i++ {
		fallback := -1
		matched := false
		for j := 0; j < lenB; j++ {
			if used[j] || !primary(i, j) {
				continue
			}
			if secondary(i, j) {
				used[j] = true
				out.pairs = append(out.pairs, [2]int{i, j})
				matched = true
				break
			}
			if fallback < 0 {
				fallback = j
			}
		}
		if matched {
			continue
		}
		if fallback >= 0 {
			used[fallback] = true
			out.pairs = append(out.pairs, [2]int{i, fallback})
			continue
		}
		out.dels = append(out.dels, i)
	}
	for j := 0; j < lenB; j++ {
		if !used[j] {
			out.inss = append(out.inss, j)
		}
	}
	return out
}

// extrasSetDistance pairs the non-note symbols of one measure pair by kind
// and offset, preferring pairs that also agree on duration and on the
// kind-specific disambiguation fields, then substitution-diffs each pair.
func (c *Comparison) extrasSetDistance(original, compareTo []*score.ExtraSymbol) ([]domain.Operation, int) {
	primary := func(i, j int) bool {
		a, b := original[i], compareTo[j]
		return a.Kind == b.Kind && !differentEnough(a.Offset, b.Offset)
	}
	secondary := func(i, j int) bool {
		a, b := original[i], compareTo[j]
		if differentEnough(a.Duration, b.Duration) {
			return false
		}
		switch a.Kind {
		case score.KindKeySignature:
			// Simultaneous key signatures are told apart by their
			// accidental sets.
			return mapsEqual(a.Info, b.Info)
		case score.KindSlur:
			return a.Info["placement"] == b.Info["placement"] && a.NumNotes == b.NumNotes
		default:
			return true
		}
	}

	pairing := greedyPairs(len(original), len(compareTo), primary, secondary)

	var ops []domain.Operation
	cost := 0
	for _, p := range pairing.pairs {
		a, b := original[p[0]], compareTo[p[1]]
		if a.Signature() == b.Signature() {
			continue
		}
		pOps, pCost := extraPairDiff(a, b)
		ops = append(ops, pOps...)
		cost += pCost
	}
	for _, i := range pairing.dels {
		e := original[i]
		ops = append(ops, domain.Operation{Op: domain.OpExtraDel, Original: e, Cost: e.NotationSize()})
		cost += e.NotationSize()
	}
	for _, j := range pairing.inss {
		e := compareTo[j]
		ops = append(ops, domain.Operation{Op: domain.OpExtraIns, Target: e, Cost: e.NotationSize()})
		cost += e.NotationSize()
	}
	return ops, cost
}

// extraPairDiff substitutes one extra symbol for another field by field.
func extraPairDiff(a, b *score.ExtraSymbol) ([]domain.Operation, int) {
	var ops []domain.Operation
	cost := 0

	if a.Content != b.Content {
		cc := textDistance(a.Content, b.Content)
		ops = append(ops, domain.Operation{Op: domain.OpExtraContentEdit, Original: a, Target: b, Cost: cc})
		cost += cc
	}
	if a.Symbolic != b.Symbolic {
		ops = append(ops, domain.Operation{Op: domain.OpExtraSymbolEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	if !mapsEqual(a.Info, b.Info) {
		ops = append(ops, domain.Operation{Op: domain.OpExtraInfoEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	if differentEnough(a.Offset, b.Offset) {
		oc := quantityCost(a.Offset, b.Offset)
		ops = append(ops, domain.Operation{Op: domain.OpExtraOffsetEdit, Original: a, Target: b, Cost: oc})
		cost += oc
	}
	if differentEnough(a.Duration, b.Duration) {
		dc := quantityCost(a.Duration, b.Duration)
		ops = append(ops, domain.Operation{Op: domain.OpExtraDurationEdit, Original: a, Target: b, Cost: dc})
		cost += dc
	}
	if !mapsEqual(a.Style, b.Style) {
		ops = append(ops, domain.Operation{Op: domain.OpExtraStyleEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	return ops, cost
}
