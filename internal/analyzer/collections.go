package analyzer

import (
	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/score"
)

// lyricsDiff linear-diffs the lyric syllables of one measure pair. Lyrics
// keep their sequence order, so no key-based pairing is needed.
func (c *Comparison) lyricsDiff(original, compareTo []*score.Lyric) ([]domain.Operation, int) {
	return seqDiff{
		lenA:    len(original),
		lenB:    len(compareTo),
		delCost: func(i int) int { return original[i].NotationSize() },
		insCost: func(j int) int { return compareTo[j].NotationSize() },
		delOps: func(i int) []domain.Operation {
			return []domain.Operation{{Op: domain.OpLyricDel, Original: original[i], Cost: original[i].NotationSize()}}
		},
		insOps: func(j int) []domain.Operation {
			return []domain.Operation{{Op: domain.OpLyricIns, Target: compareTo[j], Cost: compareTo[j].NotationSize()}}
		},
		equal: func(i, j int) bool { return original[i].Signature() == compareTo[j].Signature() },
		subst: func(i, j int) diffResult {
			ops, cost := lyricPairDiff(original[i], compareTo[j])
			return diffResult{ops: ops, cost: cost}
		},
	}.run()
}

func lyricPairDiff(a, b *score.Lyric) ([]domain.Operation, int) {
	var ops []domain.Operation
	cost := 0

	if a.Text != b.Text {
		tc := textDistance(a.Text, b.Text)
		ops = append(ops, domain.Operation{Op: domain.OpLyricTextEdit, Original: a, Target: b, Cost: tc})
		cost += tc
	}
	if a.Number != b.Number {
		ops = append(ops, domain.Operation{Op: domain.OpLyricNumEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	if a.Identifier != b.Identifier {
		ops = append(ops, domain.Operation{Op: domain.OpLyricIDEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	if differentEnough(a.Offset, b.Offset) {
		ops = append(ops, domain.Operation{Op: domain.OpLyricOffsetEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	if !mapsEqual(a.Style, b.Style) {
		ops = append(ops, domain.Operation{Op: domain.OpLyricStyleEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	return ops, cost
}

// staffGroupsDiff pairs the staff groups of two scores greedily by their
// first member part, preferring pairs that also share the last member and
// the symbol shape, then substitution-diffs each pair field by field.
func staffGroupsDiff(original, compareTo []*score.StaffGroup) ([]domain.Operation, int) {
	primary := func(i, j int) bool {
		return original[i].FirstPart() == compareTo[j].FirstPart()
	}
	secondary := func(i, j int) bool {
		return original[i].LastPart() == compareTo[j].LastPart() &&
			original[i].Symbol == compareTo[j].Symbol
	}
	pairing := greedyPairs(len(original), len(compareTo), primary, secondary)

	var ops []domain.Operation
	cost := 0
	for _, p := range pairing.pairs {
		a, b := original[p[0]], compareTo[p[1]]
		if a.Signature() == b.Signature() {
			continue
		}
		gOps, gCost := staffGroupPairDiff(a, b)
		ops = append(ops, gOps...)
		cost += gCost
	}
	for _, i := range pairing.dels {
		g := original[i]
		ops = append(ops, domain.Operation{Op: domain.OpStaffGrpDel, Original: g, Cost: g.NotationSize()})
		cost += g.NotationSize()
	}
	for _, j := range pairing.inss {
		g := compareTo[j]
		ops = append(ops, domain.Operation{Op: domain.OpStaffGrpIns, Target: g, Cost: g.NotationSize()})
		cost += g.NotationSize()
	}
	return ops, cost
}

func staffGroupPairDiff(a, b *score.StaffGroup) ([]domain.Operation, int) {
	var ops []domain.Operation
	cost := 0

	if a.Name != b.Name {
		ops = append(ops, domain.Operation{Op: domain.OpStaffGrpNameEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	if a.Abbrev != b.Abbrev {
		ops = append(ops, domain.Operation{Op: domain.OpStaffGrpAbbrevEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	if a.Symbol != b.Symbol {
		ops = append(ops, domain.Operation{Op: domain.OpStaffGrpSymbolEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	if a.BarTogether != b.BarTogether {
		ops = append(ops, domain.Operation{Op: domain.OpStaffGrpBarTogetherEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	if !intsEqual(a.PartIndices, b.PartIndices) {
		ops = append(ops, domain.Operation{Op: domain.OpStaffGrpPartIndicesEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	return ops, cost
}

// metadataDiff pairs metadata items in two passes: exact (key, value)
// matches first, then remaining items by key alone. Items with different
// keys are never paired.
func metadataDiff(original, compareTo []*score.MetadataItem) ([]domain.Operation, int) {
	usedA := make([]bool, len(original))
	usedB := make([]bool, len(compareTo))

	for i, a := range original {
		for j, b := range compareTo {
			if usedB[j] || a.Key != b.Key || a.Value != b.Value {
				continue
			}
			usedA[i] = true
			usedB[j] = true
			break
		}
	}

	var ops []domain.Operation
	cost := 0
	for i, a := range original {
		if usedA[i] {
			continue
		}
		for j, b := range compareTo {
			if usedB[j] || a.Key != b.Key {
				continue
			}
			usedA[i] = true
			usedB[j] = true
			vc := textDistance(a.Value, b.Value)
			ops = append(ops, domain.Operation{Op: domain.OpMdItemValueEdit, Original: a, Target: b, Cost: vc})
			cost += vc
			break
		}
	}

	for i, a := range original {
		if !usedA[i] {
			ops = append(ops, domain.Operation{Op: domain.OpMdItemDel, Original: a, Cost: a.NotationSize()})
			cost += a.NotationSize()
		}
	}
	for j, b := range compareTo {
		if !usedB[j] {
			ops = append(ops, domain.Operation{Op: domain.OpMdItemIns, Target: b, Cost: b.NotationSize()})
			cost += b.NotationSize()
		}
	}
	return ops, cost
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
