package analyzer

import (
	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/score"
)

// insideBarDiff is the note-level edit distance of two flat note lists.
func (c *Comparison) insideBarDiff(original, compareTo []*score.NoteEvent) diffResult {
	ops, cost := seqDiff{
		lenA:    len(original),
		lenB:    len(compareTo),
		delCost: func(i int) int { return original[i].NotationSize() },
		insCost: func(j int) int { return compareTo[j].NotationSize() },
		delOps: func(i int) []domain.Operation {
			return []domain.Operation{{Op: domain.OpNoteDel, Original: original[i], Cost: original[i].NotationSize()}}
		},
		insOps: func(j int) []domain.Operation {
			return []domain.Operation{{Op: domain.OpNoteIns, Target: compareTo[j], Cost: compareTo[j].NotationSize()}}
		},
		equal: func(i, j int) bool { return original[i].Signature() == compareTo[j].Signature() },
		subst: func(i, j int) diffResult { return c.noteDiff(original[i], compareTo[j]) },
	}.run()
	return diffResult{ops: ops, cost: cost}
}

// noteDiff is the structural substitution cost of one note pair: the sum
// of independent per-feature costs. Equal features contribute nothing.
func (c *Comparison) noteDiff(a, b *score.NoteEvent) diffResult {
	key := memoKey{a: a.Signature(), b: b.Signature()}
	if res, ok := c.noteMemo[key]; ok {
		return res
	}

	var ops []domain.Operation
	cost := 0

	if !pitchesEqual(a.Pitches, b.Pitches) {
		pOps, pCost := pitchListDiff(a, b)
		ops = append(ops, pOps...)
		cost += pCost
	}

	if a.NoteHead != b.NoteHead {
		ops = append(ops, domain.Operation{Op: domain.OpHeadEdit, Original: a, Target: b, Cost: 2})
		cost += 2
	}

	if a.Dots != b.Dots {
		delta := a.Dots - b.Dots
		op := domain.OpDotDel
		if delta < 0 {
			delta = -delta
			op = domain.OpDotIns
		}
		ops = append(ops, domain.Operation{Op: op, Original: a, Target: b, Cost: delta})
		cost += delta
	}

	if a.GraceType != b.GraceType {
		ops = append(ops, domain.Operation{Op: domain.OpGraceEdit, Original: a, Target: b, Cost: 2})
		cost += 2
	}
	if a.GraceSlash != b.GraceSlash {
		ops = append(ops, domain.Operation{Op: domain.OpGraceSlashEdit, Original: a, Target: b, Cost: 1})
		cost += 1
	}

	if !stringsEqual(a.Beams, b.Beams) {
		tOps, tCost := tokenListDiff(a.Beams, b.Beams, a, b, beamFamily)
		ops = append(ops, tOps...)
		cost += tCost
	}
	if !stringsEqual(a.TupletTypes, b.TupletTypes) {
		tOps, tCost := tokenListDiff(a.TupletTypes, b.TupletTypes, a, b, tupletFamily)
		ops = append(ops, tOps...)
		cost += tCost
	}
	if !stringsEqual(a.TupletInfo, b.TupletInfo) {
		tOps, tCost := tokenListDiff(a.TupletInfo, b.TupletInfo, a, b, tupletInfoFamily)
		ops = append(ops, tOps...)
		cost += tCost
	}
	if !stringsEqual(a.Articulations, b.Articulations) {
		tOps, tCost := tokenListDiff(a.Articulations, b.Articulations, a, b, articulationFamily)
		ops = append(ops, tOps...)
		cost += tCost
	}
	if !stringsEqual(a.Expressions, b.Expressions) {
		tOps, tCost := tokenListDiff(a.Expressions, b.Expressions, a, b, expressionFamily)
		ops = append(ops, tOps...)
		cost += tCost
	}

	if differentEnough(a.Gap, b.Gap) {
		op := domain.OpEditSpace
		switch {
		case a.Gap == 0:
			op = domain.OpInsSpace
		case b.Gap == 0:
			op = domain.OpDelSpace
		}
		ops = append(ops, domain.Operation{Op: op, Original: a, Target: b, Cost: 1})
		cost += 1
	}

	if a.NoteShape != b.NoteShape {
		sc := retypeCost(isDefaultShape(a.NoteShape), isDefaultShape(b.NoteShape))
		ops = append(ops, domain.Operation{Op: domain.OpEditNoteShape, Original: a, Target: b, Cost: sc})
		cost += sc
	}
	if a.NoteheadFill != b.NoteheadFill {
		sc := retypeCost(isDefaultFill(a.NoteheadFill), isDefaultFill(b.NoteheadFill))
		ops = append(ops, domain.Operation{Op: domain.OpEditNoteheadFill, Original: a, Target: b, Cost: sc})
		cost += sc
	}
	if a.NoteheadParenthesis != b.NoteheadParenthesis {
		ops = append(ops, domain.Operation{Op: domain.OpEditNoteheadParenthesis, Original: a, Target: b, Cost: 1})
		cost += 1
	}
	if a.StemDirection != b.StemDirection {
		sc := retypeCost(noStem(a.StemDirection), noStem(b.StemDirection))
		ops = append(ops, domain.Operation{Op: domain.OpEditStemDirection, Original: a, Target: b, Cost: sc})
		cost += sc
	}
	if !mapsEqual(a.Style, b.Style) {
		ops = append(ops, domain.Operation{Op: domain.OpEditStyle, Original: a, Target: b, Cost: 1})
		cost += 1
	}

	res := diffResult{ops: ops, cost: cost}
	c.noteMemo[key] = res
	return res
}

// retypeCost is 2 when a style attribute genuinely changes from one
// non-default value to another, 1 when it is merely added or removed.
func retypeCost(aDefault, bDefault bool) int {
	if aDefault || bDefault {
		return 1
	}
	return 2
}

func isDefaultShape(s string) bool { return s == "" || s == "normal" }
func isDefaultFill(s string) bool  { return s == "" || s == "default" }
func noStem(s string) bool         { return s == "" || s == "noStem" || s == "none" }

func pitchesEqual(a, b []score.Pitch) bool {
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

func stringsEqual(a, b []string) bool {
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

func mapsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
