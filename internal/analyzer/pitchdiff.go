package analyzer

import (
	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/score"
)

// pitchListDiff is the edit distance over the ordered pitch triples of one
// note pair. Operations reference the notes; PitchIndex locates the chord
// members involved.
func pitchListDiff(a, b *score.NoteEvent) ([]domain.Operation, int) {
	pa, pb := a.Pitches, b.Pitches
	return seqDiff{
		lenA:    len(pa),
		lenB:    len(pb),
		delCost: func(i int) int { return pa[i].NotationSize() },
		insCost: func(j int) int { return pb[j].NotationSize() },
		delOps: func(i int) []domain.Operation {
			return []domain.Operation{{
				Op: domain.OpDelPitch, Original: a, Target: b,
				Cost: pa[i].NotationSize(), PitchIndex: [2]int{i, -1}, HasPitchIndex: true,
			}}
		},
		insOps: func(j int) []domain.Operation {
			return []domain.Operation{{
				Op: domain.OpInsPitch, Original: a, Target: b,
				Cost: pb[j].NotationSize(), PitchIndex: [2]int{-1, j}, HasPitchIndex: true,
			}}
		},
		equal: func(i, j int) bool { return pa[i] == pb[j] },
		subst: func(i, j int) diffResult {
			ops, cost := pitchPairDiff(pa[i], pb[j], a, b, [2]int{i, j})
			return diffResult{ops: ops, cost: cost}
		},
	}.run()
}

// pitchPairDiff substitutes one pitch triple for another through three
// independent, additive checks: name, accidental, tie.
func pitchPairDiff(p1, p2 score.Pitch, a, b *score.NoteEvent, idx [2]int) ([]domain.Operation, int) {
	var ops []domain.Operation
	cost := 0

	if p1.Name != p2.Name {
		cost++
		op := domain.OpPitchNameEdit
		if p1.IsRest() != p2.IsRest() {
			op = domain.OpPitchTypeEdit
		}
		ops = append(ops, domain.Operation{
			Op: op, Original: a, Target: b, Cost: 1, PitchIndex: idx, HasPitchIndex: true,
		})
	}

	if p1.Accidental != p2.Accidental {
		switch {
		case p1.Accidental == score.NoAccidental:
			cost++
			ops = append(ops, domain.Operation{
				Op: domain.OpAccidentIns, Original: a, Target: b, Cost: 1, PitchIndex: idx, HasPitchIndex: true,
			})
		case p2.Accidental == score.NoAccidental:
			cost++
			ops = append(ops, domain.Operation{
				Op: domain.OpAccidentDel, Original: a, Target: b, Cost: 1, PitchIndex: idx, HasPitchIndex: true,
			})
		default:
			// A different alteration is both a removal and an addition.
			cost += 2
			ops = append(ops, domain.Operation{
				Op: domain.OpAccidentEdit, Original: a, Target: b, Cost: 2, PitchIndex: idx, HasPitchIndex: true,
			})
		}
	}

	if p1.Tied != p2.Tied {
		cost++
		op := domain.OpTieIns
		if p1.Tied {
			op = domain.OpTieDel
		}
		ops = append(ops, domain.Operation{
			Op: op, Original: a, Target: b, Cost: 1, PitchIndex: idx, HasPitchIndex: true,
		})
	}

	return ops, cost
}
