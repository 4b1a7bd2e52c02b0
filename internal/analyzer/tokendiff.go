package analyzer

import (
	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/score"
)

// opFamily is the ins/del/edit opcode triple of one token-list feature.
type opFamily struct {
	ins, del, edit domain.OpKind
}

var (
	beamFamily         = opFamily{ins: domain.OpInsBeam, del: domain.OpDelBeam, edit: domain.OpEditBeam}
	tupletFamily       = opFamily{ins: domain.OpInsTuplet, del: domain.OpDelTuplet, edit: domain.OpEditTuplet}
	tupletInfoFamily   = opFamily{ins: domain.OpInsTupletInfo, del: domain.OpDelTupletInfo, edit: domain.OpEditTupletInfo}
	articulationFamily = opFamily{ins: domain.OpInsArticulation, del: domain.OpDelArticulation, edit: domain.OpEditArticulation}
	expressionFamily   = opFamily{ins: domain.OpInsExpression, del: domain.OpDelExpression, edit: domain.OpEditExpression}
)

// tokenListDiff is the unit-cost edit distance over a parallel token list
// of one note pair (beams, tuplet types, tuplet labels, articulations,
// expressions). Every step costs 1; equal tokens substitute for free.
func tokenListDiff(original, compareTo []string, a, b *score.NoteEvent, fam opFamily) ([]domain.Operation, int) {
	return seqDiff{
		lenA:    len(original),
		lenB:    len(compareTo),
		delCost: func(int) int { return 1 },
		insCost: func(int) int { return 1 },
		delOps: func(int) []domain.Operation {
			return []domain.Operation{{Op: fam.del, Original: a, Target: b, Cost: 1}}
		},
		insOps: func(int) []domain.Operation {
			return []domain.Operation{{Op: fam.ins, Original: a, Target: b, Cost: 1}}
		},
		equal: func(i, j int) bool { return original[i] == compareTo[j] },
		subst: func(i, j int) diffResult {
			return diffResult{
				ops:  []domain.Operation{{Op: fam.edit, Original: a, Target: b, Cost: 1}},
				cost: 1,
			}
		},
	}.run()
}
