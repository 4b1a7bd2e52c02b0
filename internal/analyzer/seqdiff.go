package analyzer

import "github.com/ludo-technologies/scorediff/domain"

// diffResult is one memoized (operations, cost) outcome. Stored slices are
// shared between cache hits and must never be appended to in place.
type diffResult struct {
	ops  []domain.Operation
	cost int
}

// memoKey is a pair of content signatures.
type memoKey struct {
	a, b string
}

// seqDiff describes one linear edit-distance problem between two sequences.
// The callbacks close over the actual element slices so the table never
// sees element types.
type seqDiff struct {
	lenA, lenB int

	// delCost/insCost return the cost of dropping or adding one element.
	delCost func(i int) int
	insCost func(j int) int

	// delOps/insOps return the operations recording that drop or add.
	delOps func(i int) []domain.Operation
	insOps func(j int) []domain.Operation

	// equal short-circuits the substitution: equal elements substitute for
	// free with no operations.
	equal func(i, j int) bool

	// subst diffs two unequal elements.
	subst func(i, j int) diffResult
}

const (
	stepDel = iota
	stepIns
	stepSub
)

// run fills a suffix-indexed table bottom-up and backtracks the chosen
// path. Candidates are tried delete first, then insert, then substitute;
// the first minimum wins, which fixes the same canonical edit script at
// every level of the engine.
func (d seqDiff) run() ([]domain.Operation, int) {
	m, n := d.lenA, d.lenB
	cost := make([][]int, m+1)
	choice := make([][]int8, m+1)
	subs := make([][]diffResult, m+1)
	for i := range cost {
		cost[i] = make([]int, n+1)
		choice[i] = make([]int8, n+1)
		subs[i] = make([]diffResult, n+1)
	}

	for i := m - 1; i >= 0; i-- {
		cost[i][n] = cost[i+1][n] + d.delCost(i)
		choice[i][n] = stepDel
	}
	for j := n - 1; j >= 0; j-- {
		cost[m][j] = cost[m][j+1] + d.insCost(j)
		choice[m][j] = stepIns
	}

	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			best := cost[i+1][j] + d.delCost(i)
			pick := int8(stepDel)

			if c := cost[i][j+1] + d.insCost(j); c < best {
				best = c
				pick = stepIns
			}

			var sub diffResult
			if !d.equal(i, j) {
				sub = d.subst(i, j)
			}
			if c := cost[i+1][j+1] + sub.cost; c < best {
				best = c
				pick = stepSub
				subs[i][j] = sub
			}

			cost[i][j] = best
			choice[i][j] = pick
		}
	}

	// Walk the path, then emit the steps back to front: each step's
	// operations follow everything that happens later in the sequences.
	type step struct {
		kind int8
		i, j int
	}
	var path []step
	for i, j := 0, 0; i < m || j < n; {
		s := step{kind: choice[i][j], i: i, j: j}
		path = append(path, s)
		switch s.kind {
		case stepDel:
			i++
		case stepIns:
			j++
		default:
			i++
			j++
		}
	}

	var ops []domain.Operation
	for k := len(path) - 1; k >= 0; k-- {
		s := path[k]
		switch s.kind {
		case stepDel:
			ops = append(ops, d.delOps(s.i)...)
		case stepIns:
			ops = append(ops, d.insOps(s.j)...)
		default:
			if !d.equal(s.i, s.j) {
				ops = append(ops, subs[s.i][s.j].ops...)
			}
		}
	}
	return ops, cost[0][0]
}
