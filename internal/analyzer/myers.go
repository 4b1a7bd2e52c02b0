package analyzer

import "github.com/ludo-technologies/scorediff/internal/score"

// nonCommonRun is a maximal stretch of measures the LCS alignment could not
// match as common. Only these runs reach the edit-distance engine; common
// runs cost nothing and produce no operations.
type nonCommonRun struct {
	original  []*score.Measure
	compareTo []*score.Measure
}

const (
	myersOriginal = iota
	myersCompareTo
	myersCommon
)

type myersStep struct {
	kind  int
	index int
}

type myersFrontier struct {
	x       int
	history []myersStep
}

// myersAlign runs the Myers O(ND) edit-graph search over the two measure
// sequences, comparing by content signature. Diagonal runs are consumed
// greedily as common. The go-down rule (left edge, or the lower neighboring
// frontier is behind) fixes a canonical alignment.
func myersAlign(a, b []*score.Measure) []myersStep {
	frontier := map[int]myersFrontier{1: {}}

	aMax, bMax := len(a), len(b)
	for d := 0; d <= aMax+bMax; d++ {
		for k := -d; k <= d; k += 2 {
			goDown := k == -d || (k != d && frontier[k-1].x < frontier[k+1].x)

			var x int
			var history []myersStep
			if goDown {
				prev := frontier[k+1]
				x = prev.x
				history = prev.history
			} else {
				prev := frontier[k-1]
				x = prev.x + 1
				history = prev.history
			}

			// Clamp capacity so appends below never mutate a history some
			// other frontier still holds.
			history = history[:len(history):len(history)]
			y := x - k

			if 1 <= y && y <= bMax && goDown {
				history = append(history, myersStep{kind: myersCompareTo, index: y - 1})
			} else if 1 <= x && x <= aMax {
				history = append(history, myersStep{kind: myersOriginal, index: x - 1})
			}

			for x < aMax && y < bMax && a[x].Signature() == b[y].Signature() {
				x++
				y++
				history = append(history, myersStep{kind: myersCommon, index: x - 1})
			}

			if x >= aMax && y >= bMax {
				return history
			}

			frontier[k] = myersFrontier{x: x, history: history}
		}
	}
	return nil
}

// nonCommonRuns splits the alignment into the runs of measures that need
// the expensive engine.
func nonCommonRuns(a, b []*score.Measure) []nonCommonRun {
	steps := myersAlign(a, b)

	runs := []nonCommonRun{{}}
	for _, s := range steps {
		switch s.kind {
		case myersCommon:
			runs = append(runs, nonCommonRun{})
		case myersOriginal:
			cur := &runs[len(runs)-1]
			cur.original = append(cur.original, a[s.index])
		case myersCompareTo:
			cur := &runs[len(runs)-1]
			cur.compareTo = append(cur.compareTo, b[s.index])
		}
	}

	out := runs[:0]
	for _, r := range runs {
		if len(r.original) > 0 || len(r.compareTo) > 0 {
			out = append(out, r)
		}
	}
	return out
}
