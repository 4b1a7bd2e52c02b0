package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/score"
)

func extrasMeasure(extras ...score.NativeExtra) *score.NativeScore {
	native := singlePart(measureOf(nativeNote("C", 4)))
	native.Parts[0].Measures[0].Extras = extras
	return native
}

func TestExtrasSetDistance(t *testing.T) {
	t.Run("perfect match preferred over an earlier fallback", func(t *testing.T) {
		a := buildScore(t, domain.DetailDefault, extrasMeasure(
			score.NativeExtra{ID: "e1", Kind: score.KindWedge, Symbolic: "cresc", Offset: 0, Duration: 1},
		))
		b := buildScore(t, domain.DetailDefault, extrasMeasure(
			score.NativeExtra{ID: "f1", Kind: score.KindWedge, Symbolic: "cresc", Offset: 0, Duration: 2},
			score.NativeExtra{ID: "f2", Kind: score.KindWedge, Symbolic: "cresc", Offset: 0, Duration: 1},
		))

		ops, cost := NewComparison().CompareScores(a, b)
		// e1 pairs the duration-matching f2; f1 is an insertion.
		require.Len(t, ops, 1)
		assert.Equal(t, domain.OpExtraIns, ops[0].Op)
		assert.Equal(t, 1, cost)
	})

	t.Run("an early fallback keeps a later element's perfect match", func(t *testing.T) {
		a := buildScore(t, domain.DetailDefault, extrasMeasure(
			score.NativeExtra{ID: "e1", Kind: score.KindWedge, Symbolic: "cresc", Offset: 0, Duration: 2},
			score.NativeExtra{ID: "e2", Kind: score.KindWedge, Symbolic: "cresc", Offset: 0, Duration: 1},
		))
		b := buildScore(t, domain.DetailDefault, extrasMeasure(
			score.NativeExtra{ID: "f1", Kind: score.KindWedge, Symbolic: "cresc", Offset: 0, Duration: 1},
		))

		ops, cost := NewComparison().CompareScores(a, b)
		// e1 greedily consumes f1 as a fallback even though f1 would have
		// been e2's perfect match; e2 becomes a deletion. The pairing is
		// deliberately not globally optimal.
		kinds := opKinds(ops)
		assert.Contains(t, kinds, domain.OpExtraDurationEdit)
		assert.Contains(t, kinds, domain.OpExtraDel)
		assert.Equal(t, 2, cost)
	})

	t.Run("different kinds never pair", func(t *testing.T) {
		a := buildScore(t, domain.DetailDefault, extrasMeasure(
			score.NativeExtra{ID: "e1", Kind: score.KindDynamic, Symbolic: "p", Offset: 0, Duration: score.NoDuration},
		))
		b := buildScore(t, domain.DetailDefault, extrasMeasure(
			score.NativeExtra{ID: "f1", Kind: score.KindWedge, Symbolic: "p", Offset: 0, Duration: score.NoDuration},
		))

		ops, cost := NewComparison().CompareScores(a, b)
		kinds := opKinds(ops)
		assert.Contains(t, kinds, domain.OpExtraDel)
		assert.Contains(t, kinds, domain.OpExtraIns)
		assert.Equal(t, 2, cost)
	})

	t.Run("simultaneous key signatures disambiguated by accidentals", func(t *testing.T) {
		a := buildScore(t, domain.DetailDefault, extrasMeasure(
			score.NativeExtra{ID: "e1", Kind: score.KindKeySignature, Offset: 0, Duration: score.NoDuration,
				Info: map[string]string{"fifths": "2"}},
		))
		b := buildScore(t, domain.DetailDefault, extrasMeasure(
			score.NativeExtra{ID: "f1", Kind: score.KindKeySignature, Offset: 0, Duration: score.NoDuration,
				Info: map[string]string{"fifths": "-1"}},
			score.NativeExtra{ID: "f2", Kind: score.KindKeySignature, Offset: 0, Duration: score.NoDuration,
				Info: map[string]string{"fifths": "2"}},
		))

		ops, cost := NewComparison().CompareScores(a, b)
		// e1 pairs the matching two-sharp signature; the one-flat signature
		// is a plain insertion costing its single accidental.
		require.Len(t, ops, 1)
		assert.Equal(t, domain.OpExtraIns, ops[0].Op)
		assert.Equal(t, 1, cost)
	})
}

func TestGreedyPairs(t *testing.T) {
	always := func(int, int) bool { return true }
	never := func(int, int) bool { return false }

	t.Run("all perfect pairs in order", func(t *testing.T) {
		p := greedyPairs(2, 2, always, always)
		assert.Equal(t, [][2]int{{0, 0}, {1, 1}}, p.pairs)
		assert.Empty(t, p.dels)
		assert.Empty(t, p.inss)
	})

	t.Run("no primary matches at all", func(t *testing.T) {
		p := greedyPairs(2, 1, never, always)
		assert.Empty(t, p.pairs)
		assert.Equal(t, []int{0, 1}, p.dels)
		assert.Equal(t, []int{0}, p.inss)
	})

	t.Run("fallback consumes the first primary-only match", func(t *testing.T) {
		p := greedyPairs(1, 2, always, never)
		assert.Equal(t, [][2]int{{0, 0}}, p.pairs)
		assert.Equal(t, []int{1}, p.inss)
	})
}
