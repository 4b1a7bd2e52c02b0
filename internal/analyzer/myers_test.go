package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/score"
)

func alignMeasures(t *testing.T, a, b []score.NativeMeasure) ([]*score.Measure, []*score.Measure) {
	t.Helper()
	sa := buildScore(t, domain.DetailDefault, singlePart(a...))
	sb := buildScore(t, domain.DetailDefault, singlePart(b...))
	return sa.Parts[0].Measures, sb.Parts[0].Measures
}

func TestNonCommonRuns(t *testing.T) {
	m := func(steps ...string) score.NativeMeasure {
		notes := make([]score.NativeNote, len(steps))
		for i, s := range steps {
			notes[i] = nativeNote(s, 4)
			notes[i].Offset = float64(i)
		}
		return score.NativeMeasure{Voices: []score.NativeVoice{{ID: "1", Notes: notes}}}
	}

	t.Run("identical sequences produce no runs", func(t *testing.T) {
		ma, mb := alignMeasures(t,
			[]score.NativeMeasure{m("C"), m("D"), m("E")},
			[]score.NativeMeasure{m("C"), m("D"), m("E")},
		)
		assert.Empty(t, nonCommonRuns(ma, mb))
	})

	t.Run("a removed measure forms a deletion-only run", func(t *testing.T) {
		ma, mb := alignMeasures(t,
			[]score.NativeMeasure{m("C"), m("D"), m("E")},
			[]score.NativeMeasure{m("C"), m("E")},
		)
		runs := nonCommonRuns(ma, mb)
		require.Len(t, runs, 1)
		assert.Len(t, runs[0].original, 1)
		assert.Empty(t, runs[0].compareTo)
		assert.Same(t, ma[1], runs[0].original[0])
	})

	t.Run("surrounding differences never touch the common run", func(t *testing.T) {
		ma, mb := alignMeasures(t,
			[]score.NativeMeasure{m("A"), m("C"), m("D"), m("E"), m("F")},
			[]score.NativeMeasure{m("B"), m("C"), m("D"), m("E"), m("G")},
		)
		runs := nonCommonRuns(ma, mb)
		require.Len(t, runs, 2)
		for _, r := range runs {
			assert.Len(t, r.original, 1)
			assert.Len(t, r.compareTo, 1)
		}
	})

	t.Run("both empty", func(t *testing.T) {
		assert.Empty(t, nonCommonRuns(nil, nil))
	})

	t.Run("one side empty", func(t *testing.T) {
		ma, mb := alignMeasures(t,
			[]score.NativeMeasure{m("C"), m("D")},
			nil,
		)
		runs := nonCommonRuns(ma, mb)
		require.Len(t, runs, 1)
		assert.Len(t, runs[0].original, 2)
		assert.Empty(t, runs[0].compareTo)
	})
}

func TestCommonRunShortcut(t *testing.T) {
	m := func(steps ...string) score.NativeMeasure {
		notes := make([]score.NativeNote, len(steps))
		for i, s := range steps {
			notes[i] = nativeNote(s, 4)
			notes[i].Offset = float64(i)
		}
		return score.NativeMeasure{Voices: []score.NativeVoice{{ID: "1", Notes: notes}}}
	}

	shared := []score.NativeMeasure{
		m("C", "D"), m("E", "F"), m("G", "A"), m("B", "C"), m("D", "E"),
	}
	a := append([]score.NativeMeasure{m("A", "A", "A")}, shared...)
	b := append([]score.NativeMeasure{m("G", "G")}, shared...)

	sa := buildScore(t, domain.DetailDefault, singlePart(a...))
	sb := buildScore(t, domain.DetailDefault, singlePart(b...))

	ops, cost := NewComparison().CompareScores(sa, sb)

	// Only the leading measures differ; the five shared measures cost
	// nothing no matter how different the surroundings are.
	for _, op := range ops {
		for _, shared := range sa.Parts[0].Measures[1:] {
			assert.NotSame(t, shared, op.Original)
		}
	}
	assert.LessOrEqual(t, cost, sa.Parts[0].Measures[0].NotationSize()+sb.Parts[0].Measures[0].NotationSize())
	assert.Positive(t, cost)
}
