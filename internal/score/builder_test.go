package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/scorediff/domain"
)

func quarter(id, step string, octave int) NativeNote {
	return NativeNote{
		ID:       id,
		Pitches:  []NativePitch{{Step: step, Octave: octave}},
		TypeNum:  4,
		Duration: 1,
	}
}

func oneMeasureScore(notes ...NativeNote) *NativeScore {
	return &NativeScore{
		Parts: []NativePart{{
			ID: "P1",
			Measures: []NativeMeasure{{
				Number: "1",
				Voices: []NativeVoice{{ID: "1", Notes: notes}},
			}},
		}},
	}
}

func TestBuilderNotes(t *testing.T) {
	t.Run("flattened mode expands chords into single-pitch events", func(t *testing.T) {
		chord := NativeNote{
			ID: "n1",
			Pitches: []NativePitch{
				{Step: "C", Octave: 4},
				{Step: "E", Octave: 4},
				{Step: "G", Octave: 4},
			},
			TypeNum:  4,
			Duration: 1,
		}
		s, err := NewBuilder(domain.DetailDefault).Build(oneMeasureScore(chord))
		require.NoError(t, err)

		m := s.Parts[0].Measures[0]
		assert.False(t, m.Voiced())
		require.Len(t, m.Notes, 3)
		for i, n := range m.Notes {
			assert.Len(t, n.Pitches, 1)
			assert.Equal(t, i, n.ChordIndex)
		}
		assert.Equal(t, "C4", m.Notes[0].Pitches[0].Name)
	})

	t.Run("voiced mode keeps chords whole with diatonic pitch order", func(t *testing.T) {
		chord := NativeNote{
			ID: "n1",
			Pitches: []NativePitch{
				{Step: "G", Octave: 4},
				{Step: "C", Octave: 4},
				{Step: "E", Octave: 4},
			},
			TypeNum:  4,
			Duration: 1,
		}
		s, err := NewBuilder(domain.DetailDefault | domain.DetailVoicing).Build(oneMeasureScore(chord))
		require.NoError(t, err)

		m := s.Parts[0].Measures[0]
		assert.True(t, m.Voiced())
		require.Len(t, m.Voices, 1)
		require.Len(t, m.Voices[0].Notes, 1)
		n := m.Voices[0].Notes[0]
		require.Len(t, n.Pitches, 3)
		assert.Equal(t, "C4", n.Pitches[0].Name)
		assert.Equal(t, "E4", n.Pitches[1].Name)
		assert.Equal(t, "G4", n.Pitches[2].Name)
	})

	t.Run("rests map to the rest pitch", func(t *testing.T) {
		s, err := NewBuilder(domain.DetailDefault).Build(oneMeasureScore(
			NativeNote{ID: "r1", Rest: true, TypeNum: 4, Duration: 1},
		))
		require.NoError(t, err)
		n := s.Parts[0].Measures[0].Notes[0]
		assert.True(t, n.IsRest())
	})

	t.Run("rest with pitches is a structural violation", func(t *testing.T) {
		_, err := NewBuilder(domain.DetailDefault).Build(oneMeasureScore(
			NativeNote{ID: "bad", Rest: true, TypeNum: 4,
				Pitches: []NativePitch{{Step: "C", Octave: 4}}},
		))
		require.Error(t, err)
		assert.True(t, domain.IsStructuralInputError(err))
	})

	t.Run("pitchless note is a structural violation", func(t *testing.T) {
		_, err := NewBuilder(domain.DetailDefault).Build(oneMeasureScore(
			NativeNote{ID: "bad", TypeNum: 4},
		))
		require.Error(t, err)
		assert.True(t, domain.IsStructuralInputError(err))
	})

	t.Run("bad beam token is a structural violation", func(t *testing.T) {
		bad := quarter("n1", "C", 4)
		bad.TypeNum = 8
		bad.Beams = []string{"hook"}
		_, err := NewBuilder(domain.DetailDefault).Build(oneMeasureScore(bad))
		require.Error(t, err)
		assert.True(t, domain.IsStructuralInputError(err))
	})
}

func TestBuilderDetailGating(t *testing.T) {
	tied := NativeNote{
		ID:       "n1",
		Pitches:  []NativePitch{{Step: "C", Octave: 4, Tied: true}},
		TypeNum:  4,
		Duration: 1,
	}

	withTies, err := NewBuilder(domain.DetailDefault).Build(oneMeasureScore(tied))
	require.NoError(t, err)
	withoutTies, err := NewBuilder(domain.DetailNotesAndRests).Build(oneMeasureScore(tied))
	require.NoError(t, err)

	assert.True(t, withTies.Parts[0].Measures[0].Notes[0].Pitches[0].Tied)
	assert.False(t, withoutTies.Parts[0].Measures[0].Notes[0].Pitches[0].Tied)

	t.Run("articulations dropped below decorated level", func(t *testing.T) {
		n := quarter("n1", "C", 4)
		n.Articulations = []string{"staccato"}
		s, err := NewBuilder(domain.DetailNotesAndRests).Build(oneMeasureScore(n))
		require.NoError(t, err)
		assert.Empty(t, s.Parts[0].Measures[0].Notes[0].Articulations)
	})

	t.Run("style ignored unless requested", func(t *testing.T) {
		n := quarter("n1", "C", 4)
		n.StemDirection = "up"
		plain, err := NewBuilder(domain.DetailDefault).Build(oneMeasureScore(n))
		require.NoError(t, err)
		styled, err := NewBuilder(domain.DetailDefault | domain.DetailStyle).Build(oneMeasureScore(n))
		require.NoError(t, err)
		assert.Empty(t, plain.Parts[0].Measures[0].Notes[0].StemDirection)
		assert.Equal(t, "up", styled.Parts[0].Measures[0].Notes[0].StemDirection)
	})
}

func TestBuilderGaps(t *testing.T) {
	s, err := NewBuilder(domain.DetailDefault).Build(oneMeasureScore(
		NativeNote{ID: "n1", Pitches: []NativePitch{{Step: "C", Octave: 4}}, TypeNum: 4, Offset: 0, Duration: 1},
		NativeNote{ID: "n2", Pitches: []NativePitch{{Step: "D", Octave: 4}}, TypeNum: 4, Offset: 2, Duration: 1},
		NativeNote{ID: "n3", Pitches: []NativePitch{{Step: "E", Octave: 4}}, TypeNum: 4, Offset: 3.00001, Duration: 1},
	))
	require.NoError(t, err)
	notes := s.Parts[0].Measures[0].Notes
	assert.Equal(t, 0.0, notes[0].Gap)
	assert.Equal(t, 1.0, notes[1].Gap)
	assert.Equal(t, 0.0, notes[2].Gap, "sub-tolerance drift is not a gap")
}

func TestBuilderExtras(t *testing.T) {
	t.Run("sorted by offset with adjacent identical clefs collapsed", func(t *testing.T) {
		native := oneMeasureScore(quarter("n1", "C", 4))
		native.Parts[0].Measures[0].Extras = []NativeExtra{
			{ID: "e2", Kind: KindClef, Symbolic: "G2", Offset: 2, Duration: NoDuration},
			{ID: "e1", Kind: KindClef, Symbolic: "G2", Offset: 0, Duration: NoDuration},
			{ID: "e3", Kind: KindDynamic, Symbolic: "p", Offset: 1, Duration: NoDuration},
		}
		s, err := NewBuilder(domain.DetailDefault).Build(native)
		require.NoError(t, err)
		extras := s.Parts[0].Measures[0].Extras
		require.Len(t, extras, 2)
		assert.Equal(t, KindClef, extras[0].Kind)
		assert.Equal(t, KindDynamic, extras[1].Kind)
	})

	t.Run("changed clef survives", func(t *testing.T) {
		native := oneMeasureScore(quarter("n1", "C", 4))
		native.Parts[0].Measures[0].Extras = []NativeExtra{
			{ID: "e1", Kind: KindClef, Symbolic: "G2", Offset: 0, Duration: NoDuration},
			{ID: "e2", Kind: KindClef, Symbolic: "F4", Offset: 2, Duration: NoDuration},
		}
		s, err := NewBuilder(domain.DetailDefault).Build(native)
		require.NoError(t, err)
		assert.Len(t, s.Parts[0].Measures[0].Extras, 2)
	})

	t.Run("kinds outside the detail level are dropped", func(t *testing.T) {
		native := oneMeasureScore(quarter("n1", "C", 4))
		native.Parts[0].Measures[0].Extras = []NativeExtra{
			{ID: "e1", Kind: KindClef, Symbolic: "G2", Offset: 0, Duration: NoDuration},
			{ID: "e2", Kind: KindDynamic, Symbolic: "f", Offset: 0, Duration: NoDuration},
		}
		s, err := NewBuilder(domain.DetailNotesAndRests | domain.DetailSignatures).Build(native)
		require.NoError(t, err)
		extras := s.Parts[0].Measures[0].Extras
		require.Len(t, extras, 1)
		assert.Equal(t, KindClef, extras[0].Kind)
	})
}

func TestBuilderStaffGroups(t *testing.T) {
	base := func() *NativeScore {
		return &NativeScore{
			Parts: []NativePart{{ID: "P1"}, {ID: "P2"}},
		}
	}

	t.Run("invisible all-part group is elided", func(t *testing.T) {
		native := base()
		native.Groups = []NativePartGroup{{Symbol: "none", PartIndices: []int{0, 1}}}
		s, err := NewBuilder(domain.DetailDefault).Build(native)
		require.NoError(t, err)
		assert.Empty(t, s.Groups)
	})

	t.Run("braced group survives", func(t *testing.T) {
		native := base()
		native.Groups = []NativePartGroup{{Symbol: "brace", PartIndices: []int{1, 0}}}
		s, err := NewBuilder(domain.DetailDefault).Build(native)
		require.NoError(t, err)
		require.Len(t, s.Groups, 1)
		assert.Equal(t, []int{0, 1}, s.Groups[0].PartIndices)
	})

	t.Run("staff details can be excluded", func(t *testing.T) {
		native := base()
		native.Groups = []NativePartGroup{{Symbol: "brace", PartIndices: []int{0, 1}}}
		s, err := NewBuilder(domain.DetailNotesAndRests).Build(native)
		require.NoError(t, err)
		assert.Empty(t, s.Groups)
	})
}

func TestBuilderMetadata(t *testing.T) {
	native := &NativeScore{
		Metadata: []NativeMetadataItem{
			{Key: "title", Value: "Prelude"},
			{Key: "poet", Value: "Heine"},
			{Key: "software", Value: "Finale"},
			{Key: "rawAll", Value: "..."},
			{Key: "composer", Value: ""},
		},
	}

	t.Run("included only at the metadata detail level", func(t *testing.T) {
		s, err := NewBuilder(domain.DetailDefault).Build(native)
		require.NoError(t, err)
		assert.Empty(t, s.Metadata)
	})

	t.Run("elides bookkeeping keys and normalizes poet", func(t *testing.T) {
		s, err := NewBuilder(domain.DetailDefault | domain.DetailMetadata).Build(native)
		require.NoError(t, err)
		require.Len(t, s.Metadata, 2)
		assert.Equal(t, "lyricist", s.Metadata[0].Key)
		assert.Equal(t, "Heine", s.Metadata[0].Value)
		assert.Equal(t, "title", s.Metadata[1].Key)
	})
}

func TestScoreSignatureStability(t *testing.T) {
	native := oneMeasureScore(
		quarter("a", "C", 4),
		quarter("b", "D", 4),
	)
	s1, err := NewBuilder(domain.DetailDefault).Build(native)
	require.NoError(t, err)

	renamed := oneMeasureScore(
		quarter("x", "C", 4),
		quarter("y", "D", 4),
	)
	s2, err := NewBuilder(domain.DetailDefault).Build(renamed)
	require.NoError(t, err)

	assert.Equal(t, s1.Signature(), s2.Signature(), "source ids never shape signatures")
	assert.Equal(t, s1.NotationSize(), s2.NotationSize())
	assert.Equal(t, 2, s1.NotationSize())
}
