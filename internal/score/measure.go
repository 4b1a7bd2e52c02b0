package score

import (
	"fmt"
	"strings"
)

// Measure is one bar of one part. Exactly one of Voices and Notes is
// populated, selected once at build time: voiced measures keep their voice
// structure (chords as single events), flattened measures hold one
// NoteEvent per chord pitch. The measure also owns its offset-sorted
// extras and offset/verse-sorted lyrics.
type Measure struct {
	// Number is the display number; it never participates in comparison.
	Number string

	Voices []*Voice
	Notes  []*NoteEvent

	Extras []*ExtraSymbol
	Lyrics []*Lyric

	sig  string
	size int
}

func newMeasure(m Measure) *Measure {
	var sb strings.Builder
	if m.Voices != nil {
		sb.WriteByte('V')
		for i, v := range m.Voices {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(v.Signature())
			m.size += v.NotationSize()
		}
	} else {
		sb.WriteByte('N')
		for i, n := range m.Notes {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(n.Signature())
			m.size += n.NotationSize()
		}
	}
	sb.WriteByte('|')
	for _, e := range m.Extras {
		sb.WriteString(e.Signature())
		sb.WriteByte(';')
		m.size += e.NotationSize()
	}
	sb.WriteByte('|')
	for _, l := range m.Lyrics {
		sb.WriteString(l.Signature())
		sb.WriteByte(';')
		m.size += l.NotationSize()
	}
	m.sig = sb.String()
	return &m
}

// Voiced reports whether the measure keeps its voice structure.
func (m *Measure) Voiced() bool { return m.Voices != nil }

// Signature returns the content signature of the measure.
func (m *Measure) Signature() string { return m.sig }

// NotationSize is the sum over the measure's notes, extras, and lyrics.
func (m *Measure) NotationSize() int { return m.size }

func (m *Measure) String() string {
	if m.Number != "" {
		return fmt.Sprintf("measure %s", m.Number)
	}
	return "measure"
}
