package score

import (
	"fmt"
	"sort"
	"strings"
)

// NoteEvent is one rendered note, rest, or (in flattened mode) one pitch of
// a chord, with every compared feature precomputed. It is immutable after
// construction and compared structurally through its signature.
type NoteEvent struct {
	// SourceID is a weak back-reference to the native object for
	// reporting; it never participates in comparison.
	SourceID string

	// Pitches is never empty; rests carry the single rest pitch.
	Pitches []Pitch

	// NoteHead is the duration type number quantized to at most 4: all
	// durations of a quarter note or shorter share the filled head, the
	// extra flags/beams carry the rest of the duration.
	NoteHead float64
	Dots     int

	GraceType  string
	GraceSlash bool

	Beams       []string
	TupletTypes []string
	TupletInfo  []string

	Articulations []string
	Expressions   []string

	// Gap is the unrendered quarter-note distance between the previous
	// event and this one (horizontal spacing marker).
	Gap float64

	NoteShape           string
	NoteheadFill        string
	NoteheadParenthesis bool
	StemDirection       string
	Style               map[string]string

	// ChordIndex is the position within the originating chord when chords
	// are expanded; back-reference only, never compared.
	ChordIndex int

	sig  string
	size int
}

const maxNoteHead = 4

var beamCodes = map[string]string{
	"start":    "sr",
	"continue": "co",
	"stop":     "sp",
	"partial":  "pa",
}

var tupletCodes = map[string]string{
	"start":    "sr",
	"continue": "co",
	"stop":     "sp",
}

// NewNoteEvent finalizes a note event: sorts the decoration lists, caps the
// notehead class, and caches signature and notation size. It rejects beam
// and tuplet tokens outside the closed token sets.
func NewNoteEvent(n NoteEvent) (*NoteEvent, error) {
	if len(n.Pitches) == 0 {
		return nil, fmt.Errorf("note %q has no pitches", n.SourceID)
	}
	if n.NoteHead >= maxNoteHead {
		n.NoteHead = maxNoteHead
	}
	for _, b := range n.Beams {
		if _, ok := beamCodes[b]; !ok {
			return nil, fmt.Errorf("invalid beaming token %q on note %q", b, n.SourceID)
		}
	}
	for _, t := range n.TupletTypes {
		if _, ok := tupletCodes[t]; !ok {
			return nil, fmt.Errorf("invalid tuplet token %q on note %q", t, n.SourceID)
		}
	}
	sort.Strings(n.Articulations)
	sort.Strings(n.Expressions)

	n.sig = n.buildSignature()
	n.size = n.computeSize()
	return &n, nil
}

// Signature returns the content signature; it ignores the source id.
func (n *NoteEvent) Signature() string { return n.sig }

// NotationSize counts the visible symbols of the event: the pitch heads
// with their accidentals and ties, one dot per pitch per dot, and one
// symbol per beam, tuplet bracket, articulation, and expression.
func (n *NoteEvent) NotationSize() int { return n.size }

func (n *NoteEvent) computeSize() int {
	size := 0
	for _, p := range n.Pitches {
		size += p.NotationSize()
	}
	size += n.Dots * len(n.Pitches)
	size += len(n.Beams)
	size += len(n.TupletTypes)
	size += len(n.Articulations)
	size += len(n.Expressions)
	return size
}

// IsRest reports whether the event renders as a rest.
func (n *NoteEvent) IsRest() bool {
	return n.Pitches[0].IsRest()
}

func (n *NoteEvent) buildSignature() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, p := range n.Pitches {
		if i > 0 {
			sb.WriteByte(',')
		}
		p.appendSignature(&sb)
	}
	sb.WriteByte(']')
	sb.WriteString(formatNum(n.NoteHead))
	for i := 0; i < n.Dots; i++ {
		sb.WriteByte('*')
	}
	if n.GraceType != "" {
		sb.WriteByte('G')
		sb.WriteString(n.GraceType)
		if n.GraceSlash {
			sb.WriteByte('/')
		}
	}
	if len(n.Beams) > 0 {
		sb.WriteByte('B')
		for _, b := range n.Beams {
			sb.WriteString(beamCodes[b])
		}
	}
	if len(n.TupletTypes) > 0 {
		sb.WriteByte('T')
		for _, t := range n.TupletTypes {
			sb.WriteString(tupletCodes[t])
		}
	}
	if len(n.TupletInfo) > 0 {
		sb.WriteString("TI")
		sb.WriteString(strings.Join(n.TupletInfo, ","))
	}
	for _, a := range n.Articulations {
		sb.WriteString(a)
	}
	for _, e := range n.Expressions {
		sb.WriteString(e)
	}
	if n.Gap != 0 {
		sb.WriteString("Sp")
		sb.WriteString(formatNum(n.Gap))
	}
	appendStyleSignature(&sb, n.NoteShape, n.NoteheadFill, n.NoteheadParenthesis, n.StemDirection, n.Style)
	return sb.String()
}

// appendStyleSignature writes the style fields shared by notes; defaults
// contribute nothing so style-free signatures match pre-style ones.
func appendStyleSignature(sb *strings.Builder, shape, fill string, paren bool, stem string, style map[string]string) {
	if shape != "" && shape != "normal" {
		sb.WriteString("sh")
		sb.WriteString(shape)
	}
	if fill != "" && fill != "default" {
		sb.WriteString("fl")
		sb.WriteString(fill)
	}
	if paren {
		sb.WriteString("()")
	}
	if stem != "" {
		sb.WriteString("st")
		sb.WriteString(stem)
	}
	appendMapSignature(sb, style)
}

func appendMapSignature(sb *strings.Builder, m map[string]string) {
	if len(m) == 0 {
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(m[k])
	}
	sb.WriteByte('}')
}

func (n *NoteEvent) String() string {
	var sb strings.Builder
	if n.IsRest() {
		sb.WriteString("rest")
	} else {
		sb.WriteString("note ")
		for i, p := range n.Pitches {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(p.Name)
		}
	}
	return sb.String()
}
