package score

import (
	"fmt"
	"strconv"
	"strings"
)

// ExtraKind identifies the family of a non-note symbol. The set is closed:
// the pairing keys and cost rules dispatch on it with plain switches.
type ExtraKind string

const (
	KindClef          ExtraKind = "clef"
	KindKeySignature  ExtraKind = "keysig"
	KindTimeSignature ExtraKind = "timesig"
	KindTempo         ExtraKind = "tempo"
	KindBarline       ExtraKind = "barline"
	KindDynamic       ExtraKind = "dynamic"
	KindDirection     ExtraKind = "direction"
	KindWedge         ExtraKind = "wedge"
	KindSlur          ExtraKind = "slur"
	KindOttava        ExtraKind = "ottava"
	KindArpeggio      ExtraKind = "arpeggio"
	KindChordSymbol   ExtraKind = "chordsym"
	KindEnding        ExtraKind = "ending"
	KindStaffInfo     ExtraKind = "staffinfo"
	KindSystemBreak   ExtraKind = "systembreak"
	KindPageBreak     ExtraKind = "pagebreak"
	KindTremolo       ExtraKind = "tremolo"
	KindRehearsalMark ExtraKind = "rehearsalmark"
	KindPedal         ExtraKind = "pedal"
)

// ExtraSymbol is any non-note/rest musical symbol placed within a measure.
// The kind is fixed for the symbol's lifetime and determines which fields
// are authoritative for pairing and diffing.
type ExtraSymbol struct {
	SourceID string

	Kind     ExtraKind
	Content  string
	Symbolic string
	Info     map[string]string
	Offset   float64
	Duration float64
	NumNotes int
	Style    map[string]string

	sig  string
	size int
}

func newExtraSymbol(e ExtraSymbol) *ExtraSymbol {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	sb.WriteByte('@')
	sb.WriteString(formatNum(e.Offset))
	if e.Content != "" {
		sb.WriteByte('"')
		sb.WriteString(e.Content)
		sb.WriteByte('"')
	}
	if e.Symbolic != "" {
		sb.WriteByte('~')
		sb.WriteString(e.Symbolic)
	}
	appendMapSignature(&sb, e.Info)
	if e.Duration != NoDuration {
		sb.WriteString("d")
		sb.WriteString(formatNum(e.Duration))
	}
	if e.NumNotes > 0 {
		sb.WriteString("n")
		sb.WriteString(strconv.Itoa(e.NumNotes))
	}
	appendMapSignature(&sb, e.Style)
	e.sig = sb.String()
	e.size = e.computeSize()
	return &e
}

// Signature returns the content signature of the symbol.
func (e *ExtraSymbol) Signature() string { return e.sig }

// NotationSize counts the symbol's visible glyphs: key signatures show one
// accidental per altered step, time signatures a numerator and a
// denominator, everything else one symbol.
func (e *ExtraSymbol) NotationSize() int { return e.size }

func (e *ExtraSymbol) computeSize() int {
	switch e.Kind {
	case KindKeySignature:
		if f, err := strconv.Atoi(e.Info["fifths"]); err == nil && f != 0 {
			if f < 0 {
				f = -f
			}
			return f
		}
		return 1
	case KindTimeSignature:
		return 2
	default:
		return 1
	}
}

func (e *ExtraSymbol) String() string {
	label := e.Content
	if label == "" {
		label = e.Symbolic
	}
	if label == "" {
		return fmt.Sprintf("%s@%s", e.Kind, formatNum(e.Offset))
	}
	return fmt.Sprintf("%s %q@%s", e.Kind, label, formatNum(e.Offset))
}
