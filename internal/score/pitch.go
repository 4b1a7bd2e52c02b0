package score

import (
	"strconv"
	"strings"
)

// NoAccidental marks a pitch with no visible accidental. The literal "None"
// is kept so signatures stay stable across encoders.
const NoAccidental = "None"

// Pitch is the comparison triple of one rendered pitch: name (step+octave,
// or "R" for a rest), visible accidental, and whether the note is tied to
// the previous one.
type Pitch struct {
	Name       string
	Accidental string
	Tied       bool
}

// RestPitch is the pitch triple every rest carries.
func RestPitch() Pitch {
	return Pitch{Name: "R", Accidental: NoAccidental}
}

// IsRest reports whether the pitch stands for a rest.
func (p Pitch) IsRest() bool {
	return strings.HasPrefix(p.Name, "R")
}

// NotationSize counts the visible symbols of the pitch: the head, plus the
// accidental and the tie when present.
func (p Pitch) NotationSize() int {
	size := 1
	if p.Accidental != NoAccidental {
		size++
	}
	if p.Tied {
		size++
	}
	return size
}

// appendSignature writes the pitch's signature fragment.
func (p Pitch) appendSignature(sb *strings.Builder) {
	sb.WriteString(p.Name)
	if p.Accidental != NoAccidental {
		sb.WriteString(p.Accidental)
	}
	if p.Tied {
		sb.WriteByte('T')
	}
}

// formatNum renders offsets, durations, and duration-type numbers without
// trailing zeros so signatures are stable.
func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
