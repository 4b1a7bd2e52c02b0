package score

import (
	"fmt"
	"strconv"
	"strings"
)

// Lyric is one lyric syllable within a measure. NoteID is a weak reference
// to the holding note and never participates in comparison.
type Lyric struct {
	NoteID string

	Text       string
	Number     int
	Identifier string
	Offset     float64
	Style      map[string]string

	sig string
}

func newLyric(l Lyric) *Lyric {
	var sb strings.Builder
	sb.WriteString(l.Text)
	sb.WriteByte('#')
	sb.WriteString(strconv.Itoa(l.Number))
	if l.Identifier != "" {
		sb.WriteByte(':')
		sb.WriteString(l.Identifier)
	}
	sb.WriteByte('@')
	sb.WriteString(formatNum(l.Offset))
	appendMapSignature(&sb, l.Style)
	l.sig = sb.String()
	return &l
}

// Signature returns the content signature of the lyric.
func (l *Lyric) Signature() string { return l.sig }

// NotationSize is one symbol per lyric syllable.
func (l *Lyric) NotationSize() int { return 1 }

func (l *Lyric) String() string {
	return fmt.Sprintf("lyric %q", l.Text)
}
