package score

import (
	"fmt"
	"strings"
)

// Score is the root of the annotated tree compared by the diff engine.
type Score struct {
	Parts    []*Part
	Groups   []*StaffGroup
	Metadata []*MetadataItem

	// SyntaxErrorsFixed counts markup errors the loader repaired while
	// reading the source file. It is carried through to the final cost.
	SyntaxErrorsFixed int

	sig  string
	size int
}

func newScore(parts []*Part, groups []*StaffGroup, metadata []*MetadataItem, fixed int) *Score {
	s := &Score{Parts: parts, Groups: groups, Metadata: metadata, SyntaxErrorsFixed: fixed}
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Signature())
		sb.WriteByte('\n')
		s.size += p.NotationSize()
	}
	for _, g := range groups {
		sb.WriteString(g.Signature())
		sb.WriteByte('\n')
		s.size += g.NotationSize()
	}
	for _, m := range metadata {
		sb.WriteString(m.Signature())
		sb.WriteByte('\n')
		s.size += m.NotationSize()
	}
	s.sig = sb.String()
	return s
}

// Signature returns the content signature of the whole score.
func (s *Score) Signature() string { return s.sig }

// NotationSize is the total count of visual symbols in the score, the
// denominator of the normalized difference.
func (s *Score) NotationSize() int { return s.size }

func (s *Score) String() string {
	return fmt.Sprintf("score with %d parts", len(s.Parts))
}
