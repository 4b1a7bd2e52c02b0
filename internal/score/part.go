package score

import (
	"fmt"
	"strings"
)

// Part is the ordered measure sequence of one instrument/staff.
type Part struct {
	SourceID string
	// Index is the position within the score; parts are paired
	// positionally across scores.
	Index    int
	Measures []*Measure

	sig  string
	size int
}

func newPart(sourceID string, index int, measures []*Measure) *Part {
	p := &Part{SourceID: sourceID, Index: index, Measures: measures}
	var sb strings.Builder
	for _, m := range measures {
		sb.WriteString(m.Signature())
		sb.WriteByte('\n')
		p.size += m.NotationSize()
	}
	p.sig = sb.String()
	return p
}

// Signature returns the content signature of the part.
func (p *Part) Signature() string { return p.sig }

// NotationSize is the sum over the part's measures.
func (p *Part) NotationSize() int { return p.size }

func (p *Part) String() string {
	return fmt.Sprintf("part %d", p.Index+1)
}
