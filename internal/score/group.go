package score

import (
	"fmt"
	"strconv"
	"strings"
)

// StaffGroup is a bracketed/braced grouping of parts. PartIndices is sorted
// ascending.
type StaffGroup struct {
	Name        string
	Abbrev      string
	Symbol      string
	BarTogether string
	PartIndices []int

	sig string
}

func newStaffGroup(g StaffGroup) *StaffGroup {
	var sb strings.Builder
	sb.WriteString("grp")
	sb.WriteString(g.Symbol)
	sb.WriteByte('|')
	sb.WriteString(g.BarTogether)
	sb.WriteByte('|')
	sb.WriteString(g.Name)
	sb.WriteByte('|')
	sb.WriteString(g.Abbrev)
	sb.WriteByte('|')
	for i, idx := range g.PartIndices {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(idx))
	}
	g.sig = sb.String()
	return &g
}

// FirstPart returns the lowest member part index.
func (g *StaffGroup) FirstPart() int {
	if len(g.PartIndices) == 0 {
		return -1
	}
	return g.PartIndices[0]
}

// LastPart returns the highest member part index.
func (g *StaffGroup) LastPart() int {
	if len(g.PartIndices) == 0 {
		return -1
	}
	return g.PartIndices[len(g.PartIndices)-1]
}

// Signature returns the content signature of the group.
func (g *StaffGroup) Signature() string { return g.sig }

// NotationSize counts the group symbol plus its printed name and
// abbreviation.
func (g *StaffGroup) NotationSize() int {
	size := 1
	if g.Name != "" {
		size++
	}
	if g.Abbrev != "" {
		size++
	}
	return size
}

func (g *StaffGroup) String() string {
	if g.Name != "" {
		return fmt.Sprintf("staff group %q", g.Name)
	}
	return fmt.Sprintf("staff group (parts %d-%d)", g.FirstPart()+1, g.LastPart()+1)
}
