package score

import (
	"fmt"
	"math"
	"strings"
)

// Voice is the ordered note sequence of one notational voice within a
// measure. The enhanced beam lists and corrected tuplet lists are computed
// once at construction; the note count is fixed afterwards.
type Voice struct {
	SourceID string
	Notes    []*NoteEvent

	sig  string
	size int
}

func newVoice(sourceID string, notes []*NoteEvent) *Voice {
	v := &Voice{SourceID: sourceID, Notes: notes}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, n := range notes {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(n.Signature())
	}
	sb.WriteByte(']')
	v.sig = sb.String()
	for _, n := range notes {
		v.size += n.NotationSize()
	}
	return v
}

// Signature returns the content signature of the voice.
func (v *Voice) Signature() string { return v.sig }

// NotationSize is the sum of the notation sizes of the voice's notes.
func (v *Voice) NotationSize() int { return v.size }

func (v *Voice) String() string {
	return fmt.Sprintf("voice (%d notes)", len(v.Notes))
}

// enhancedBeams computes the per-note beam level lists for a voice,
// accounting for notes shorter than a quarter that are not grouped: they
// get one "partial" level per flag, except rests continuing an adjacent
// beamed rest, which inherit "continue". A second pass downgrades orphan
// "start"/"stop"/"continue" markers to "partial" (or promotes a trailing
// "continue" to "start") so inconsistently encoded beams still align.
func enhancedBeams(notes []NativeNote) ([][]string, error) {
	beams := make([][]string, len(notes))
	for i, n := range notes {
		for _, b := range n.Beams {
			if _, ok := beamCodes[b]; !ok {
				return nil, fmt.Errorf("invalid beaming token %q on note %q", b, n.ID)
			}
		}
		beams[i] = append([]string(nil), n.Beams...)
	}

	for i, n := range notes {
		if len(beams[i]) > 0 || n.TypeNum <= maxNoteHead {
			continue
		}
		levels := int(math.Round(math.Log2(n.TypeNum / maxNoteHead)))
		for lvl := 0; lvl < levels; lvl++ {
			next := safeGetTokens(beams, i+1)
			tok := safeGetToken(next, lvl)
			if n.Rest && (tok == "continue" || tok == "stop") {
				beams[i] = append(beams[i], "continue")
			} else {
				beams[i] = append(beams[i], "partial")
			}
		}
	}

	maxDepth := 0
	for _, b := range beams {
		if len(b) > maxDepth {
			maxDepth = len(b)
		}
	}
	fixed := make([][]string, len(beams))
	for i := range beams {
		fixed[i] = append([]string(nil), beams[i]...)
	}
	for depth := 0; depth < maxDepth; depth++ {
		for i := range beams {
			tok := safeGetToken(beams[i], depth)
			prev := safeGetToken(safeGetTokens(beams, i-1), depth)
			next := safeGetToken(safeGetTokens(beams, i+1), depth)
			switch {
			case tok == "start" && next == "":
				fixed[i][depth] = "partial"
			case tok == "stop" && prev == "":
				fixed[i][depth] = "partial"
			case tok == "continue" && prev == "" && next == "":
				fixed[i][depth] = "partial"
			case tok == "continue" && prev == "" && next != "":
				fixed[i][depth] = "start"
			}
		}
	}
	return fixed, nil
}

// correctedTuplets returns per-note tuplet type tokens with the implicit
// members made explicit: an unmarked member opens the bracket if no
// "start" is pending, otherwise it continues it.
func correctedTuplets(notes []NativeNote) ([][]string, error) {
	types := make([][]string, len(notes))
	maxDepth := 0
	for i, n := range notes {
		types[i] = make([]string, len(n.Tuplets))
		for j, t := range n.Tuplets {
			types[i][j] = t.Type
		}
		if len(n.Tuplets) > maxDepth {
			maxDepth = len(n.Tuplets)
		}
	}
	for depth := 0; depth < maxDepth; depth++ {
		open := false
		for i, n := range notes {
			if len(types[i]) <= depth {
				continue
			}
			switch types[i][depth] {
			case "start":
				open = true
			case "":
				if !open {
					types[i][depth] = "start"
					open = true
				} else {
					types[i][depth] = "continue"
				}
			case "stop":
				open = false
			default:
				return nil, fmt.Errorf("invalid tuplet type %q on note %q", types[i][depth], n.ID)
			}
		}
	}
	return types, nil
}

// tupletInfos renders the bracket label of each tuplet level: "3" or "3:2"
// when the normal count is shown, with a trailing "B" for an explicit
// bracket.
func tupletInfos(notes []NativeNote) [][]string {
	infos := make([][]string, len(notes))
	for i, n := range notes {
		for _, t := range n.Tuplets {
			info := fmt.Sprintf("%d", t.Actual)
			if t.ShowNormal {
				info = fmt.Sprintf("%d:%d", t.Actual, t.Normal)
			}
			if t.Bracket {
				info += "B"
			}
			infos[i] = append(infos[i], info)
		}
	}
	return infos
}

func safeGetTokens(lists [][]string, i int) []string {
	if i < 0 || i >= len(lists) {
		return nil
	}
	return lists[i]
}

func safeGetToken(list []string, i int) string {
	if i < 0 || i >= len(list) {
		return ""
	}
	return list[i]
}
