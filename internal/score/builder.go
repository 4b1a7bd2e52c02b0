package score

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ludo-technologies/scorediff/domain"
)

// floatTol absorbs rounding noise in offsets and durations coming from
// fractional tuplet arithmetic in source files.
const floatTol = 1e-4

// Builder constructs the annotated comparison tree from a native score at
// one detail level. Both trees of one comparison must be built at the same
// level.
type Builder struct {
	detail domain.DetailLevel
}

// NewBuilder returns a builder for the given detail level.
func NewBuilder(detail domain.DetailLevel) *Builder {
	return &Builder{detail: detail}
}

// Detail returns the builder's detail level.
func (b *Builder) Detail() domain.DetailLevel { return b.detail }

// Build constructs the immutable annotated tree. Structural contract
// violations in the native score (bad beam or tuplet tokens, rests carrying
// pitches, pitchless notes) reject the whole build.
func (b *Builder) Build(native *NativeScore) (*Score, error) {
	parts := make([]*Part, 0, len(native.Parts))
	for i, np := range native.Parts {
		p, err := b.buildPart(np, i)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}

	var groups []*StaffGroup
	if b.detail.IncludesStaffDetails() {
		groups = buildStaffGroups(native.Groups, len(native.Parts))
	}

	var metadata []*MetadataItem
	if b.detail.IncludesMetadata() {
		metadata = buildMetadata(native.Metadata)
	}

	return newScore(parts, groups, metadata, native.SyntaxErrorsFixed), nil
}

func (b *Builder) buildPart(np NativePart, index int) (*Part, error) {
	measures := make([]*Measure, 0, len(np.Measures))
	for _, nm := range np.Measures {
		m, err := b.buildMeasure(nm)
		if err != nil {
			return nil, domain.NewStructuralInputError(
				fmt.Sprintf("part %s, measure %s: %v", np.ID, nm.Number, err))
		}
		measures = append(measures, m)
	}
	return newPart(np.ID, index, measures), nil
}

func (b *Builder) buildMeasure(nm NativeMeasure) (*Measure, error) {
	m := Measure{Number: nm.Number}

	if b.detail.IncludesNotesAndRests() {
		if b.detail.IncludesVoicing() {
			for _, nv := range nm.Voices {
				v, err := b.buildVoice(nv)
				if err != nil {
					return nil, err
				}
				m.Voices = append(m.Voices, v)
			}
			if m.Voices == nil {
				m.Voices = []*Voice{}
			}
		} else {
			notes, err := b.buildFlattenedNotes(nm.Voices)
			if err != nil {
				return nil, err
			}
			m.Notes = notes
		}
	} else {
		m.Notes = []*NoteEvent{}
	}

	extras, err := b.buildExtras(nm.Extras)
	if err != nil {
		return nil, err
	}
	m.Extras = extras

	if b.detail.IncludesLyrics() {
		m.Lyrics = b.buildLyrics(nm.Lyrics)
	}

	return newMeasure(m), nil
}

// buildVoice keeps chords as single multi-pitch events, with the pitch
// triples in diatonic order.
func (b *Builder) buildVoice(nv NativeVoice) (*Voice, error) {
	beams, tupTypes, tupInfos, err := b.voiceDecorations(nv.Notes)
	if err != nil {
		return nil, err
	}
	gaps := eventGaps(nv.Notes)

	notes := make([]*NoteEvent, 0, len(nv.Notes))
	for i, nn := range nv.Notes {
		pitches, err := b.notePitches(nn)
		if err != nil {
			return nil, err
		}
		sortPitchesDiatonic(nn.Pitches, pitches)
		ev, err := NewNoteEvent(b.baseEvent(nn, pitches, beams[i], tupTypes[i], tupInfos[i], gaps[i]))
		if err != nil {
			return nil, err
		}
		notes = append(notes, ev)
	}
	return newVoice(nv.ID, notes), nil
}

// buildFlattenedNotes merges all voices into one offset-ordered event list,
// expanding each chord into one single-pitch event per member. The first
// member carries the grouping decorations and the gap; the other members
// carry only what renders per notehead.
func (b *Builder) buildFlattenedNotes(voices []NativeVoice) ([]*NoteEvent, error) {
	type placed struct {
		ev     *NoteEvent
		offset float64
	}
	var all []placed

	for _, nv := range voices {
		beams, tupTypes, tupInfos, err := b.voiceDecorations(nv.Notes)
		if err != nil {
			return nil, err
		}
		gaps := eventGaps(nv.Notes)

		for i, nn := range nv.Notes {
			pitches, err := b.notePitches(nn)
			if err != nil {
				return nil, err
			}
			for j, p := range pitches {
				base := b.baseEvent(nn, []Pitch{p}, nil, nil, nil, 0)
				base.ChordIndex = j
				if j == 0 {
					base.Beams = beams[i]
					base.TupletTypes = tupTypes[i]
					base.TupletInfo = tupInfos[i]
					base.Gap = gaps[i]
				} else {
					base.Articulations = nil
					base.Expressions = nil
				}
				ev, err := NewNoteEvent(base)
				if err != nil {
					return nil, err
				}
				all = append(all, placed{ev: ev, offset: nn.Offset})
			}
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].offset < all[j].offset })
	notes := make([]*NoteEvent, len(all))
	for i, p := range all {
		notes[i] = p.ev
	}
	return notes, nil
}

// baseEvent maps one native note onto a NoteEvent, applying the detail
// level's feature gating. Beam and tuplet lists are injected by the caller
// because they are computed per voice.
func (b *Builder) baseEvent(nn NativeNote, pitches []Pitch, beams, tupTypes, tupInfo []string, gap float64) NoteEvent {
	ev := NoteEvent{
		SourceID:    nn.ID,
		Pitches:     pitches,
		NoteHead:    nn.TypeNum,
		Dots:        nn.Dots,
		GraceType:   nn.GraceType,
		GraceSlash:  nn.GraceSlash,
		Beams:       beams,
		TupletTypes: tupTypes,
		TupletInfo:  tupInfo,
		Gap:         gap,
	}
	if b.detail.IncludesArticulations() {
		ev.Articulations = append([]string(nil), nn.Articulations...)
	}
	if b.detail.IncludesOrnaments() {
		ev.Expressions = append([]string(nil), nn.Expressions...)
	}
	if b.detail.IncludesStyle() {
		ev.NoteShape = nn.NoteShape
		ev.NoteheadFill = nn.NoteheadFill
		ev.NoteheadParenthesis = nn.NoteheadParenthesis
		ev.StemDirection = nn.StemDirection
		ev.Style = nn.Style
	}
	return ev
}

// voiceDecorations computes the per-note beam and tuplet lists of one
// voice. With beams excluded they stay empty and short notes compare by
// their duration-type number alone.
func (b *Builder) voiceDecorations(notes []NativeNote) (beams, tupTypes, tupInfos [][]string, err error) {
	if b.detail.IncludesBeams() {
		beams, err = enhancedBeams(notes)
		if err != nil {
			return nil, nil, nil, err
		}
	} else {
		beams = make([][]string, len(notes))
	}
	tupTypes, err = correctedTuplets(notes)
	if err != nil {
		return nil, nil, nil, err
	}
	tupInfos = tupletInfos(notes)
	return beams, tupTypes, tupInfos, nil
}

// notePitches maps a native note onto its comparison pitch triples. Rests
// get the single rest pitch; unpitched notes keep their display position
// without an accidental.
func (b *Builder) notePitches(nn NativeNote) ([]Pitch, error) {
	if nn.Rest {
		if len(nn.Pitches) > 0 {
			return nil, fmt.Errorf("rest %q carries pitches", nn.ID)
		}
		return []Pitch{RestPitch()}, nil
	}
	if len(nn.Pitches) == 0 {
		return nil, fmt.Errorf("note %q has no pitches", nn.ID)
	}
	pitches := make([]Pitch, 0, len(nn.Pitches))
	for _, npch := range nn.Pitches {
		p := Pitch{
			Name:       npch.Step + strconv.Itoa(npch.Octave),
			Accidental: NoAccidental,
		}
		if !nn.Unpitched && npch.Visible && npch.Accidental != "" {
			p.Accidental = npch.Accidental
		}
		if b.detail.IncludesTies() && npch.Tied {
			p.Tied = true
		}
		pitches = append(pitches, p)
	}
	return pitches, nil
}

var diatonicSteps = map[string]int{"C": 0, "D": 1, "E": 2, "F": 3, "G": 4, "A": 5, "B": 6}

// sortPitchesDiatonic orders chord pitch triples bottom to top so that the
// same chord encoded in a different member order still compares equal. The
// native pitches supply octave and step; both slices are index-aligned.
func sortPitchesDiatonic(native []NativePitch, pitches []Pitch) {
	if len(native) != len(pitches) {
		return
	}
	idx := make([]int, len(pitches))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, c int) bool {
		na, nc := native[idx[a]], native[idx[c]]
		if na.Octave != nc.Octave {
			return na.Octave < nc.Octave
		}
		return diatonicSteps[na.Step] < diatonicSteps[nc.Step]
	})
	sorted := make([]Pitch, len(pitches))
	for i, j := range idx {
		sorted[i] = pitches[j]
	}
	copy(pitches, sorted)
}

// eventGaps computes the unrendered quarter-note distance before each note
// of a voice. The first note's gap is its offset from the measure start.
// Sub-tolerance and negative gaps collapse to zero.
func eventGaps(notes []NativeNote) []float64 {
	gaps := make([]float64, len(notes))
	expected := 0.0
	for i, n := range notes {
		gap := n.Offset - expected
		if gap < floatTol {
			gap = 0
		}
		gaps[i] = gap
		expected = n.Offset
		if n.Duration > 0 {
			expected += n.Duration
		}
	}
	return gaps
}

// buildExtras filters the measure's symbols by the detail level, sorts them
// by offset, and collapses adjacent identical clefs.
func (b *Builder) buildExtras(extras []NativeExtra) ([]*ExtraSymbol, error) {
	kept := make([]NativeExtra, 0, len(extras))
	for _, e := range extras {
		if b.includesKind(e.Kind) {
			kept = append(kept, e)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Offset < kept[j].Offset })

	out := make([]*ExtraSymbol, 0, len(kept))
	var lastClef *NativeExtra
	for i := range kept {
		e := kept[i]
		if e.Kind == KindClef {
			if lastClef != nil && sameClef(*lastClef, e) {
				continue
			}
			lastClef = &kept[i]
		}
		sym := ExtraSymbol{
			SourceID: e.ID,
			Kind:     e.Kind,
			Content:  e.Content,
			Symbolic: e.Symbolic,
			Info:     e.Info,
			Offset:   e.Offset,
			Duration: e.Duration,
			NumNotes: e.NumNotes,
		}
		if b.detail.IncludesStyle() {
			sym.Style = e.Style
		}
		out = append(out, newExtraSymbol(sym))
	}
	return out, nil
}

func sameClef(a, b NativeExtra) bool {
	if a.Symbolic != b.Symbolic || a.Content != b.Content || len(a.Info) != len(b.Info) {
		return false
	}
	for k, v := range a.Info {
		if b.Info[k] != v {
			return false
		}
	}
	return true
}

func (b *Builder) includesKind(k ExtraKind) bool {
	d := b.detail
	switch k {
	case KindClef, KindKeySignature, KindTimeSignature:
		return d.IncludesSignatures()
	case KindTempo, KindDynamic, KindDirection, KindWedge, KindEnding,
		KindRehearsalMark, KindPedal:
		return d.IncludesDirections()
	case KindBarline:
		return d.IncludesBarlines()
	case KindSlur:
		return d.IncludesSlurs()
	case KindOttava:
		return d.IncludesOttavas()
	case KindArpeggio:
		return d.IncludesArpeggios()
	case KindChordSymbol:
		return d.IncludesChordSymbols()
	case KindTremolo:
		return d.IncludesTremolos()
	case KindStaffInfo, KindSystemBreak, KindPageBreak:
		return d.IncludesStaffDetails()
	default:
		return false
	}
}

func (b *Builder) buildLyrics(lyrics []NativeLyric) []*Lyric {
	sorted := append([]NativeLyric(nil), lyrics...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Offset != sorted[j].Offset {
			return sorted[i].Offset < sorted[j].Offset
		}
		return sorted[i].Number < sorted[j].Number
	})
	out := make([]*Lyric, 0, len(sorted))
	for _, nl := range sorted {
		l := Lyric{
			NoteID:     nl.NoteID,
			Text:       nl.Text,
			Number:     nl.Number,
			Identifier: nl.Identifier,
			Offset:     nl.Offset,
		}
		if b.detail.IncludesStyle() {
			l.Style = nl.Style
		}
		out = append(out, newLyric(l))
	}
	return out
}

// buildStaffGroups drops groups that carry no rendered information: a
// group spanning every part with no visible symbol and no bar-together
// setting draws nothing.
func buildStaffGroups(groups []NativePartGroup, partCount int) []*StaffGroup {
	out := make([]*StaffGroup, 0, len(groups))
	for _, ng := range groups {
		indices := append([]int(nil), ng.PartIndices...)
		sort.Ints(indices)
		invisible := ng.Symbol == "" || ng.Symbol == "none"
		if invisible && ng.BarTogether == "" && spansAll(indices, partCount) {
			continue
		}
		out = append(out, newStaffGroup(StaffGroup{
			Name:        ng.Name,
			Abbrev:      ng.Abbrev,
			Symbol:      ng.Symbol,
			BarTogether: ng.BarTogether,
			PartIndices: indices,
		}))
	}
	return out
}

func spansAll(indices []int, partCount int) bool {
	if len(indices) != partCount {
		return false
	}
	for i, idx := range indices {
		if idx != i {
			return false
		}
	}
	return true
}

// buildMetadata elides bookkeeping keys, normalizes contributor roles, and
// sorts the remaining items for a stable comparison order.
func buildMetadata(items []NativeMetadataItem) []*MetadataItem {
	out := make([]*MetadataItem, 0, len(items))
	for _, it := range items {
		if elidedMetadataKeys[it.Key] || strings.HasPrefix(it.Key, "raw") {
			continue
		}
		if it.Value == "" {
			continue
		}
		out = append(out, &MetadataItem{Key: normalizeMetadataKey(it.Key), Value: it.Value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Value < out[j].Value
	})
	return out
}
