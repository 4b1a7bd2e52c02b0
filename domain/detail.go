package domain

// DetailLevel is a bitmask selecting which notation categories participate
// in a comparison. Both scores in one comparison must be built at the same
// detail level.
type DetailLevel int

const (
	// DetailNotesAndRests includes notes and rests without any decorations
	DetailNotesAndRests DetailLevel = 1 << iota
	// DetailBeams includes beam groupings (otherwise beams behave like flags)
	DetailBeams
	// DetailTremolos includes fingered and bowed tremolos
	DetailTremolos
	// DetailOrnaments includes trills, turns, mordents, fermatas, etc.
	DetailOrnaments
	// DetailArticulations includes staccato, tenuto, accents, etc.
	DetailArticulations
	// DetailTies includes ties between notes
	DetailTies
	// DetailSlurs includes slurs
	DetailSlurs
	// DetailSignatures includes clefs, key signatures, and time signatures
	DetailSignatures
	// DetailDirections includes tempo marks, dynamics, endings, and other directions
	DetailDirections
	// DetailBarlines includes barlines and repeat barlines
	DetailBarlines
	// DetailStaffDetails includes staff layout and staff groupings
	DetailStaffDetails
	// DetailChordSymbols includes chord symbols (jazz chords etc.)
	DetailChordSymbols
	// DetailOttavas includes 8va/8vb lines
	DetailOttavas
	// DetailArpeggios includes arpeggio marks
	DetailArpeggios
	// DetailLyrics includes lyrics
	DetailLyrics
	// DetailStyle includes typographical style (stem direction, notehead shape, color, ...)
	DetailStyle
	// DetailMetadata includes score-level metadata (title, composer, ...)
	DetailMetadata
	// DetailVoicing compares voice and chord membership instead of flattened notes
	DetailVoicing
)

const (
	// DetailDecoratedNotesAndRests is notes/rests with all their decorations.
	DetailDecoratedNotesAndRests = DetailNotesAndRests | DetailBeams | DetailTremolos |
		DetailOrnaments | DetailArticulations | DetailTies | DetailSlurs

	// DetailOtherObjects is every non-note category.
	DetailOtherObjects = DetailSignatures | DetailDirections | DetailBarlines |
		DetailStaffDetails | DetailChordSymbols | DetailOttavas | DetailArpeggios |
		DetailLyrics

	// DetailAllObjects is decorated notes plus all other musical objects.
	DetailAllObjects = DetailDecoratedNotesAndRests | DetailOtherObjects

	// DetailDefault is the default comparison detail level.
	DetailDefault = DetailAllObjects
)

func (d DetailLevel) IncludesNotesAndRests() bool { return d&DetailNotesAndRests != 0 }
func (d DetailLevel) IncludesBeams() bool         { return d&DetailBeams != 0 }
func (d DetailLevel) IncludesTremolos() bool      { return d&DetailTremolos != 0 }
func (d DetailLevel) IncludesOrnaments() bool     { return d&DetailOrnaments != 0 }
func (d DetailLevel) IncludesArticulations() bool { return d&DetailArticulations != 0 }
func (d DetailLevel) IncludesTies() bool          { return d&DetailTies != 0 }
func (d DetailLevel) IncludesSlurs() bool         { return d&DetailSlurs != 0 }
func (d DetailLevel) IncludesSignatures() bool    { return d&DetailSignatures != 0 }
func (d DetailLevel) IncludesDirections() bool    { return d&DetailDirections != 0 }
func (d DetailLevel) IncludesBarlines() bool      { return d&DetailBarlines != 0 }
func (d DetailLevel) IncludesStaffDetails() bool  { return d&DetailStaffDetails != 0 }
func (d DetailLevel) IncludesChordSymbols() bool  { return d&DetailChordSymbols != 0 }
func (d DetailLevel) IncludesOttavas() bool       { return d&DetailOttavas != 0 }
func (d DetailLevel) IncludesArpeggios() bool     { return d&DetailArpeggios != 0 }
func (d DetailLevel) IncludesLyrics() bool        { return d&DetailLyrics != 0 }
func (d DetailLevel) IncludesStyle() bool         { return d&DetailStyle != 0 }
func (d DetailLevel) IncludesMetadata() bool      { return d&DetailMetadata != 0 }
func (d DetailLevel) IncludesVoicing() bool       { return d&DetailVoicing != 0 }

// ParseDetailLevel maps a configuration string to a detail level.
func ParseDetailLevel(name string) (DetailLevel, bool) {
	switch name {
	case "notes":
		return DetailNotesAndRests, true
	case "decorated-notes":
		return DetailDecoratedNotesAndRests, true
	case "other-objects":
		return DetailOtherObjects, true
	case "all", "default", "":
		return DetailAllObjects, true
	case "all+style":
		return DetailAllObjects | DetailStyle, true
	case "all+metadata":
		return DetailAllObjects | DetailMetadata, true
	case "all+voicing":
		return DetailAllObjects | DetailVoicing, true
	case "everything":
		return DetailAllObjects | DetailStyle | DetailMetadata | DetailVoicing, true
	default:
		return 0, false
	}
}
