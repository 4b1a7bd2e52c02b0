package score

// The Native* types are the input contract of the tree builder: a parsed,
// format-independent score object graph. Format-specific idiosyncrasy
// (MusicXML vs. MEI vs. Humdrum) must be normalized away by the parser
// before it reaches this package.

// NativeScore is a parsed score ready for annotation.
type NativeScore struct {
	Parts    []NativePart
	Groups   []NativePartGroup
	Metadata []NativeMetadataItem

	// SyntaxErrorsFixed counts repairs made during lenient parsing. It
	// contributes directly to the total edit cost of any comparison this
	// score participates in.
	SyntaxErrorsFixed int
}

// NativePart is one instrument/staff part in score order.
type NativePart struct {
	ID       string
	Measures []NativeMeasure
}

// NativeMeasure holds the voices and non-note symbols of one bar.
type NativeMeasure struct {
	// Number is the display number, possibly suffixed ("3b").
	Number string
	Voices []NativeVoice
	Extras []NativeExtra
	Lyrics []NativeLyric
}

// NativeVoice is one notational voice. Unvoiced measures arrive as a
// single voice.
type NativeVoice struct {
	ID    string
	Notes []NativeNote
}

// NativeNote is one note, rest, or chord.
type NativeNote struct {
	// ID is a weak back-reference to the source object, used only to
	// re-locate it for reporting.
	ID string

	Rest      bool
	Unpitched bool
	// Pitches holds the chord members in file order; empty for rests.
	Pitches []NativePitch

	// TypeNum is the duration type as a number: breve 0.5, whole 1,
	// half 2, quarter 4, eighth 8, and so on.
	TypeNum float64
	Dots    int

	// GraceType is "" (not a grace note), "acc" (accented/appoggiatura)
	// or "unacc" (unaccented/acciaccatura).
	GraceType  string
	GraceSlash bool

	// Beams holds one token per beam level: "start", "continue", "stop",
	// or "partial". Anything else is a structural input violation.
	Beams []string

	Tuplets []NativeTuplet

	Articulations []string
	Expressions   []string

	// Offset and Duration are in quarter notes from the measure start.
	Offset   float64
	Duration float64

	NoteShape           string
	NoteheadFill        string
	NoteheadParenthesis bool
	StemDirection       string
	Style               map[string]string
}

// NativePitch is one pitch of a note or chord.
type NativePitch struct {
	Step   string // "C".."B"
	Octave int
	// Accidental names the accidental ("sharp", "flat", ...); Visible
	// reports whether it is printed.
	Accidental string
	Visible    bool
	Tied       bool
}

// NativeTuplet is one tuplet level on a note's duration.
type NativeTuplet struct {
	// Type is "start", "stop", or "" for a continuation.
	Type       string
	Actual     int
	Normal     int
	Bracket    bool
	ShowNormal bool
}

// NativeExtra is any non-note symbol placed within a measure.
type NativeExtra struct {
	ID       string
	Kind     ExtraKind
	Content  string
	Symbolic string
	Info     map[string]string
	Offset   float64
	// Duration is quarter notes for symbols that span time, else
	// NoDuration.
	Duration float64
	NumNotes int
	Style    map[string]string
}

// NativeLyric is one lyric syllable attached to a note.
type NativeLyric struct {
	Text       string
	Number     int
	Identifier string
	Offset     float64
	Style      map[string]string
	// NoteID is a weak back-reference to the holding note.
	NoteID string
}

// NativePartGroup is a bracketed/braced grouping of parts.
type NativePartGroup struct {
	Name        string
	Abbrev      string
	Symbol      string // "brace", "bracket", "line", "square", "none", ""
	BarTogether string // "yes", "no", or "" when unspecified
	PartIndices []int
}

// NativeMetadataItem is one score-level metadata pair.
type NativeMetadataItem struct {
	Key   string
	Value string
}

// NoDuration is the sentinel duration of symbols that do not span time.
const NoDuration = -1.0
