package domain

import "fmt"

// Annotated is a node of the annotated comparison tree. Implementations are
// immutable once built; Signature ignores source-object identity so equal
// signatures mean equal notation content.
type Annotated interface {
	// Signature returns the content signature used for equality testing and
	// memoization keys.
	Signature() string

	// NotationSize returns the number of independently observable visual
	// symbols this node contributes. It is the default insert/delete cost.
	NotationSize() int

	// String returns a short human-readable description for reports.
	String() string
}

// OpKind identifies one edit operation. The set is closed: every opcode the
// engine can emit is declared here, grouped by the entity it applies to.
type OpKind string

const (
	// Bar-level operations
	OpInsBar OpKind = "insbar"
	OpDelBar OpKind = "delbar"

	// Voice-level operations
	OpVoiceIns OpKind = "voiceins"
	OpVoiceDel OpKind = "voicedel"

	// Note-level operations
	OpNoteIns OpKind = "noteins"
	OpNoteDel OpKind = "notedel"

	// Pitch operations (attached to a note pair; PitchIndex locates the
	// chord members involved)
	OpInsPitch       OpKind = "inspitch"
	OpDelPitch       OpKind = "delpitch"
	OpPitchTypeEdit  OpKind = "pitchtypeedit"
	OpPitchNameEdit  OpKind = "pitchnameedit"
	OpAccidentIns    OpKind = "accidentins"
	OpAccidentDel    OpKind = "accidentdel"
	OpAccidentEdit   OpKind = "accidentedit"
	OpTieIns         OpKind = "tieins"
	OpTieDel         OpKind = "tiedel"

	// Notehead, dots, and grace operations
	OpHeadEdit       OpKind = "headedit"
	OpDotIns         OpKind = "dotins"
	OpDotDel         OpKind = "dotdel"
	OpGraceEdit      OpKind = "graceedit"
	OpGraceSlashEdit OpKind = "graceslashedit"

	// Beam and tuplet operations
	OpInsBeam        OpKind = "insbeam"
	OpDelBeam        OpKind = "delbeam"
	OpEditBeam       OpKind = "editbeam"
	OpInsTuplet      OpKind = "instuplet"
	OpDelTuplet      OpKind = "deltuplet"
	OpEditTuplet     OpKind = "edittuplet"
	OpInsTupletInfo  OpKind = "instupletinfo"
	OpDelTupletInfo  OpKind = "deltupletinfo"
	OpEditTupletInfo OpKind = "edittupletinfo"

	// Articulation and expression operations
	OpInsArticulation  OpKind = "insarticulation"
	OpDelArticulation  OpKind = "delarticulation"
	OpEditArticulation OpKind = "editarticulation"
	OpInsExpression    OpKind = "insexpression"
	OpDelExpression    OpKind = "delexpression"
	OpEditExpression   OpKind = "editexpression"

	// Horizontal-spacing operations
	OpInsSpace  OpKind = "insspace"
	OpDelSpace  OpKind = "delspace"
	OpEditSpace OpKind = "editspace"

	// Note style operations
	OpEditStyle               OpKind = "editstyle"
	OpEditNoteShape           OpKind = "editnoteshape"
	OpEditNoteheadFill        OpKind = "editnoteheadfill"
	OpEditNoteheadParenthesis OpKind = "editnoteheadparenthesis"
	OpEditStemDirection       OpKind = "editstemdirection"

	// Extra-symbol operations
	OpExtraIns          OpKind = "extrains"
	OpExtraDel          OpKind = "extradel"
	OpExtraContentEdit  OpKind = "extracontentedit"
	OpExtraSymbolEdit   OpKind = "extrasymboledit"
	OpExtraInfoEdit     OpKind = "extrainfoedit"
	OpExtraOffsetEdit   OpKind = "extraoffsetedit"
	OpExtraDurationEdit OpKind = "extradurationedit"
	OpExtraStyleEdit    OpKind = "extrastyleedit"

	// Lyric operations
	OpLyricIns        OpKind = "lyricins"
	OpLyricDel        OpKind = "lyricdel"
	OpLyricTextEdit   OpKind = "lyrictextedit"
	OpLyricNumEdit    OpKind = "lyricnumedit"
	OpLyricIDEdit     OpKind = "lyricidedit"
	OpLyricOffsetEdit OpKind = "lyricoffsetedit"
	OpLyricStyleEdit  OpKind = "lyricstyleedit"

	// Staff-group operations
	OpStaffGrpIns             OpKind = "staffgrpins"
	OpStaffGrpDel             OpKind = "staffgrpdel"
	OpStaffGrpNameEdit        OpKind = "staffgrpnameedit"
	OpStaffGrpAbbrevEdit      OpKind = "staffgrpabbreviationedit"
	OpStaffGrpSymbolEdit      OpKind = "staffgrpsymboledit"
	OpStaffGrpBarTogetherEdit OpKind = "staffgrpbartogetheredit"
	OpStaffGrpPartIndicesEdit OpKind = "staffgrppartindicesedit"

	// Metadata operations
	OpMdItemIns       OpKind = "mditemins"
	OpMdItemDel       OpKind = "mditemdel"
	OpMdItemValueEdit OpKind = "mditemvalueedit"

	// Credit for repairs made during lenient parsing
	OpSyntaxError OpKind = "syntaxerror"
)

// IsInsertion reports whether the opcode inserts notation that only exists
// in the target score.
func (k OpKind) IsInsertion() bool {
	switch k {
	case OpInsBar, OpVoiceIns, OpNoteIns, OpInsPitch, OpDotIns, OpInsBeam,
		OpInsTuplet, OpInsTupletInfo, OpInsArticulation, OpInsExpression,
		OpInsSpace, OpAccidentIns, OpTieIns, OpExtraIns, OpLyricIns,
		OpStaffGrpIns, OpMdItemIns:
		return true
	}
	return false
}

// IsDeletion reports whether the opcode deletes notation that only exists
// in the original score.
func (k OpKind) IsDeletion() bool {
	switch k {
	case OpDelBar, OpVoiceDel, OpNoteDel, OpDelPitch, OpDotDel, OpDelBeam,
		OpDelTuplet, OpDelTupletInfo, OpDelArticulation, OpDelExpression,
		OpDelSpace, OpAccidentDel, OpTieDel, OpExtraDel, OpLyricDel,
		OpStaffGrpDel, OpMdItemDel:
		return true
	}
	return false
}

// Operation is one step of the edit script transforming the original score
// into the target score. For insertions Original is nil, for deletions
// Target is nil; edits carry both subjects.
type Operation struct {
	Op       OpKind
	Original Annotated
	Target   Annotated
	Cost     int

	// PitchIndex holds the chord-member indices a pitch-level operation
	// refers to, valid only when HasPitchIndex is set.
	PitchIndex    [2]int
	HasPitchIndex bool
}

// String returns a compact description of the operation.
func (op Operation) String() string {
	switch {
	case op.Original == nil && op.Target != nil:
		return fmt.Sprintf("%s (+%d) -> %s", op.Op, op.Cost, op.Target)
	case op.Target == nil && op.Original != nil:
		return fmt.Sprintf("%s (+%d) <- %s", op.Op, op.Cost, op.Original)
	case op.Original != nil && op.Target != nil:
		return fmt.Sprintf("%s (+%d) %s ~ %s", op.Op, op.Cost, op.Original, op.Target)
	default:
		return fmt.Sprintf("%s (+%d)", op.Op, op.Cost)
	}
}
