// Package parser reads partwise MusicXML into the native score graph the
// tree builder consumes. Parsing is lenient: recoverable irregularities
// (missing divisions, unknown duration types, malformed numbers) are
// repaired and counted into SyntaxErrorsFixed instead of failing.
package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/ludo-technologies/scorediff/domain"
	"github.com/ludo-technologies/scorediff/internal/score"
)

// typeNums maps MusicXML note types onto duration-type numbers.
var typeNums = map[string]float64{
	"maxima":  0.125,
	"long":    0.25,
	"breve":   0.5,
	"whole":   1,
	"half":    2,
	"quarter": 4,
	"eighth":  8,
	"16th":    16,
	"32nd":    32,
	"64th":    64,
	"128th":   128,
	"256th":   256,
	"512th":   512,
	"1024th":  1024,
}

// Precompiled selectors for the queries run once per part or measure.
var (
	rootQuery    = xpath.MustCompile("//score-partwise")
	partQuery    = xpath.MustCompile("part")
	measureQuery = xpath.MustCompile("measure")
)

// MusicXMLParser converts partwise MusicXML into a NativeScore.
type MusicXMLParser struct {
	fixed     int
	openSlurs map[string]*slurSpan
}

// slurSpan tracks a slur between its start and stop notes. The note count
// and the start offset become the pairing key of the emitted symbol.
type slurSpan struct {
	offset    float64
	placement string
	notes     int
}

// NewMusicXMLParser returns a fresh parser. A parser instance carries the
// repair counter of one file and must not be reused.
func NewMusicXMLParser() *MusicXMLParser {
	return &MusicXMLParser{}
}

// ParseFile reads and parses one MusicXML file.
func (p *MusicXMLParser) ParseFile(path string) (*score.NativeScore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	defer f.Close()

	native, err := p.Parse(f)
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}
	return native, nil
}

// Parse parses partwise MusicXML from a reader.
func (p *MusicXMLParser) Parse(r io.Reader) (*score.NativeScore, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, err
	}
	root := xmlquery.QuerySelector(doc, rootQuery)
	if root == nil {
		return nil, fmt.Errorf("no score-partwise element")
	}

	native := &score.NativeScore{
		Metadata: p.parseMetadata(root),
	}

	partIDs := make(map[string]int)
	for i, sp := range xmlquery.Find(root, "part-list/score-part") {
		partIDs[attr(sp, "id")] = i
	}
	native.Groups = p.parseGroups(root, len(partIDs))

	for _, partNode := range xmlquery.QuerySelectorAll(root, partQuery) {
		id := attr(partNode, "id")
		part := score.NativePart{ID: id}
		divisions := 1.0
		p.openSlurs = make(map[string]*slurSpan)
		for _, mNode := range xmlquery.QuerySelectorAll(partNode, measureQuery) {
			m, div := p.parseMeasure(mNode, divisions)
			divisions = div
			part.Measures = append(part.Measures, m)
		}
		// A slur left open at the end of the part lost its stop.
		p.fixed += len(p.openSlurs)
		native.Parts = append(native.Parts, part)
	}

	native.SyntaxErrorsFixed = p.fixed
	return native, nil
}

func (p *MusicXMLParser) parseMetadata(root *xmlquery.Node) []score.NativeMetadataItem {
	var items []score.NativeMetadataItem
	add := func(key, value string) {
		value = strings.TrimSpace(value)
		if value != "" {
			items = append(items, score.NativeMetadataItem{Key: key, Value: value})
		}
	}

	if n := xmlquery.FindOne(root, "work/work-title"); n != nil {
		add("title", n.InnerText())
	}
	if n := xmlquery.FindOne(root, "movement-title"); n != nil {
		add("movementName", n.InnerText())
	}
	for _, c := range xmlquery.Find(root, "identification/creator") {
		role := attr(c, "type")
		if role == "" {
			role = "composer"
		}
		add(role, c.InnerText())
	}
	for _, rights := range xmlquery.Find(root, "identification/rights") {
		add("copyright", rights.InnerText())
	}
	if n := xmlquery.FindOne(root, "identification/encoding/software"); n != nil {
		add("software", n.InnerText())
	}
	return items
}

// parseGroups pairs part-group start/stop elements into index ranges. A
// stop without a matching start is repaired and counted.
func (p *MusicXMLParser) parseGroups(root *xmlquery.Node, partCount int) []score.NativePartGroup {
	type openGroup struct {
		group score.NativePartGroup
		first int
	}
	open := make(map[string]*openGroup)
	var out []score.NativePartGroup

	partIndex := 0
	list := xmlquery.FindOne(root, "part-list")
	if list == nil {
		return nil
	}
	for child := list.FirstChild; child != nil; child = child.NextSibling {
		switch child.Data {
		case "score-part":
			partIndex++
		case "part-group":
			number := attr(child, "number")
			if number == "" {
				number = "1"
			}
			switch attr(child, "type") {
			case "start":
				g := score.NativePartGroup{}
				if n := xmlquery.FindOne(child, "group-name"); n != nil {
					g.Name = strings.TrimSpace(n.InnerText())
				}
				if n := xmlquery.FindOne(child, "group-abbreviation"); n != nil {
					g.Abbrev = strings.TrimSpace(n.InnerText())
				}
				if n := xmlquery.FindOne(child, "group-symbol"); n != nil {
					g.Symbol = strings.TrimSpace(n.InnerText())
				}
				if n := xmlquery.FindOne(child, "group-barline"); n != nil {
					g.BarTogether = strings.TrimSpace(n.InnerText())
				}
				open[number] = &openGroup{group: g, first: partIndex}
			case "stop":
				og, ok := open[number]
				if !ok {
					p.fixed++
					continue
				}
				delete(open, number)
				for i := og.first; i < partIndex && i < partCount; i++ {
					og.group.PartIndices = append(og.group.PartIndices, i)
				}
				if len(og.group.PartIndices) > 0 {
					out = append(out, og.group)
				}
			}
		}
	}
	// Unclosed groups run to the last part.
	for _, og := range open {
		p.fixed++
		for i := og.first; i < partCount; i++ {
			og.group.PartIndices = append(og.group.PartIndices, i)
		}
		if len(og.group.PartIndices) > 0 {
			out = append(out, og.group)
		}
	}
	return out
}

func (p *MusicXMLParser) parseMeasure(mNode *xmlquery.Node, divisions float64) (score.NativeMeasure, float64) {
	m := score.NativeMeasure{Number: attr(mNode, "number")}

	voices := make(map[string]*score.NativeVoice)
	var voiceOrder []string
	voiceOf := func(name string) *score.NativeVoice {
		if name == "" {
			name = "1"
		}
		v, ok := voices[name]
		if !ok {
			v = &score.NativeVoice{ID: name}
			voices[name] = v
			voiceOrder = append(voiceOrder, name)
		}
		return v
	}

	cursor := 0.0
	noteSeq := 0
	for child := mNode.FirstChild; child != nil; child = child.NextSibling {
		switch child.Data {
		case "attributes":
			if n := xmlquery.FindOne(child, "divisions"); n != nil {
				if d := p.parseFloat(n.InnerText(), 0); d > 0 {
					divisions = d
				} else {
					p.fixed++
				}
			}
			m.Extras = append(m.Extras, p.parseAttributes(child, cursor/divisions)...)
		case "note":
			noteSeq++
			n, advance := p.parseNote(child, cursor/divisions, divisions, noteSeq)
			if xmlquery.FindOne(child, "chord") != nil {
				v := voiceOf(text(child, "voice"))
				if len(v.Notes) > 0 && !n.Rest {
					last := &v.Notes[len(v.Notes)-1]
					last.Pitches = append(last.Pitches, n.Pitches...)
				} else {
					p.fixed++
				}
				continue
			}
			v := voiceOf(text(child, "voice"))
			v.Notes = append(v.Notes, n)
			m.Lyrics = append(m.Lyrics, p.parseLyrics(child, n.ID, n.Offset)...)
			m.Extras = append(m.Extras, p.noteSpanExtras(child, n.Offset)...)
			cursor += advance * divisions
		case "backup":
			cursor -= p.parseFloat(text(child, "duration"), 0)
			if cursor < 0 {
				cursor = 0
				p.fixed++
			}
		case "forward":
			cursor += p.parseFloat(text(child, "duration"), 0)
		case "direction":
			m.Extras = append(m.Extras, p.parseDirection(child, cursor/divisions)...)
		case "harmony":
			if e, ok := p.parseHarmony(child, cursor/divisions); ok {
				m.Extras = append(m.Extras, e)
			}
		case "print":
			if attr(child, "new-system") == "yes" {
				m.Extras = append(m.Extras, score.NativeExtra{
					Kind:     score.KindSystemBreak,
					Offset:   cursor / divisions,
					Duration: score.NoDuration,
				})
			}
			if attr(child, "new-page") == "yes" {
				m.Extras = append(m.Extras, score.NativeExtra{
					Kind:     score.KindPageBreak,
					Offset:   cursor / divisions,
					Duration: score.NoDuration,
				})
			}
		case "barline":
			if style := text(child, "bar-style"); style != "" && style != "regular" {
				m.Extras = append(m.Extras, score.NativeExtra{
					Kind:     score.KindBarline,
					Symbolic: style,
					Offset:   cursor / divisions,
					Duration: score.NoDuration,
				})
			}
			if ending := xmlquery.FindOne(child, "ending"); ending != nil {
				m.Extras = append(m.Extras, score.NativeExtra{
					Kind:     score.KindEnding,
					Symbolic: attr(ending, "type"),
					Content:  attr(ending, "number"),
					Offset:   cursor / divisions,
					Duration: score.NoDuration,
				})
			}
		}
	}

	for _, name := range voiceOrder {
		m.Voices = append(m.Voices, *voices[name])
	}
	return m, divisions
}

// parseAttributes reads one attributes element at the cursor position, so a
// mid-measure clef or key change keeps its offset.
func (p *MusicXMLParser) parseAttributes(a *xmlquery.Node, offset float64) []score.NativeExtra {
	var extras []score.NativeExtra
	for _, clef := range xmlquery.Find(a, "clef") {
		sym := text(clef, "sign")
		if line := text(clef, "line"); line != "" {
			sym += line
		}
		extras = append(extras, score.NativeExtra{
			Kind:     score.KindClef,
			Symbolic: sym,
			Offset:   offset,
			Duration: score.NoDuration,
		})
	}
	if key := xmlquery.FindOne(a, "key"); key != nil {
		extras = append(extras, score.NativeExtra{
			Kind:     score.KindKeySignature,
			Info:     map[string]string{"fifths": text(key, "fifths")},
			Offset:   offset,
			Duration: score.NoDuration,
		})
	}
	if ts := xmlquery.FindOne(a, "time"); ts != nil {
		extras = append(extras, score.NativeExtra{
			Kind: score.KindTimeSignature,
			Info: map[string]string{
				"numerator":   text(ts, "beats"),
				"denominator": text(ts, "beat-type"),
			},
			Offset:   offset,
			Duration: score.NoDuration,
		})
	}
	for _, sd := range xmlquery.Find(a, "staff-details") {
		info := map[string]string{}
		if lines := text(sd, "staff-lines"); lines != "" {
			info["lines"] = lines
		}
		if attr(sd, "print-object") == "no" {
			info["hidden"] = "yes"
		}
		if len(info) > 0 {
			extras = append(extras, score.NativeExtra{
				Kind:     score.KindStaffInfo,
				Info:     info,
				Offset:   offset,
				Duration: score.NoDuration,
			})
		}
	}
	return extras
}

// noteSpanExtras collects the symbols attached to a note: slurs (paired
// across notes by their number), arpeggios and tremolos.
func (p *MusicXMLParser) noteSpanExtras(node *xmlquery.Node, offset float64) []score.NativeExtra {
	var extras []score.NativeExtra

	slurs := xmlquery.Find(node, "notations/slur")
	for _, s := range slurs {
		if attr(s, "type") != "start" {
			continue
		}
		number := attr(s, "number")
		if number == "" {
			number = "1"
		}
		p.openSlurs[number] = &slurSpan{offset: offset, placement: attr(s, "placement")}
	}
	for _, span := range p.openSlurs {
		span.notes++
	}
	for _, s := range slurs {
		if attr(s, "type") != "stop" {
			continue
		}
		number := attr(s, "number")
		if number == "" {
			number = "1"
		}
		span, ok := p.openSlurs[number]
		if !ok {
			p.fixed++
			continue
		}
		delete(p.openSlurs, number)
		e := score.NativeExtra{
			Kind:     score.KindSlur,
			Offset:   span.offset,
			Duration: score.NoDuration,
			NumNotes: span.notes,
		}
		if span.placement != "" {
			e.Info = map[string]string{"placement": span.placement}
		}
		extras = append(extras, e)
	}

	if xmlquery.FindOne(node, "notations/arpeggiate") != nil {
		extras = append(extras, score.NativeExtra{
			Kind:     score.KindArpeggio,
			Offset:   offset,
			Duration: score.NoDuration,
		})
	}
	for _, tr := range xmlquery.Find(node, "notations/ornaments/tremolo") {
		kind := attr(tr, "type")
		if kind == "" {
			kind = "single"
		}
		e := score.NativeExtra{
			Kind:     score.KindTremolo,
			Symbolic: kind,
			Offset:   offset,
			Duration: score.NoDuration,
		}
		if marks := strings.TrimSpace(tr.InnerText()); marks != "" {
			e.Info = map[string]string{"marks": marks}
		}
		extras = append(extras, e)
	}
	return extras
}

// parseHarmony turns a harmony element into a chord symbol: the root name
// in Content, the chord quality in Symbolic.
func (p *MusicXMLParser) parseHarmony(node *xmlquery.Node, offset float64) (score.NativeExtra, bool) {
	root := text(node, "root/root-step")
	switch text(node, "root/root-alter") {
	case "1":
		root += "#"
	case "-1":
		root += "b"
	}
	quality := ""
	if k := xmlquery.FindOne(node, "kind"); k != nil {
		quality = attr(k, "text")
		if quality == "" {
			quality = strings.TrimSpace(k.InnerText())
		}
	}
	if root == "" && quality == "" {
		return score.NativeExtra{}, false
	}
	return score.NativeExtra{
		Kind:     score.KindChordSymbol,
		Content:  root,
		Symbolic: quality,
		Offset:   offset,
		Duration: score.NoDuration,
	}, true
}

func (p *MusicXMLParser) parseDirection(node *xmlquery.Node, offset float64) []score.NativeExtra {
	var extras []score.NativeExtra
	for _, dt := range xmlquery.Find(node, "direction-type") {
		for child := dt.FirstChild; child != nil; child = child.NextSibling {
			switch child.Data {
			case "dynamics":
				for d := child.FirstChild; d != nil; d = d.NextSibling {
					if d.Type == xmlquery.ElementNode {
						extras = append(extras, score.NativeExtra{
							Kind:     score.KindDynamic,
							Symbolic: d.Data,
							Offset:   offset,
							Duration: score.NoDuration,
						})
					}
				}
			case "wedge":
				extras = append(extras, score.NativeExtra{
					Kind:     score.KindWedge,
					Symbolic: attr(child, "type"),
					Offset:   offset,
					Duration: score.NoDuration,
				})
			case "words":
				if content := strings.TrimSpace(child.InnerText()); content != "" {
					extras = append(extras, score.NativeExtra{
						Kind:     score.KindDirection,
						Content:  content,
						Offset:   offset,
						Duration: score.NoDuration,
					})
				}
			case "metronome":
				extras = append(extras, score.NativeExtra{
					Kind: score.KindTempo,
					Info: map[string]string{
						"unit":      text(child, "beat-unit"),
						"perMinute": text(child, "per-minute"),
					},
					Offset:   offset,
					Duration: score.NoDuration,
				})
			case "octave-shift":
				extras = append(extras, score.NativeExtra{
					Kind:     score.KindOttava,
					Symbolic: attr(child, "type") + attr(child, "size"),
					Offset:   offset,
					Duration: score.NoDuration,
				})
			case "pedal":
				extras = append(extras, score.NativeExtra{
					Kind:     score.KindPedal,
					Symbolic: attr(child, "type"),
					Offset:   offset,
					Duration: score.NoDuration,
				})
			case "rehearsal":
				extras = append(extras, score.NativeExtra{
					Kind:    score.KindRehearsalMark,
					Content: strings.TrimSpace(child.InnerText()),
					Offset:  offset, Duration: score.NoDuration,
				})
			}
		}
	}
	return extras
}

// parseNote reads one note element. The returned advance is the note's
// duration in quarter notes; grace notes and chord members advance nothing.
func (p *MusicXMLParser) parseNote(node *xmlquery.Node, offset, divisions float64, seq int) (score.NativeNote, float64) {
	n := score.NativeNote{
		ID:       noteID(node, seq),
		Offset:   offset,
		Duration: score.NoDuration,
	}

	n.Rest = xmlquery.FindOne(node, "rest") != nil
	n.Unpitched = xmlquery.FindOne(node, "unpitched") != nil

	for _, pn := range xmlquery.Find(node, "pitch|unpitched") {
		step := text(pn, "step")
		if step == "" {
			step = text(pn, "display-step")
		}
		octave := int(p.parseFloat(text(pn, "octave"), 4))
		if o := text(pn, "display-octave"); o != "" {
			octave = int(p.parseFloat(o, 4))
		}
		pitch := score.NativePitch{Step: step, Octave: octave}
		if acc := xmlquery.FindOne(node, "accidental"); acc != nil {
			pitch.Accidental = strings.TrimSpace(acc.InnerText())
			pitch.Visible = true
		}
		for _, tie := range xmlquery.Find(node, "tie") {
			if attr(tie, "type") == "start" {
				pitch.Tied = true
			}
		}
		n.Pitches = append(n.Pitches, pitch)
	}

	if typeName := text(node, "type"); typeName != "" {
		num, ok := typeNums[typeName]
		if !ok {
			num = 4
			p.fixed++
		}
		n.TypeNum = num
	} else {
		n.TypeNum = 4
		if !n.Rest {
			p.fixed++
		}
	}

	n.Dots = len(xmlquery.Find(node, "dot"))

	if g := xmlquery.FindOne(node, "grace"); g != nil {
		n.GraceType = "acc"
		if attr(g, "slash") == "yes" {
			n.GraceSlash = true
			n.GraceType = "unacc"
		}
	}

	for _, beam := range xmlquery.Find(node, "beam") {
		tok := strings.TrimSpace(beam.InnerText())
		switch tok {
		case "begin":
			tok = "start"
		case "end":
			tok = "stop"
		case "forward hook", "backward hook":
			tok = "partial"
		}
		n.Beams = append(n.Beams, tok)
	}

	if tm := xmlquery.FindOne(node, "time-modification"); tm != nil {
		t := score.NativeTuplet{
			Actual: int(p.parseFloat(text(tm, "actual-notes"), 0)),
			Normal: int(p.parseFloat(text(tm, "normal-notes"), 0)),
		}
		for _, tup := range xmlquery.Find(node, "notations/tuplet") {
			t.Type = attr(tup, "type")
			t.Bracket = attr(tup, "bracket") == "yes"
			t.ShowNormal = attr(tup, "show-number") == "both"
		}
		n.Tuplets = append(n.Tuplets, t)
	}

	for _, art := range xmlquery.Find(node, "notations/articulations") {
		for a := art.FirstChild; a != nil; a = a.NextSibling {
			if a.Type == xmlquery.ElementNode {
				n.Articulations = append(n.Articulations, a.Data)
			}
		}
	}
	for _, orn := range xmlquery.Find(node, "notations/ornaments") {
		for o := orn.FirstChild; o != nil; o = o.NextSibling {
			// Tremolos are emitted as measure symbols, not note ornaments.
			if o.Type == xmlquery.ElementNode && o.Data != "tremolo" {
				n.Expressions = append(n.Expressions, o.Data)
			}
		}
	}
	if xmlquery.FindOne(node, "notations/fermata") != nil {
		n.Expressions = append(n.Expressions, "fermata")
	}

	if stem := text(node, "stem"); stem != "" {
		n.StemDirection = stem
	}
	if nh := xmlquery.FindOne(node, "notehead"); nh != nil {
		n.NoteShape = strings.TrimSpace(nh.InnerText())
		n.NoteheadFill = attr(nh, "filled")
		n.NoteheadParenthesis = attr(nh, "parentheses") == "yes"
	}

	advance := 0.0
	if d := text(node, "duration"); d != "" {
		dur := p.parseFloat(d, 0)
		if dur < 0 {
			dur = 0
			p.fixed++
		}
		n.Duration = dur / divisions
		advance = n.Duration
	} else {
		n.Duration = 0
		if n.GraceType == "" {
			p.fixed++
		}
	}
	return n, advance
}

func (p *MusicXMLParser) parseLyrics(node *xmlquery.Node, noteID string, offset float64) []score.NativeLyric {
	var out []score.NativeLyric
	for _, l := range xmlquery.Find(node, "lyric") {
		num := int(p.parseFloat(attr(l, "number"), 1))
		if num < 1 {
			num = 1
		}
		out = append(out, score.NativeLyric{
			Text:       strings.TrimSpace(text(l, "text")),
			Number:     num,
			Identifier: attr(l, "name"),
			Offset:     offset,
			NoteID:     noteID,
		})
	}
	return out
}

// parseFloat is the lenient number reader: malformed input yields def and
// counts as a repair.
func (p *MusicXMLParser) parseFloat(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fixed++
		return def
	}
	return f
}

func noteID(node *xmlquery.Node, seq int) string {
	if id := attr(node, "id"); id != "" {
		return id
	}
	return fmt.Sprintf("note-%d", seq)
}

func attr(n *xmlquery.Node, name string) string {
	for _, a := range n.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func text(n *xmlquery.Node, path string) string {
	if c := xmlquery.FindOne(n, path); c != nil {
		return strings.TrimSpace(c.InnerText())
	}
	return ""
}
