package lexer

import (
	"regexp"
	"strings"

	"github.com/jsphweid/abcplay/model"
)

type matcher struct {
	kind model.TokenKind
	re   *regexp.Regexp
	// header style fields only begin at the start of a line
	lineStart bool
	// a bare ending number is only legal right after a barline (":|2")
	afterBarline bool
}

func compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`^[ \t]*(?:` + pattern + `)`)
}

var eolPattern = regexp.MustCompile(`^[ \t]*(?:\r\n|\n|\r|$)`)

// NOTE: order matters. Several patterns overlap: endings before barlines
// ("|1" is not "|" then "1"), barlines before chords ("[|").
var tokenTable = []matcher{
	{kind: model.FieldNumber, re: compile(`X:[ \t]*[0-9]+`), lineStart: true},
	{kind: model.FieldTitle, re: compile(`T:[^\n\r]*`), lineStart: true},
	{kind: model.FieldComposer, re: compile(`C:[^\n\r]*`), lineStart: true},
	{kind: model.FieldDefaultLength, re: compile(`L:[ \t]*[0-9]+/[0-9]+`), lineStart: true},
	{kind: model.FieldMeter, re: compile(`M:[ \t]*(?:C\|?|[0-9]+/[0-9]+)`), lineStart: true},
	{kind: model.FieldTempo, re: compile(`Q:[ \t]*[0-9]+`), lineStart: true},
	{kind: model.FieldVoice, re: compile(`V:[^\n\r]*`), lineStart: true},
	{kind: model.FieldKey, re: compile(`K:[ \t]*[A-Ga-g][#b]?m?`), lineStart: true},
	{kind: model.CommentToken, re: compile(`%[^\n\r]*`)},
	{kind: model.RepeatToken, re: compile(`(?:\|\[?|\[)[12]`)},
	{kind: model.RepeatToken, re: compile(`[12]`), afterBarline: true},
	{kind: model.BarlineToken, re: compile(`\|\]|\|\||\|:|\[\||:\||\|`)},
	{kind: model.ChordToken, re: compile(`\[[A-Ga-g\^_=z\[]`)},
	{kind: model.TupletToken, re: compile(`\([234][A-Ga-g\^_=0-9,'/z\[\]\(]+`)},
	{kind: model.RestToken, re: compile(`z[0-9]*(?:/[0-9]*)?`)},
	{kind: model.NoteToken, re: compile(`(?:\^{1,2}|_{1,2}|=)?[A-Ga-g](?:,+|'+)?[0-9]*(?:/[0-9]*)?`)},
}

// Scanner splits a tune into tokens. Peek decides the kind of the next
// token without consuming it; NextNote, NextField and NextEndOfLine consume
// exactly one token of the peeked kind.
//
// Chord and tuplet interiors are scanned by a fresh nested Scanner that owns
// a copy of just the bracketed text. base is the offset of that text in the
// outermost source so errors always point into the whole document.
type Scanner struct {
	src    string
	pos    int
	base   int
	nested bool

	peeked bool
	kind   model.TokenKind
	span   int
	last   model.TokenKind
}

func New(src string) *Scanner {
	return &Scanner{src: src}
}

func newNested(src string, base int) *Scanner {
	return &Scanner{src: src, base: base, nested: true}
}

func (s *Scanner) Done() bool {
	return s.pos >= len(s.src)
}

// Offset of the cursor in the outermost document
func (s *Scanner) Offset() int {
	return s.base + s.pos
}

func (s *Scanner) atLineStart() bool {
	return s.pos == 0 || s.src[s.pos-1] == '\n' || s.src[s.pos-1] == '\r'
}

func (s *Scanner) Peek() (model.TokenKind, error) {
	if s.peeked {
		return s.kind, nil
	}
	rest := s.src[s.pos:]

	// end of line is checked first, with end of input counting as one
	if loc := eolPattern.FindStringIndex(rest); loc != nil {
		s.found(model.EndOfLine, loc[1])
		return s.kind, nil
	}

	for _, m := range tokenTable {
		if m.lineStart && (s.nested || !s.atLineStart()) {
			continue
		}
		if m.afterBarline && s.last != model.BarlineToken {
			continue
		}
		if loc := m.re.FindStringIndex(rest); loc != nil {
			s.found(m.kind, loc[1])
			return s.kind, nil
		}
	}
	return model.NoToken, model.Errorf(model.GrammarError, s.Offset(), model.NoToken,
		"no token matches %q", preview(rest))
}

func (s *Scanner) found(kind model.TokenKind, span int) {
	s.peeked, s.kind, s.span = true, kind, span
}

// take consumes the peeked token and returns its text without leading
// whitespace along with the offset where that text starts
func (s *Scanner) take() (string, int) {
	chunk := s.src[s.pos : s.pos+s.span]
	raw := strings.TrimLeft(chunk, " \t")
	start := s.pos + len(chunk) - len(raw)
	s.pos += s.span
	s.last = s.kind
	s.peeked = false
	return raw, s.base + start
}

func (s *Scanner) NextEndOfLine() error {
	kind, err := s.Peek()
	if err != nil {
		return err
	}
	if kind != model.EndOfLine {
		return model.Errorf(model.GrammarError, s.Offset(), kind, "expected end of line")
	}
	s.take()
	return nil
}

func (s *Scanner) NextNote() (model.Note, error) {
	kind, err := s.Peek()
	if err != nil {
		return nil, err
	}
	switch kind {
	case model.NoteToken:
		raw, offset := s.take()
		return buildNote(raw, offset)
	case model.RestToken:
		raw, offset := s.take()
		return buildRest(raw, offset)
	case model.ChordToken:
		return s.chord()
	case model.TupletToken:
		return s.tuplet()
	}
	return nil, model.Errorf(model.GrammarError, s.Offset(), kind, "cannot build a note")
}

func (s *Scanner) NextField() (model.Field, error) {
	kind, err := s.Peek()
	if err != nil {
		return nil, err
	}
	switch kind {
	case model.FieldNumber, model.FieldTitle, model.FieldComposer, model.FieldVoice:
		raw, _ := s.take()
		return model.Text{Of: kind, Value: fieldText(raw, 2)}, nil
	case model.CommentToken:
		raw, _ := s.take()
		return model.Text{Of: kind, Value: fieldText(raw, 1)}, nil
	case model.FieldDefaultLength, model.FieldMeter:
		raw, offset := s.take()
		return buildRatio(kind, raw, offset)
	case model.FieldTempo:
		raw, offset := s.take()
		return buildTempo(raw, offset)
	case model.FieldKey:
		raw, offset := s.take()
		return buildKey(raw, offset)
	case model.BarlineToken:
		raw, offset := s.take()
		return buildBarline(raw, offset)
	case model.RepeatToken:
		raw, _ := s.take()
		if strings.Contains(raw, "1") {
			return model.Ending{Number: 1}, nil
		}
		return model.Ending{Number: 2}, nil
	}
	return nil, model.Errorf(model.GrammarError, s.Offset(), kind, "cannot build a field")
}

// chord isolates the bracketed text up to the matching ']' and scans it
// with a nested scanner that accepts only notes
func (s *Scanner) chord() (model.Note, error) {
	chunk := s.src[s.pos : s.pos+s.span]
	open := s.pos + len(chunk) - len(strings.TrimLeft(chunk, " \t"))
	end := matchBracket(s.src, open)
	if end < 0 {
		return nil, model.Errorf(model.StructureError, s.base+open, model.ChordToken, "chord is never closed")
	}
	inner := s.src[open+1 : end]
	s.pos = end + 1
	s.last = model.ChordToken
	s.peeked = false

	sub := newNested(inner, s.base+open+1)
	var notes []model.NoteValue
	for !sub.Done() {
		kind, err := sub.Peek()
		if err != nil {
			return nil, err
		}
		switch kind {
		case model.NoteToken:
			n, err := sub.NextNote()
			if err != nil {
				return nil, err
			}
			notes = append(notes, n.(model.NoteValue))
		case model.ChordToken, model.TupletToken, model.RestToken:
			return nil, model.Errorf(model.StructureError, sub.Offset(), kind, "chords can only contain notes")
		case model.EndOfLine:
			if strings.TrimSpace(sub.src[sub.pos:]) != "" {
				return nil, model.Errorf(model.GrammarError, sub.Offset(), kind, "chord spans a line break")
			}
			sub.take()
		default:
			return nil, model.Errorf(model.GrammarError, sub.Offset(), kind, "chords can only contain notes")
		}
	}
	if len(notes) == 0 {
		return nil, model.Errorf(model.GrammarError, s.base+open, model.ChordToken, "empty chord")
	}
	length := notes[0].Length
	for _, n := range notes[1:] {
		if !n.Length.Equal(length) {
			return nil, model.Errorf(model.StructureError, s.base+open, model.ChordToken,
				"chord notes must share one duration, got %s and %s", length, n.Length)
		}
	}
	return model.Chord{Notes: notes, Length: length}, nil
}

// tuplet scans exactly 2, 3 or 4 members out of the isolated tuplet text.
// Whatever follows the last member is left for this scanner to read next.
func (s *Scanner) tuplet() (model.Note, error) {
	chunk := s.src[s.pos : s.pos+s.span]
	raw := strings.TrimLeft(chunk, " \t")
	start := s.pos + len(chunk) - len(raw)
	size := int(raw[1] - '0')
	ratio, ok := model.TupletRatio(size)
	if !ok {
		return nil, model.Errorf(model.StructureError, s.base+start, model.TupletToken, "tuplets hold 2, 3 or 4 notes, not %d", size)
	}

	sub := newNested(raw[2:], s.base+start+2)
	members := make([]model.Note, 0, size)
	for len(members) < size {
		if sub.Done() {
			return nil, model.Errorf(model.StructureError, s.base+start, model.TupletToken,
				"tuplet of %d has only %d notes", size, len(members))
		}
		kind, err := sub.Peek()
		if err != nil {
			return nil, err
		}
		switch kind {
		case model.NoteToken, model.ChordToken:
			n, err := sub.NextNote()
			if err != nil {
				return nil, err
			}
			members = append(members, n)
		case model.TupletToken:
			return nil, model.Errorf(model.StructureError, sub.Offset(), kind, "tuplets cannot contain tuplets")
		default:
			return nil, model.Errorf(model.StructureError, sub.Offset(), kind, "tuplets can only contain notes and chords")
		}
	}

	s.pos = start + 2 + sub.pos
	s.last = model.TupletToken
	s.peeked = false
	return model.Tuplet{Size: size, Ratio: ratio, Members: members}, nil
}

// matchBracket returns the index of the ']' closing the '[' at open, or -1
// when the line ends first
func matchBracket(src string, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		case '\n', '\r':
			return -1
		}
	}
	return -1
}

func preview(rest string) string {
	if i := strings.IndexAny(rest, "\r\n"); i >= 0 {
		rest = rest[:i]
	}
	if len(rest) > 16 {
		rest = rest[:16] + "..."
	}
	return rest
}
