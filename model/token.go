package model

import (
	"fmt"
	"strings"
)

type TokenKind int

const (
	NoToken TokenKind = iota
	FieldNumber
	FieldTitle
	FieldComposer
	FieldDefaultLength
	FieldMeter
	FieldTempo
	FieldVoice
	FieldKey
	NoteToken
	RestToken
	TupletToken
	ChordToken
	BarlineToken
	RepeatToken
	CommentToken
	EndOfLine
)

var tokenNames = map[TokenKind]string{
	NoToken:            "nothing",
	FieldNumber:        "X: field",
	FieldTitle:         "T: field",
	FieldComposer:      "C: field",
	FieldDefaultLength: "L: field",
	FieldMeter:         "M: field",
	FieldTempo:         "Q: field",
	FieldVoice:         "V: field",
	FieldKey:           "K: field",
	NoteToken:          "note",
	RestToken:          "rest",
	TupletToken:        "tuplet",
	ChordToken:         "chord",
	BarlineToken:       "barline",
	RepeatToken:        "repeat ending",
	CommentToken:       "comment",
	EndOfLine:          "end of line",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsNote reports whether tokens of this kind are read with NextNote
func (k TokenKind) IsNote() bool {
	return k == NoteToken || k == RestToken || k == TupletToken || k == ChordToken
}

// Note is one of NoteValue, Rest, Chord or Tuplet.
type Note interface {
	// Duration in default-length units
	Duration() Fraction
	String() string
	isNote()
}

// NoteValue is a single pitched note as written. Letter keeps its case:
// uppercase sits in the octave of middle C, lowercase one octave above.
type NoteValue struct {
	Letter        byte
	Octave        int
	Accidental    int
	HasAccidental bool
	Length        Fraction
}

func (NoteValue) isNote() {}

func (n NoteValue) Duration() Fraction { return n.Length }

func (n NoteValue) Scale(ratio Fraction) NoteValue {
	n.Length = Fraction{Num: n.Length.Num * ratio.Num, Den: n.Length.Den * ratio.Den}
	return n
}

func (n NoteValue) String() string {
	var sb strings.Builder
	if n.HasAccidental {
		switch {
		case n.Accidental > 0:
			sb.WriteString(strings.Repeat("^", n.Accidental))
		case n.Accidental < 0:
			sb.WriteString(strings.Repeat("_", -n.Accidental))
		default:
			sb.WriteByte('=')
		}
	}
	sb.WriteByte(n.Letter)
	if n.Octave > 0 {
		sb.WriteString(strings.Repeat("'", n.Octave))
	} else if n.Octave < 0 {
		sb.WriteString(strings.Repeat(",", -n.Octave))
	}
	sb.WriteString(n.Length.String())
	return sb.String()
}

type Rest struct {
	Length Fraction
}

func (Rest) isNote() {}

func (r Rest) Duration() Fraction { return r.Length }

func (r Rest) String() string { return "z" + r.Length.String() }

// Chord members all share Length.
type Chord struct {
	Notes  []NoteValue
	Length Fraction
}

func (Chord) isNote() {}

func (c Chord) Duration() Fraction { return c.Length }

func (c Chord) Scale(ratio Fraction) Chord {
	scaled := Chord{Notes: make([]NoteValue, len(c.Notes))}
	for i, n := range c.Notes {
		scaled.Notes[i] = n.Scale(ratio)
	}
	scaled.Length = Fraction{Num: c.Length.Num * ratio.Num, Den: c.Length.Den * ratio.Den}
	return scaled
}

func (c Chord) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, n := range c.Notes {
		sb.WriteString(n.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Tuplet members are NoteValue or Chord, never another Tuplet.
type Tuplet struct {
	Size    int
	Ratio   Fraction
	Members []Note
}

func (Tuplet) isNote() {}

// Expand returns the members with the ratio applied to each duration
func (t Tuplet) Expand() []Note {
	res := make([]Note, 0, len(t.Members))
	for _, m := range t.Members {
		switch v := m.(type) {
		case NoteValue:
			res = append(res, v.Scale(t.Ratio))
		case Chord:
			res = append(res, v.Scale(t.Ratio))
		}
	}
	return res
}

func (t Tuplet) Duration() Fraction {
	total := Zero
	for _, m := range t.Expand() {
		total = total.Add(m.Duration())
	}
	return total
}

func (t Tuplet) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "(%d", t.Size)
	for _, m := range t.Members {
		sb.WriteString(m.String())
	}
	return sb.String()
}

// TupletRatio is the duration scaling for a duplet, triplet or quadruplet
func TupletRatio(size int) (Fraction, bool) {
	switch size {
	case 2:
		return NewFraction(3, 2), true
	case 3:
		return NewFraction(2, 3), true
	case 4:
		return NewFraction(3, 4), true
	}
	return Fraction{}, false
}
