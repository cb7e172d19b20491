package model

import "strings"

// Field is one of Text, Ratio, Tempo, Key, Barline or Ending.
type Field interface {
	Kind() TokenKind
	isField()
}

// Text carries X:, T:, C:, V: and comment values
type Text struct {
	Of    TokenKind
	Value string
}

func (Text) isField()          {}
func (t Text) Kind() TokenKind { return t.Of }

// Ratio carries L: and M: values
type Ratio struct {
	Of    TokenKind
	Value Fraction
}

func (Ratio) isField()          {}
func (r Ratio) Kind() TokenKind { return r.Of }

type Tempo struct {
	BPM int
}

func (Tempo) isField()        {}
func (Tempo) Kind() TokenKind { return FieldTempo }

// Key wraps the key note. Minor mode is stored as Octave == -1 and the
// key accidental as Accidental (-1, 0, 1).
type Key struct {
	Note NoteValue
}

func (Key) isField()        {}
func (Key) Kind() TokenKind { return FieldKey }

func (k Key) Minor() bool { return k.Note.Octave == -1 }

func (k Key) String() string {
	var sb strings.Builder
	sb.WriteByte(k.Note.Letter)
	switch k.Note.Accidental {
	case 1:
		sb.WriteByte('#')
	case -1:
		sb.WriteByte('b')
	}
	if k.Minor() {
		sb.WriteByte('m')
	}
	return sb.String()
}

type BarlineKind int

const (
	BarPlain       BarlineKind = iota + 1 // |
	BarDouble                             // ||
	BarFinal                              // |]
	BarCloseRepeat                        // :|
	BarOpenRepeat                         // |:
	BarThickThin                          // [|
)

type Barline struct {
	Style BarlineKind
}

func (Barline) isField()        {}
func (Barline) Kind() TokenKind { return BarlineToken }

// Ending is a first or second repeat ending marker
type Ending struct {
	Number int
}

func (Ending) isField()        {}
func (Ending) Kind() TokenKind { return RepeatToken }
