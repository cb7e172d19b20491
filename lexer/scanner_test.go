package lexer

import (
	"testing"

	"github.com/jsphweid/abcplay/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanAll reads every token of src, failing the test on any error
func scanAll(t *testing.T, src string) ([]model.TokenKind, []any) {
	s := New(src)
	var kinds []model.TokenKind
	var values []any
	for !s.Done() {
		kind, err := s.Peek()
		require.NoError(t, err)
		kinds = append(kinds, kind)
		switch {
		case kind == model.EndOfLine:
			require.NoError(t, s.NextEndOfLine())
			values = append(values, nil)
		case kind.IsNote():
			n, err := s.NextNote()
			require.NoError(t, err)
			values = append(values, n)
		default:
			f, err := s.NextField()
			require.NoError(t, err)
			values = append(values, f)
		}
	}
	return kinds, values
}

// scanErr reads tokens until the first error and returns it
func scanErr(src string) error {
	s := New(src)
	for !s.Done() {
		kind, err := s.Peek()
		if err != nil {
			return err
		}
		switch {
		case kind == model.EndOfLine:
			err = s.NextEndOfLine()
		case kind.IsNote():
			_, err = s.NextNote()
		default:
			_, err = s.NextField()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func TestScanTokenKinds(t *testing.T) {
	kinds, _ := scanAll(t, "X:1\nT:t\nK:C\nA B|1 C D:|2 E F|]")

	assert.Equal(t, []model.TokenKind{
		model.FieldNumber, model.EndOfLine,
		model.FieldTitle, model.EndOfLine,
		model.FieldKey, model.EndOfLine,
		model.NoteToken, model.NoteToken, model.RepeatToken,
		model.NoteToken, model.NoteToken, model.BarlineToken, model.RepeatToken,
		model.NoteToken, model.NoteToken, model.BarlineToken,
	}, kinds)
}

func TestScanEveryBarline(t *testing.T) {
	_, values := scanAll(t, "A|B||C|]D:|E|:F[|G")

	var styles []model.BarlineKind
	for _, v := range values {
		if b, ok := v.(model.Barline); ok {
			styles = append(styles, b.Style)
		}
	}
	assert.Equal(t, []model.BarlineKind{
		model.BarPlain, model.BarDouble, model.BarFinal,
		model.BarCloseRepeat, model.BarOpenRepeat, model.BarThickThin,
	}, styles)
}

func TestScanEndings(t *testing.T) {
	cases := map[string]int{"|1": 1, "[1": 1, "|2": 2, "[2": 2, "|[1": 1}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			_, values := scanAll(t, "A"+input+"B")
			require.Len(t, values, 3)
			assert.Equal(t, model.Ending{Number: want}, values[1])
		})
	}
}

func TestScanBareEndingNeedsBarline(t *testing.T) {
	err := scanErr("A 2 B")
	assert.True(t, model.IsKind(err, model.GrammarError))
}

func TestScanNoteLengths(t *testing.T) {
	cases := map[string]model.Fraction{
		"A":    model.NewFraction(1, 1),
		"A3":   model.NewFraction(3, 1),
		"A3/2": model.NewFraction(3, 2),
		"A/":   model.NewFraction(1, 2),
		"A/4":  model.NewFraction(1, 4),
	}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			_, values := scanAll(t, input)
			require.Len(t, values, 1)
			assert.Equal(t, want, values[0].(model.Note).Duration())
		})
	}
}

func TestScanNoteParts(t *testing.T) {
	_, values := scanAll(t, "^^c'' _B,")
	require.Len(t, values, 2)

	assert := assert.New(t)
	assert.Equal(model.NoteValue{Letter: 'c', Octave: 2, Accidental: 2, HasAccidental: true, Length: model.NewFraction(1, 1)}, values[0])
	assert.Equal(model.NoteValue{Letter: 'B', Octave: -1, Accidental: -1, HasAccidental: true, Length: model.NewFraction(1, 1)}, values[1])
}

func TestScanRest(t *testing.T) {
	_, values := scanAll(t, "z3/2")
	require.Len(t, values, 1)
	assert.Equal(t, model.Rest{Length: model.NewFraction(3, 2)}, values[0])
}

func TestScanFields(t *testing.T) {
	_, values := scanAll(t, "X: 7\nT:  Paddy  \nC:Trad\nL:1/16\nM:C|\nQ:140\nV:fiddle\nK:F#m\n% notes follow")

	assert := assert.New(t)
	assert.Equal([]any{
		model.Text{Of: model.FieldNumber, Value: "7"}, nil,
		model.Text{Of: model.FieldTitle, Value: "Paddy"}, nil,
		model.Text{Of: model.FieldComposer, Value: "Trad"}, nil,
		model.Ratio{Of: model.FieldDefaultLength, Value: model.NewFraction(1, 16)}, nil,
		model.Ratio{Of: model.FieldMeter, Value: model.NewFraction(2, 2)}, nil,
		model.Tempo{BPM: 140}, nil,
		model.Text{Of: model.FieldVoice, Value: "fiddle"}, nil,
		model.Key{Note: model.NoteValue{Letter: 'F', Accidental: 1, Octave: -1, Length: model.NewFraction(1, 1)}}, nil,
		model.Text{Of: model.CommentToken, Value: "notes follow"},
	}, values)
}

func TestScanCommonTime(t *testing.T) {
	_, values := scanAll(t, "M:C")
	assert.Equal(t, []any{model.Ratio{Of: model.FieldMeter, Value: model.NewFraction(4, 4)}}, values)
}

func TestScanHeaderFieldOnlyAtLineStart(t *testing.T) {
	err := scanErr("A T:title")
	assert.True(t, model.IsKind(err, model.GrammarError))
}

func TestScanChord(t *testing.T) {
	_, values := scanAll(t, "[CEG] A")
	require.Len(t, values, 2)

	chord, ok := values[0].(model.Chord)
	require.True(t, ok)

	assert := assert.New(t)
	assert.Len(chord.Notes, 3)
	assert.Equal(model.NewFraction(1, 1), chord.Length)
	assert.Equal(byte('A'), values[1].(model.NoteValue).Letter)
}

func TestScanChordWithLengths(t *testing.T) {
	_, values := scanAll(t, "[C2E2G2]")
	require.Len(t, values, 1)
	assert.Equal(t, model.NewFraction(2, 1), values[0].(model.Note).Duration())
}

func TestScanTupletTakesExactlyItsMembers(t *testing.T) {
	_, values := scanAll(t, "(3abcd")
	require.Len(t, values, 2)

	tuplet, ok := values[0].(model.Tuplet)
	require.True(t, ok)

	assert := assert.New(t)
	assert.Equal(3, tuplet.Size)
	assert.Len(tuplet.Members, 3)
	assert.Equal(byte('d'), values[1].(model.NoteValue).Letter)
}

func TestScanTupletWithChord(t *testing.T) {
	_, values := scanAll(t, "(3[ce]ga")
	require.Len(t, values, 1)

	tuplet := values[0].(model.Tuplet)
	_, isChord := tuplet.Members[0].(model.Chord)
	assert.True(t, isChord)
	assert.Len(t, tuplet.Members, 3)
}

func TestScanErrors(t *testing.T) {
	cases := map[string]model.ErrorKind{
		"h":         model.GrammarError,
		"[]":        model.GrammarError,
		"||||:::|":  model.GrammarError,
		"^z":        model.GrammarError,
		"^_B":       model.GrammarError,
		"==B":       model.GrammarError,
		"*G":        model.GrammarError,
		"A0":        model.GrammarError,
		"(5abced":   model.GrammarError,
		"(3g//2ab4": model.GrammarError,
		"(3ab(2ab":  model.StructureError,
		"(4abc":     model.StructureError,
		"(3azb":     model.StructureError,
		"[A[Bc]e]":  model.StructureError,
		"[Az]":      model.StructureError,
		"[A2B]":     model.StructureError,
		"[AB|":      model.StructureError,
	}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			err := scanErr(input)
			require.Error(t, err)
			assert.True(t, model.IsKind(err, want), err.Error())
		})
	}
}

func TestScanErrorOffsets(t *testing.T) {
	var e *model.Error

	assert := assert.New(t)
	assert.ErrorAs(scanErr("A B h"), &e)
	assert.Equal(3, e.Offset)

	assert.ErrorAs(scanErr("A [A[Bc]e]"), &e)
	assert.Equal(4, e.Offset)
	assert.Equal(model.ChordToken, e.Found)
}
