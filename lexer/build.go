package lexer

import (
	"strings"

	"github.com/jsphweid/abcplay/model"
)

func buildNote(raw string, offset int) (model.Note, error) {
	ts := NewTerminalScanner(raw, 0)
	var n model.NoteValue

	if ts.Has(AccidentalMark) {
		n.Accidental = ts.Accidental()
		n.HasAccidental = true
	}
	if !ts.Has(BaseNote) {
		return nil, model.Errorf(model.GrammarError, offset, model.NoteToken, "note %q has no base note", raw)
	}
	n.Letter = ts.BaseNote()
	if ts.Has(Octave) {
		n.Octave = ts.Octave()
	}

	length, err := readLength(ts, raw, offset)
	if err != nil {
		return nil, err
	}
	n.Length = length
	return n, nil
}

func buildRest(raw string, offset int) (model.Note, error) {
	ts := NewTerminalScanner(raw, 0)
	if !ts.Has(RestMark) {
		return nil, model.Errorf(model.GrammarError, offset, model.RestToken, "rest %q has no z", raw)
	}
	ts.Rest()
	length, err := readLength(ts, raw, offset)
	if err != nil {
		return nil, err
	}
	return model.Rest{Length: length}, nil
}

// readLength reads the optional num[/[den]] suffix. A missing numerator is
// 1, a missing fraction gives den 1 and a bare '/' means den 2.
func readLength(ts *TerminalScanner, raw string, offset int) (model.Fraction, error) {
	num, den := 1, 1
	var err error
	if ts.Has(Digit) {
		if num, err = ts.Digit(); err != nil {
			return model.Fraction{}, model.Errorf(model.GrammarError, offset, model.NoteToken, "bad length in %q", raw)
		}
	}
	if ts.Has(FractionMark) {
		ts.Fraction()
		den = 2
		if ts.Has(Digit) {
			if den, err = ts.Digit(); err != nil {
				return model.Fraction{}, model.Errorf(model.GrammarError, offset, model.NoteToken, "bad length in %q", raw)
			}
		}
	}
	if num == 0 || den == 0 {
		return model.Fraction{}, model.Errorf(model.GrammarError, offset, model.NoteToken, "zero length in %q", raw)
	}
	return model.NewFraction(num, den), nil
}

func fieldText(raw string, skip int) string {
	ts := NewTerminalScanner(raw, skip)
	if ts.Has(Text) {
		return ts.Text()
	}
	return ""
}

func buildRatio(kind model.TokenKind, raw string, offset int) (model.Field, error) {
	value := strings.TrimSpace(raw[2:])
	switch value {
	case "C":
		return model.Ratio{Of: kind, Value: model.NewFraction(4, 4)}, nil
	case "C|":
		return model.Ratio{Of: kind, Value: model.NewFraction(2, 2)}, nil
	}

	ts := NewTerminalScanner(raw, 2)
	if !ts.Has(Digit) {
		return nil, model.Errorf(model.GrammarError, offset, kind, "%q has no numerator", raw)
	}
	num, err := ts.Digit()
	if err != nil {
		return nil, model.Errorf(model.GrammarError, offset, kind, "bad numerator in %q", raw)
	}
	if !ts.Has(FractionMark) {
		return nil, model.Errorf(model.GrammarError, offset, kind, "%q has no fraction bar", raw)
	}
	ts.Fraction()
	if !ts.Has(Digit) {
		return nil, model.Errorf(model.GrammarError, offset, kind, "%q has no denominator", raw)
	}
	den, err := ts.Digit()
	if err != nil || den == 0 || num == 0 {
		return nil, model.Errorf(model.GrammarError, offset, kind, "bad fraction in %q", raw)
	}
	return model.Ratio{Of: kind, Value: model.NewFraction(num, den)}, nil
}

func buildTempo(raw string, offset int) (model.Field, error) {
	ts := NewTerminalScanner(raw, 2)
	if !ts.Has(Digit) {
		return nil, model.Errorf(model.GrammarError, offset, model.FieldTempo, "tempo %q has no beats per minute", raw)
	}
	bpm, err := ts.Digit()
	if err != nil || bpm == 0 {
		return nil, model.Errorf(model.GrammarError, offset, model.FieldTempo, "bad tempo %q", raw)
	}
	return model.Tempo{BPM: bpm}, nil
}

func buildKey(raw string, offset int) (model.Field, error) {
	ts := NewTerminalScanner(raw, 2)
	if !ts.Has(BaseNote) {
		return nil, model.Errorf(model.GrammarError, offset, model.FieldKey, "key %q has no base note", raw)
	}
	note := model.NoteValue{Letter: upper(ts.BaseNote()), Length: model.NewFraction(1, 1)}
	if ts.Has(KeyAccidental) {
		note.Accidental = ts.KeyAccidental()
	}
	if ts.Has(ModeMinor) {
		note.Octave = ts.ModeMinor()
	}
	return model.Key{Note: note}, nil
}

func buildBarline(raw string, offset int) (model.Field, error) {
	switch raw {
	case "|":
		return model.Barline{Style: model.BarPlain}, nil
	case "||":
		return model.Barline{Style: model.BarDouble}, nil
	case "|]":
		return model.Barline{Style: model.BarFinal}, nil
	case ":|":
		return model.Barline{Style: model.BarCloseRepeat}, nil
	case "|:":
		return model.Barline{Style: model.BarOpenRepeat}, nil
	case "[|":
		return model.Barline{Style: model.BarThickThin}, nil
	}
	return nil, model.Errorf(model.GrammarError, offset, model.BarlineToken, "unknown barline %q", raw)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
