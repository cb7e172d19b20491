package parser

import (
	"github.com/jsphweid/abcplay/constants"
	"github.com/jsphweid/abcplay/lexer"
	"github.com/jsphweid/abcplay/model"
)

type voiceState struct {
	index   int
	pending pending
	measure model.Measure
	elapsed model.Fraction
}

type Parser struct {
	s       *lexer.Scanner
	piece   *model.Piece
	voices  map[string]*voiceState
	current *voiceState
}

// Parse builds a Piece out of a whole tune. Parsing stops at the first
// error, which is always a *model.Error.
func Parse(src string) (*model.Piece, error) {
	p := &Parser{
		s:      lexer.New(src),
		piece:  &model.Piece{},
		voices: map[string]*voiceState{},
	}
	if err := p.header(); err != nil {
		return nil, err
	}
	if err := p.section(0); err != nil {
		return nil, err
	}
	p.finish()
	return p.piece, nil
}

// headerField returns the next field of the header, skipping blank lines
// and comments. It returns nil at the end of input or at the first note.
func (p *Parser) headerField() (model.Field, error) {
	for !p.s.Done() {
		kind, err := p.s.Peek()
		if err != nil {
			return nil, err
		}
		switch {
		case kind == model.EndOfLine:
			if err := p.s.NextEndOfLine(); err != nil {
				return nil, err
			}
		case kind == model.CommentToken:
			if _, err := p.s.NextField(); err != nil {
				return nil, err
			}
		case kind.IsNote():
			return nil, nil
		default:
			return p.s.NextField()
		}
	}
	return nil, nil
}

func (p *Parser) header() error {
	offset := p.s.Offset()
	f, err := p.headerField()
	if err != nil {
		return err
	}
	id, ok := f.(model.Text)
	if !ok || id.Of != model.FieldNumber {
		return model.Errorf(model.ConfigurationError, offset, kindOf(f), "tune must start with X:")
	}
	p.piece.ID = id.Value

	offset = p.s.Offset()
	if f, err = p.headerField(); err != nil {
		return err
	}
	title, ok := f.(model.Text)
	if !ok || title.Of != model.FieldTitle {
		return model.Errorf(model.ConfigurationError, offset, kindOf(f), "T: must follow X:")
	}
	p.piece.Title = title.Value

	seen := map[model.TokenKind]bool{}
	var names []string
	for {
		offset = p.s.Offset()
		if f, err = p.headerField(); err != nil {
			return err
		}
		if f == nil {
			return model.Errorf(model.ConfigurationError, offset, model.NoToken, "header has no K: field")
		}

		kind := f.Kind()
		if kind == model.FieldKey {
			p.piece.Key = f.(model.Key)
			break
		}
		switch kind {
		case model.FieldDefaultLength, model.FieldMeter, model.FieldTempo, model.FieldComposer:
			if seen[kind] {
				return model.Errorf(model.ConfigurationError, offset, kind, "%s is set twice", kind)
			}
			seen[kind] = true
		}

		switch v := f.(type) {
		case model.Ratio:
			if v.Of == model.FieldDefaultLength {
				p.piece.DefaultLength = v.Value
			} else {
				p.piece.Meter = v.Value
			}
		case model.Tempo:
			p.piece.Tempo = v.BPM
		case model.Text:
			switch v.Of {
			case model.FieldComposer:
				p.piece.Composer = v.Value
			case model.FieldVoice:
				if _, dup := p.voices[v.Value]; dup {
					return model.Errorf(model.ConfigurationError, offset, kind, "voice %q is declared twice", v.Value)
				}
				p.voices[v.Value] = &voiceState{index: len(names), elapsed: model.Zero}
				names = append(names, v.Value)
			}
		}
	}

	if len(names) == 0 {
		names = append(names, constants.ImplicitVoiceName)
		p.voices[constants.ImplicitVoiceName] = &voiceState{elapsed: model.Zero}
	}
	for _, name := range names {
		p.piece.Voices = append(p.piece.Voices, model.Voice{Name: name})
	}
	p.current = p.voices[names[0]]

	p.applyDefaults(seen)
	return nil
}

func (p *Parser) applyDefaults(seen map[model.TokenKind]bool) {
	if !seen[model.FieldDefaultLength] {
		p.piece.DefaultLength = model.NewFraction(constants.DefaultLengthNum, constants.DefaultLengthDen)
	}
	if !seen[model.FieldMeter] {
		p.piece.Meter = model.NewFraction(constants.DefaultMeterNum, constants.DefaultMeterDen)
	}
	if !seen[model.FieldTempo] {
		p.piece.Tempo = constants.DefaultTempo
	}
	if !seen[model.FieldComposer] {
		p.piece.Composer = constants.DefaultComposer
	}
}

// section reads body tokens until the input ends or, inside a first
// ending (depth > 0), until the second ending marker is reached.
//
// A plain barline only closes the measure. A close repeat commits the
// pending measures and keeps them, so a following section replays them.
// Every other barline commits and clears. A first ending snapshots the
// pending measures, reads the first ending through a nested call, then
// restores the snapshot so the second ending follows the shared measures.
func (p *Parser) section(depth int) error {
	for !p.s.Done() {
		offset := p.s.Offset()
		kind, err := p.s.Peek()
		if err != nil {
			return err
		}

		if kind == model.EndOfLine {
			if err := p.s.NextEndOfLine(); err != nil {
				return err
			}
			continue
		}
		if kind.IsNote() {
			if err := p.note(offset); err != nil {
				return err
			}
			continue
		}

		f, err := p.s.NextField()
		if err != nil {
			return err
		}
		switch v := f.(type) {
		case model.Barline:
			v0 := p.current
			p.closeMeasure()
			switch v.Style {
			case model.BarPlain:
			case model.BarCloseRepeat:
				p.commit(v0)
			default:
				p.commit(v0)
				v0.pending.clear()
			}
		case model.Ending:
			p.closeMeasure()
			if v.Number == 2 {
				if depth > 0 {
					return nil
				}
				continue
			}
			v0 := p.current
			snap := v0.pending.snapshot()
			if err := p.section(depth + 1); err != nil {
				return err
			}
			if p.current != v0 {
				return model.Errorf(model.StructureError, offset, model.RepeatToken, "voice changed inside a first ending")
			}
			v0.pending.restore(snap)
		case model.Text:
			switch v.Of {
			case model.CommentToken:
			case model.FieldVoice:
				if err := p.switchVoice(v.Value, offset); err != nil {
					return err
				}
			default:
				return model.Errorf(model.GrammarError, offset, v.Of, "%s is only allowed in the header", v.Of)
			}
		default:
			return model.Errorf(model.GrammarError, offset, f.Kind(), "%s is only allowed in the header", f.Kind())
		}
	}
	return nil
}

func (p *Parser) switchVoice(name string, offset int) error {
	next, ok := p.voices[name]
	if !ok {
		return model.Errorf(model.ConfigurationError, offset, model.FieldVoice, "voice %q was never declared", name)
	}
	p.closeMeasure()
	p.current = next
	return nil
}

// note adds the next note to the open measure of the current voice. A
// tuplet is flattened into its scaled members.
func (p *Parser) note(offset int) error {
	n, err := p.s.NextNote()
	if err != nil {
		return err
	}
	v := p.current
	elapsed := v.elapsed.Add(n.Duration().Mul(p.piece.DefaultLength))
	if elapsed.Cmp(p.piece.Meter) > 0 {
		return model.Errorf(model.DurationError, offset, kindOfNote(n),
			"measure lasts %s, longer than the meter %s", elapsed, p.piece.Meter)
	}
	v.elapsed = elapsed

	if t, ok := n.(model.Tuplet); ok {
		v.measure.Notes = append(v.measure.Notes, t.Expand()...)
	} else {
		v.measure.Notes = append(v.measure.Notes, n)
	}
	return nil
}

// closeMeasure moves the open measure of the current voice into its
// pending buffer. Empty measures are dropped.
func (p *Parser) closeMeasure() {
	v := p.current
	if len(v.measure.Notes) > 0 {
		v.pending.add(v.measure)
	}
	v.measure = model.Measure{}
	v.elapsed = model.Zero
}

func (p *Parser) commit(v *voiceState) {
	if v.pending.empty() {
		return
	}
	voice := &p.piece.Voices[v.index]
	voice.Sections = append(voice.Sections, v.pending.commit())
}

// finish force commits whatever every voice still holds, so music does not
// need a final barline and every voice has at least one section
func (p *Parser) finish() {
	p.closeMeasure()
	for _, v := range p.voices {
		voice := &p.piece.Voices[v.index]
		if !v.pending.empty() || len(voice.Sections) == 0 {
			voice.Sections = append(voice.Sections, v.pending.commit())
			v.pending.clear()
		}
	}
}

func kindOf(f model.Field) model.TokenKind {
	if f == nil {
		return model.NoToken
	}
	return f.Kind()
}

func kindOfNote(n model.Note) model.TokenKind {
	switch n.(type) {
	case model.Rest:
		return model.RestToken
	case model.Chord:
		return model.ChordToken
	case model.Tuplet:
		return model.TupletToken
	}
	return model.NoteToken
}
