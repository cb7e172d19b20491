package render

import (
	"fmt"

	"github.com/jsphweid/abcplay/midi"
	"github.com/jsphweid/abcplay/model"
	"github.com/jsphweid/abcplay/parser"
	"github.com/jsphweid/abcplay/sample"
	"github.com/jsphweid/abcplay/theory"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Result is everything produced from one tune
type Result struct {
	Piece  *model.Piece
	Timing theory.Timing
	SMF    *smf.SMF
}

// Options controls how a tune is turned into MIDI. FromTick and MaxNotes
// cut an excerpt out of the rendered file when either is set.
type Options struct {
	TicksPerUnit int
	FromTick     uint64
	MaxNotes     int
}

// Tune parses and translates src, then sequences it into an SMF
func Tune(src string, opts Options) (*Result, error) {
	piece, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	timing := theory.TimingOf(piece, opts.TicksPerUnit)
	tr, err := theory.New(piece, timing)
	if err != nil {
		return nil, err
	}

	var capture midi.Capture
	if err := tr.Translate(midi.NewSequencer(piece, timing, &capture)); err != nil {
		return nil, fmt.Errorf("sequencing %q: %w", piece.Title, err)
	}

	mf := capture.SMF
	if opts.FromTick > 0 || opts.MaxNotes > 0 {
		mf = sample.Create(mf, opts.FromTick, opts.MaxNotes)
	}
	return &Result{Piece: piece, Timing: timing, SMF: mf}, nil
}

// Play parses src and hands the sequenced piece straight to sink
func Play(src string, ticksPerUnit int, sink midi.Sink) (*model.Piece, error) {
	piece, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	timing := theory.TimingOf(piece, ticksPerUnit)
	tr, err := theory.New(piece, timing)
	if err != nil {
		return nil, err
	}
	return piece, tr.Translate(midi.NewSequencer(piece, timing, sink))
}

// Summary is the JSON view of a tune served by the HTTP service
func Summary(src string, ticksPerUnit int) (*model.ParseResponse, error) {
	piece, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	events, timing, err := theory.Events(piece, ticksPerUnit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.Event{}
	}
	return &model.ParseResponse{
		Piece:           piece.Metadata(),
		TicksPerQuarter: timing.TicksPerQuarter,
		BeatsPerMinute:  timing.BeatsPerMinute,
		Events:          events,
	}, nil
}
