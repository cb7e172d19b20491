package midi

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/jsphweid/abcplay/constants"
	"github.com/jsphweid/abcplay/model"
	"github.com/jsphweid/abcplay/theory"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type message struct {
	tick int
	off  bool
	key  uint8
}

// Sequencer is a theory.Player that collects notes into a single track SMF
// and hands it to a Sink when played
type Sequencer struct {
	timing theory.Timing
	meter  model.Fraction
	title  string
	sink   Sink

	messages []message
	err      error
}

func NewSequencer(piece *model.Piece, timing theory.Timing, sink Sink) *Sequencer {
	return &Sequencer{timing: timing, meter: piece.Meter, title: piece.Title, sink: sink}
}

// AddNote records a note. Notes without ticks are dropped; a pitch outside
// the MIDI range is kept as an error that Play returns.
func (s *Sequencer) AddNote(pitch, startTick, numTicks int) {
	if pitch < 0 || pitch > 127 {
		if s.err == nil {
			s.err = fmt.Errorf("pitch %d at tick %d is outside the midi range", pitch, startTick)
		}
		return
	}
	if numTicks <= 0 {
		slog.Debug("dropping note without ticks", "pitch", pitch, "tick", startTick)
		return
	}
	key := uint8(pitch)
	s.messages = append(s.messages,
		message{tick: startTick, key: key},
		message{tick: startTick + numTicks, off: true, key: key},
	)
}

// Build encodes the collected notes. At the same tick every NoteOff comes
// before any NoteOn so repeated pitches retrigger.
func (s *Sequencer) Build() (*smf.SMF, error) {
	if s.err != nil {
		return nil, s.err
	}
	msgs := make([]message, len(s.messages))
	copy(msgs, s.messages)
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var track smf.Track
	if s.title != "" {
		track.Add(0, smf.MetaTrackSequenceName(s.title))
	}
	track.Add(0, smf.MetaTempo(s.timing.BeatsPerMinute))
	if num, den, ok := meterBytes(s.meter); ok {
		track.Add(0, smf.MetaMeter(num, den))
	}

	var last int
	for _, m := range msgs {
		delta := uint32(m.tick - last)
		last = m.tick
		if m.off {
			track.Add(delta, midi.NoteOff(0, m.key))
		} else {
			track.Add(delta, midi.NoteOn(0, m.key, constants.DefaultVelocity))
		}
	}
	track.Close(0)

	mf := smf.New()
	mf.TimeFormat = smf.MetricTicks(uint16(s.timing.TicksPerQuarter))
	if err := mf.Add(track); err != nil {
		return nil, fmt.Errorf("adding track: %w", err)
	}
	return mf, nil
}

func (s *Sequencer) Play() error {
	mf, err := s.Build()
	if err != nil {
		return err
	}
	slog.Debug("sequenced piece", "title", s.title, "notes", len(s.messages)/2)
	return s.sink.Write(mf)
}

// meterBytes reports the meter as SMF time signature bytes. SMF can only
// store power of two denominators.
func meterBytes(meter model.Fraction) (uint8, uint8, bool) {
	num, den := meter.Num, meter.Den
	if num <= 0 || num > 255 || den <= 0 || den > 128 || den&(den-1) != 0 {
		return 0, 0, false
	}
	return uint8(num), uint8(den), true
}
