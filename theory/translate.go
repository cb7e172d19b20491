package theory

import (
	"github.com/jsphweid/abcplay/constants"
	"github.com/jsphweid/abcplay/model"
	"github.com/jsphweid/abcplay/util"
)

// Player receives the pitch events of a piece. Play is called once, after
// every voice has been added.
type Player interface {
	AddNote(pitch, startTick, numTicks int)
	Play() error
}

// Timing converts durations in default-length units to ticks
type Timing struct {
	BeatsPerMinute  float64
	TicksPerQuarter int
	DefaultLength   model.Fraction
}

// TimingOf reads Q: as default lengths per minute and gives every default
// length ticksPerUnit ticks
func TimingOf(piece *model.Piece, ticksPerUnit int) Timing {
	l := piece.DefaultLength
	tpq := util.Max(ticksPerUnit*l.Den/(4*l.Num), 1)
	return Timing{
		BeatsPerMinute:  float64(piece.Tempo) * 4 * float64(l.Num) / float64(l.Den),
		TicksPerQuarter: tpq,
		DefaultLength:   l,
	}
}

// Ticks is the duration in quarters times TicksPerQuarter, truncated
func (t Timing) Ticks(dur model.Fraction) int {
	num := dur.Num * t.DefaultLength.Num * 4 * t.TicksPerQuarter
	den := dur.Den * t.DefaultLength.Den
	return num / den
}

var semitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

type noteKey struct {
	letter byte
	octave int
}

// accidentals remembers explicit accidentals until the end of a measure
type accidentals map[noteKey]int

type Translator struct {
	piece  *model.Piece
	timing Timing
	sig    Signature
}

// New fails with a ConfigurationError when the piece's key is not one of
// the fifteen major or minor keys
func New(piece *model.Piece, timing Timing) (*Translator, error) {
	sig, err := SignatureOf(piece.Key)
	if err != nil {
		return nil, err
	}
	return &Translator{piece: piece, timing: timing, sig: sig}, nil
}

// pitch resolves the MIDI number of n. An explicit accidental wins and is
// remembered for the rest of the measure, then a remembered one, then the
// key signature.
func (t *Translator) pitch(n model.NoteValue, memory accidentals) int {
	letter, octave := n.Letter, n.Octave
	if letter >= 'a' && letter <= 'g' {
		letter = letter - 'a' + 'A'
		octave++
	}
	key := noteKey{letter: letter, octave: octave}

	acc := t.sig[letter]
	if n.HasAccidental {
		memory[key] = n.Accidental
		acc = n.Accidental
	} else if remembered, ok := memory[key]; ok {
		acc = remembered
	}
	return constants.MiddleC + semitones[letter] + 12*octave + acc
}

// Translate emits every voice to p, each with its own time cursor starting
// at zero, then calls p.Play
func (t *Translator) Translate(p Player) error {
	for _, voice := range t.piece.Voices {
		cursor := model.Zero
		for _, m := range voice.Measures() {
			memory := accidentals{}
			for _, n := range m.Notes {
				cursor = t.emit(p, n, cursor, memory)
			}
		}
	}
	return p.Play()
}

func (t *Translator) emit(p Player, n model.Note, cursor model.Fraction, memory accidentals) model.Fraction {
	start := t.timing.Ticks(cursor)
	switch v := n.(type) {
	case model.NoteValue:
		p.AddNote(t.pitch(v, memory), start, t.timing.Ticks(v.Length))
	case model.Chord:
		ticks := t.timing.Ticks(v.Length)
		for _, member := range v.Notes {
			p.AddNote(t.pitch(member, memory), start, ticks)
		}
	case model.Tuplet:
		for _, member := range v.Expand() {
			cursor = t.emit(p, member, cursor, memory)
		}
		return cursor
	}
	return cursor.Add(n.Duration())
}

// Recorder is a Player that keeps the events it is given
type Recorder struct {
	Events []model.Event
	Played bool
}

func (r *Recorder) AddNote(pitch, startTick, numTicks int) {
	r.Events = append(r.Events, model.Event{Pitch: pitch, StartTick: startTick, Ticks: numTicks})
}

func (r *Recorder) Play() error {
	r.Played = true
	return nil
}

// Events translates piece and returns what a Recorder collects, in the
// order the voices emitted it
func Events(piece *model.Piece, ticksPerUnit int) ([]model.Event, Timing, error) {
	timing := TimingOf(piece, ticksPerUnit)
	tr, err := New(piece, timing)
	if err != nil {
		return nil, timing, err
	}
	var rec Recorder
	if err := tr.Translate(&rec); err != nil {
		return nil, timing, err
	}
	return rec.Events, timing, nil
}
