package midi

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Sink receives the finished SMF of a piece
type Sink interface {
	Write(mf *smf.SMF) error
}

type FileSink struct {
	Path string
}

func (f FileSink) Write(mf *smf.SMF) error {
	if err := mf.WriteFile(f.Path); err != nil {
		return fmt.Errorf("writing %s: %w", f.Path, err)
	}
	slog.Info("wrote midi file", "path", f.Path)
	return nil
}

type WriterSink struct {
	W io.Writer
}

func (w WriterSink) Write(mf *smf.SMF) error {
	_, err := mf.WriteTo(w.W)
	return err
}

// Capture keeps the SMF for the caller
type Capture struct {
	SMF *smf.SMF
}

func (c *Capture) Write(mf *smf.SMF) error {
	c.SMF = mf
	return nil
}

// PortSink plays the SMF in real time on a MIDI output port. A driver must
// be registered by importing one, e.g. rtmididrv.
type PortSink struct {
	Port int
}

func (p PortSink) Write(mf *smf.SMF) error {
	out, err := midi.OutPort(p.Port)
	if err != nil {
		return fmt.Errorf("opening midi port %d: %w", p.Port, err)
	}
	var buf bytes.Buffer
	if _, err := mf.WriteTo(&buf); err != nil {
		return err
	}
	slog.Info("playing", "port", out.String())
	return smf.ReadTracksFrom(&buf).Play(out)
}
