package model

type Notes = []uint8

// Onset groups the keys that start sounding at the same tick of a rendered
// MIDI file. Keys are sorted ascending.
type Onset struct {
	AbsTickOffset uint32
	Notes         Notes
}

// Event is one sounding note handed to a player
type Event struct {
	Pitch     int `json:"pitch"`
	StartTick int `json:"start_tick"`
	Ticks     int `json:"ticks"`
}
