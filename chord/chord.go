package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/abcplay/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

type reducedEvent struct {
	tick      uint32
	isNoteOff bool
	note      uint8
}

// Key renders notes as an ascending dash separated list, e.g. 60-64-67
func Key(notes model.Notes) string {
	sorted := make(model.Notes, len(notes))
	copy(sorted, notes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	parts := make([]string, len(sorted))
	for i, note := range sorted {
		parts[i] = fmt.Sprintf("%v", note)
	}
	return strings.Join(parts, "-")
}

func reduce(s *smf.SMF) []reducedEvent {
	var res []reducedEvent
	for _, events := range s.Tracks {
		var absTicks uint32
		for _, event := range events {
			absTicks += event.Delta
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				// running status writers encode NoteOff as velocity 0
				res = append(res, reducedEvent{tick: absTicks, isNoteOff: velocity == 0, note: key})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				res = append(res, reducedEvent{tick: absTicks, isNoteOff: true, note: key})
			}
		}
	}

	// earlier ticks first, then note off
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].tick != res[j].tick {
			return res[i].tick < res[j].tick
		}
		return res[i].isNoteOff && !res[j].isNoteOff
	})
	return res
}

// Onsets lists, for every tick where at least one note starts, the keys
// sounding right after that tick. Results are ordered by tick.
func Onsets(s *smf.SMF) []model.Onset {
	var onsets []model.Onset
	pressed := make(map[uint8]int)
	events := reduce(s)

	for i := 0; i < len(events); {
		tick := events[i].tick
		started := false
		for ; i < len(events) && events[i].tick == tick; i++ {
			evt := events[i]
			if evt.isNoteOff {
				if pressed[evt.note] > 1 {
					pressed[evt.note]--
				} else {
					delete(pressed, evt.note)
				}
				continue
			}
			pressed[evt.note]++
			started = true
		}
		if !started || len(pressed) == 0 {
			continue
		}
		notes := make(model.Notes, 0, len(pressed))
		for note := range pressed {
			notes = append(notes, note)
		}
		sort.Slice(notes, func(a, b int) bool { return notes[a] < notes[b] })
		onsets = append(onsets, model.Onset{AbsTickOffset: tick, Notes: notes})
	}
	return onsets
}
