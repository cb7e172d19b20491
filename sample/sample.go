package sample

import (
	"log/slog"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Create cuts an excerpt out of mf. Note events before fromTick are dropped,
// other events (tempo, meter, names) are kept and pulled to the start, and
// the track ends after maxNotes note events. maxNotes <= 0 means no limit.
func Create(mf *smf.SMF, fromTick uint64, maxNotes int) *smf.SMF {
	var res smf.SMF
	slog.Debug("creating excerpt", "timeFormat", mf.TimeFormat, "fromTick", fromTick, "maxNotes", maxNotes)
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks uint64
		// tick of the last kept event, in the source timeline
		var lastKept uint64
		started := false
		var numNoteOnOff int
	TrackEventLoop:
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			switch {
			case evt.Message.Is(midi.NoteOnMsg),
				evt.Message.Is(midi.NoteOffMsg):
				if absTicks < fromTick {
					continue
				}
				base := lastKept
				if !started {
					base, started = fromTick, true
				}
				evt.Delta = uint32(absTicks - base)
				lastKept = absTicks
				newTrack = append(newTrack, evt)
				numNoteOnOff++
				if maxNotes > 0 && numNoteOnOff >= maxNotes {
					break TrackEventLoop
				}
			case isEndOfTrack(evt.Message):
			default:
				evt.Delta = 0
				newTrack = append(newTrack, evt)
			}
		}
		newTrack.Close(0)
		res.Tracks = append(res.Tracks, newTrack)
	}

	return &res
}

func isEndOfTrack(msg smf.Message) bool {
	return len(msg) >= 2 && msg[0] == 0xFF && msg[1] == 0x2F
}
