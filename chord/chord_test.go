package chord

import (
	"testing"

	"github.com/jsphweid/abcplay/model"
	"github.com/stretchr/testify/assert"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func buildSMF(add func(tr *smf.Track)) *smf.SMF {
	var tr smf.Track
	add(&tr)
	tr.Close(0)
	mf := smf.New()
	mf.Add(tr)
	return mf
}

func TestKeySortsNotes(t *testing.T) {
	notes := model.Notes{67, 60, 64}

	assert := assert.New(t)
	assert.Equal("60-64-67", Key(notes))
	assert.Equal(model.Notes{67, 60, 64}, notes)
	assert.Equal("", Key(nil))
}

func TestOnsetsGroupsSimultaneousNotes(t *testing.T) {
	mf := buildSMF(func(tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 64, 100))
		tr.Add(0, midi.NoteOn(0, 60, 100))
		tr.Add(0, midi.NoteOn(0, 67, 100))
		tr.Add(32, midi.NoteOff(0, 60))
		tr.Add(0, midi.NoteOff(0, 64))
		tr.Add(0, midi.NoteOff(0, 67))
		tr.Add(0, midi.NoteOn(0, 62, 100))
		tr.Add(16, midi.NoteOff(0, 62))
	})

	assert.Equal(t, []model.Onset{
		{AbsTickOffset: 0, Notes: model.Notes{60, 64, 67}},
		{AbsTickOffset: 32, Notes: model.Notes{62}},
	}, Onsets(mf))
}

func TestOnsetsIncludeHeldNotes(t *testing.T) {
	mf := buildSMF(func(tr *smf.Track) {
		tr.Add(0, midi.NoteOn(0, 48, 100))
		tr.Add(16, midi.NoteOn(0, 64, 100))
		tr.Add(16, midi.NoteOff(0, 64))
		tr.Add(0, midi.NoteOff(0, 48))
	})

	onsets := Onsets(mf)
	assert := assert.New(t)
	assert.Len(onsets, 2)
	assert.Equal("48-64", Key(onsets[1].Notes))
}
