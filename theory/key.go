package theory

import (
	"github.com/jsphweid/abcplay/model"
)

// number of sharps (positive) or flats (negative) in each legal key
var majorFifths = map[string]int{
	"Cb": -7, "Gb": -6, "Db": -5, "Ab": -4, "Eb": -3, "Bb": -2, "F": -1,
	"C": 0,
	"G": 1, "D": 2, "A": 3, "E": 4, "B": 5, "F#": 6, "C#": 7,
}

var minorFifths = map[string]int{
	"Abm": -7, "Ebm": -6, "Bbm": -5, "Fm": -4, "Cm": -3, "Gm": -2, "Dm": -1,
	"Am": 0,
	"Em": 1, "Bm": 2, "F#m": 3, "C#m": 4, "G#m": 5, "D#m": 6, "A#m": 7,
}

const sharpOrder = "FCGDAEB"

// Signature maps an uppercase letter to the semitone shift the key applies
// to it. Letters the key leaves alone are absent.
type Signature map[byte]int

func Fifths(k model.Key) (int, error) {
	name := k.String()
	table := majorFifths
	if k.Minor() {
		table = minorFifths
	}
	fifths, ok := table[name]
	if !ok {
		return 0, model.Errorf(model.ConfigurationError, -1, model.FieldKey, "%s is not a playable key", name)
	}
	return fifths, nil
}

func SignatureOf(k model.Key) (Signature, error) {
	fifths, err := Fifths(k)
	if err != nil {
		return nil, err
	}
	sig := Signature{}
	for i := 0; i < fifths; i++ {
		sig[sharpOrder[i]] = 1
	}
	for i := 0; i < -fifths; i++ {
		sig[sharpOrder[len(sharpOrder)-1-i]] = -1
	}
	return sig, nil
}
