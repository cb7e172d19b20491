package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"
)

// ReadFile reads a rendered SMF back from disk
func ReadFile(filepath string) (s *smf.SMF, e error) {
	// smf can panic on truncated files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, e = nil, fmt.Errorf("parsing midi file %s: %v", filepath, r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading midi file: %w", err)
	}
	return Decode(dat)
}

func Decode(dat []byte) (*smf.SMF, error) {
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parsing midi file: %w", err)
	}
	return res, nil
}

// Encode renders mf to bytes
func Encode(mf *smf.SMF) ([]byte, error) {
	if mf == nil {
		return nil, errors.New("no midi file to encode")
	}
	var buf bytes.Buffer
	if _, err := mf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encoding midi file: %w", err)
	}
	return buf.Bytes(), nil
}
