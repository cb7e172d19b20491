package model

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	// GrammarError: a token of an unexpected kind, or text no token matches
	GrammarError ErrorKind = iota + 1
	// ConfigurationError: header field set twice or missing, bad key, unknown voice
	ConfigurationError
	// DurationError: a measure runs past the meter
	DurationError
	// StructureError: chord or tuplet with illegal members
	StructureError
)

func (k ErrorKind) String() string {
	switch k {
	case GrammarError:
		return "grammar error"
	case ConfigurationError:
		return "configuration error"
	case DurationError:
		return "duration error"
	case StructureError:
		return "structure error"
	}
	return "error"
}

// Error is the only error type produced while scanning, parsing or
// translating a tune. Offset is a byte offset into the source text, or -1
// when the failure has no location (e.g. a bad key found during translation).
type Error struct {
	Kind   ErrorKind
	Offset int
	Found  TokenKind
	Msg    string
}

func (e *Error) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	if e.Found == NoToken {
		return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Offset, e.Msg)
	}
	return fmt.Sprintf("%s at offset %d (found %s): %s", e.Kind, e.Offset, e.Found, e.Msg)
}

func Errorf(kind ErrorKind, offset int, found TokenKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Offset: offset, Found: found, Msg: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err wraps a *Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Shift moves the offset of a *Error found by a sub-scanner into the
// coordinates of its parent. Other errors pass through untouched.
func Shift(err error, by int) error {
	var e *Error
	if errors.As(err, &e) && e.Offset >= 0 {
		shifted := *e
		shifted.Offset += by
		return &shifted
	}
	return err
}
