package lexer

import (
	"regexp"
	"strconv"
	"strings"
)

// Terminal is one of the smallest lexical units of a token
type Terminal int

const (
	Digit Terminal = iota
	Text
	FractionMark
	KeyAccidental
	ModeMinor
	Octave
	AccidentalMark
	BaseNote
	RestMark
)

// every pattern allows leading whitespace and is anchored at the cursor
var terminalPatterns = map[Terminal]*regexp.Regexp{
	Digit:          regexp.MustCompile(`^\s*[0-9]+`),
	Text:           regexp.MustCompile(`^\s*[^\n\r]+`),
	FractionMark:   regexp.MustCompile(`^\s*/`),
	KeyAccidental:  regexp.MustCompile(`^\s*[#b]`),
	ModeMinor:      regexp.MustCompile(`^\s*m`),
	Octave:         regexp.MustCompile(`^\s*(?:,+|'+)`),
	AccidentalMark: regexp.MustCompile(`^\s*(?:\^{1,2}|_{1,2}|=)`),
	BaseNote:       regexp.MustCompile(`^\s*[A-Ga-g]`),
	RestMark:       regexp.MustCompile(`^\s*z`),
}

// TerminalScanner reads terminals out of the raw text of a single token.
// Has must be called for a terminal before it is consumed.
type TerminalScanner struct {
	src     string
	pos     int
	queried Terminal
	span    int
}

func NewTerminalScanner(src string, start int) *TerminalScanner {
	if start > len(src) {
		start = len(src)
	}
	return &TerminalScanner{src: src, pos: start, queried: -1}
}

func (t *TerminalScanner) Pos() int   { return t.pos }
func (t *TerminalScanner) Done() bool { return strings.TrimSpace(t.src[t.pos:]) == "" }

// Has reports whether terminal k comes next, after optional whitespace
func (t *TerminalScanner) Has(k Terminal) bool {
	loc := terminalPatterns[k].FindStringIndex(t.src[t.pos:])
	if loc == nil {
		t.queried, t.span = -1, 0
		return false
	}
	t.queried, t.span = k, loc[1]
	return true
}

// take consumes the terminal found by the last Has call
func (t *TerminalScanner) take(k Terminal) string {
	if t.queried != k {
		return ""
	}
	value := t.src[t.pos : t.pos+t.span]
	t.pos += t.span
	t.queried, t.span = -1, 0
	return strings.TrimLeft(value, " \t\r\n")
}

func (t *TerminalScanner) Digit() (int, error) {
	return strconv.Atoi(t.take(Digit))
}

func (t *TerminalScanner) Text() string {
	return strings.TrimSpace(t.take(Text))
}

func (t *TerminalScanner) Fraction() {
	t.take(FractionMark)
}

// KeyAccidental is 1 for '#' and -1 for 'b'
func (t *TerminalScanner) KeyAccidental() int {
	if t.take(KeyAccidental) == "#" {
		return 1
	}
	return -1
}

// ModeMinor returns the octave value used to flag a minor key
func (t *TerminalScanner) ModeMinor() int {
	return -len(t.take(ModeMinor))
}

// Octave is positive for apostrophes and negative for commas
func (t *TerminalScanner) Octave() int {
	value := t.take(Octave)
	if strings.HasPrefix(value, ",") {
		return -len(value)
	}
	return len(value)
}

// Accidental is +n for n '^', -n for n '_' and 0 for '='
func (t *TerminalScanner) Accidental() int {
	value := t.take(AccidentalMark)
	switch {
	case strings.HasPrefix(value, "^"):
		return len(value)
	case strings.HasPrefix(value, "_"):
		return -len(value)
	}
	return 0
}

func (t *TerminalScanner) BaseNote() byte {
	value := t.take(BaseNote)
	if value == "" {
		return 0
	}
	return value[0]
}

func (t *TerminalScanner) Rest() byte {
	value := t.take(RestMark)
	if value == "" {
		return 0
	}
	return value[0]
}
