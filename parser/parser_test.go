package parser

import (
	"strings"
	"testing"

	"github.com/jsphweid/abcplay/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// letters renders the notes of a voice as "A B c", ignoring lengths
func letters(v model.Voice) string {
	var res []string
	for _, n := range v.Notes() {
		switch n := n.(type) {
		case model.NoteValue:
			res = append(res, string(n.Letter))
		case model.Rest:
			res = append(res, "z")
		case model.Chord:
			res = append(res, n.String())
		}
	}
	return strings.Join(res, " ")
}

func TestParseScale(t *testing.T) {
	piece, err := Parse("X:1\nT:Scale\nM:4/4\nL:1/4\nQ:120\nK:C\nC D E F|G A B c|]")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("1", piece.ID)
	assert.Equal("Scale", piece.Title)
	assert.Equal(120, piece.Tempo)
	assert.Equal(model.NewFraction(1, 4), piece.DefaultLength)
	require.Len(t, piece.Voices, 1)

	voice := piece.Voices[0]
	assert.Equal("default", voice.Name)
	assert.Len(voice.Measures(), 2)
	assert.Equal("C D E F G A B c", letters(voice))

	notes := voice.Notes()
	first, last := notes[0].(model.NoteValue), notes[7].(model.NoteValue)
	assert.Equal(byte('C'), first.Letter)
	assert.Equal(byte('c'), last.Letter)
}

func TestParseHeaderDefaults(t *testing.T) {
	piece, err := Parse("X:3\nT:Defaults\nK:G\nGABc|")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(100, piece.Tempo)
	assert.Equal(model.NewFraction(1, 8), piece.DefaultLength)
	assert.Equal(model.NewFraction(4, 4), piece.Meter)
	assert.Equal("Unknown", piece.Composer)
	assert.Equal("G", piece.Key.String())
}

func TestParseRepeatEndings(t *testing.T) {
	piece, err := Parse("X:1\nT:t\nM:4/4\nL:1/4\nK:C\nA B|1 C D:|2 E F|]")
	require.NoError(t, err)

	assert.Equal(t, "A B C D A B E F", letters(piece.Voices[0]))
}

func TestParseCloseRepeatKeepsPending(t *testing.T) {
	piece, err := Parse("X:1\nT:t\nL:1/4\nK:C\n|: A B C D :| E F G A |]")
	require.NoError(t, err)

	voice := piece.Voices[0]
	assert := assert.New(t)
	assert.Len(voice.Sections, 2)
	assert.Equal("A B C D A B C D E F G A", letters(voice))
}

func TestParseCommitDoesNotAlias(t *testing.T) {
	piece, err := Parse("X:1\nT:t\nL:1/4\nK:C\nA B|1 C D:|2 E F|]")
	require.NoError(t, err)

	sections := piece.Voices[0].Sections
	require.Len(t, sections, 2)
	sections[1].Measures[0].Notes[0] = model.Rest{Length: model.NewFraction(1, 1)}

	assert.Equal(t, byte('A'), sections[0].Measures[0].Notes[0].(model.NoteValue).Letter)
}

func TestParseMissingFinalBarline(t *testing.T) {
	piece, err := Parse("X:1\nT:t\nK:C\nA B c d|e f")
	require.NoError(t, err)

	voice := piece.Voices[0]
	assert := assert.New(t)
	assert.Len(voice.Sections, 1)
	assert.Len(voice.Measures(), 2)
	assert.Equal("A B c d e f", letters(voice))
}

func TestParseEmptyBody(t *testing.T) {
	piece, err := Parse("X:1\nT:t\nK:C\n")
	require.NoError(t, err)

	require.Len(t, piece.Voices, 1)
	assert.Len(t, piece.Voices[0].Sections, 1)
	assert.Empty(t, piece.Voices[0].Notes())
}

func TestParseVoices(t *testing.T) {
	src := "X:1\nT:Duet\nL:1/4\nV:upper\nV:lower\nK:C\n" +
		"V:upper\nc d e f|g4|]\n" +
		"V:lower\nC, D, E, F,|G,4|]\n"
	piece, err := Parse(src)
	require.NoError(t, err)

	require.Len(t, piece.Voices, 2)
	assert := assert.New(t)
	assert.Equal("upper", piece.Voices[0].Name)
	assert.Equal("lower", piece.Voices[1].Name)
	assert.Equal("c d e f g", letters(piece.Voices[0]))
	assert.Equal("C D E F G", letters(piece.Voices[1]))
	assert.Equal([]string{"upper", "lower"}, piece.Metadata().Voices)
}

func TestParseTupletIsFlattened(t *testing.T) {
	piece, err := Parse("X:1\nT:t\nM:2/4\nL:1/8\nK:C\n(3abc d2|]")
	require.NoError(t, err)

	measures := piece.Voices[0].Measures()
	require.Len(t, measures, 1)

	assert := assert.New(t)
	assert.Len(measures[0].Notes, 4)
	for _, n := range measures[0].Notes[:3] {
		assert.True(n.Duration().Equal(model.NewFraction(2, 3)))
	}
	// the triplet fills the time of two eighths, leaving room for d2
	assert.True(measures[0].Duration().Equal(model.NewFraction(4, 1)))
}

func TestParseChordAndRest(t *testing.T) {
	piece, err := Parse("X:1\nT:t\nL:1/4\nK:C\n[CEG] z [DF]2 |]")
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.GrammarError))

	piece, err = Parse("X:1\nT:t\nL:1/4\nK:C\n[CEG] z [D2F2] |]")
	require.NoError(t, err)
	assert.Equal(t, "[C1/1E1/1G1/1] z [D2/1F2/1]", letters(piece.Voices[0]))
}

func TestParseComments(t *testing.T) {
	piece, err := Parse("% leading comment\nX:1\nT:t\n% in the header\nK:C\nA B % trailing\nc d|]")
	require.NoError(t, err)
	assert.Equal(t, "A B c d", letters(piece.Voices[0]))
}

func TestParseOverfullMeasure(t *testing.T) {
	_, err := Parse("X:1\nT:t\nM:6/8\nL:1/8\nK:C\naaaaaaa|]")
	require.Error(t, err)

	var e *model.Error
	assert := assert.New(t)
	assert.ErrorAs(err, &e)
	assert.Equal(model.DurationError, e.Kind)
	assert.Equal(model.NoteToken, e.Found)
	assert.Equal(len("X:1\nT:t\nM:6/8\nL:1/8\nK:C\naaaaaa"), e.Offset)
}

func TestParseUnderfullMeasureIsLegal(t *testing.T) {
	_, err := Parse("X:1\nT:t\nM:4/4\nL:1/4\nK:C\nG|A B c d|]")
	assert.NoError(t, err)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		src  string
		kind model.ErrorKind
	}{
		"length twice":       {"X:1\nT:t\nL:1/4\nL:1/4\nK:C\nA|", model.ConfigurationError},
		"meter twice":        {"X:1\nT:t\nM:3/4\nM:4/4\nK:C\nA|", model.ConfigurationError},
		"tempo twice":        {"X:1\nT:t\nQ:90\nQ:120\nK:C\nA|", model.ConfigurationError},
		"missing number":     {"T:t\nK:C\nA|", model.ConfigurationError},
		"missing title":      {"X:1\nK:C\nA|", model.ConfigurationError},
		"missing key":        {"X:1\nT:t\nA|", model.ConfigurationError},
		"empty":              {"", model.ConfigurationError},
		"voice twice":        {"X:1\nT:t\nV:a\nV:a\nK:C\nA|", model.ConfigurationError},
		"unknown voice":      {"X:1\nT:t\nV:a\nK:C\nV:b\nA|", model.ConfigurationError},
		"nested chord":       {"X:1\nT:t\nK:C\n[A[Bc]e]|", model.StructureError},
		"nested tuplet":      {"X:1\nT:t\nK:C\n(3ab(2ab|", model.StructureError},
		"overfull tuplet":    {"X:1\nT:t\nM:2/4\nL:1/8\nK:C\nabc(3abc|", model.DurationError},
		"meter in body":      {"X:1\nT:t\nK:C\nA|\nM:3/4\nA|", model.GrammarError},
		"unknown token":      {"X:1\nT:t\nK:C\nA & B|", model.GrammarError},
		"voice in first end": {"X:1\nT:t\nV:a\nV:b\nK:C\nA|1 B\nV:b\nc:|2 d|]", model.StructureError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(tc.src)
			require.Error(t, err)
			assert.True(t, model.IsKind(err, tc.kind), err.Error())
		})
	}
}

func TestPendingSnapshotRestore(t *testing.T) {
	var p pending
	a := model.Measure{Notes: []model.Note{model.NoteValue{Letter: 'A', Length: model.NewFraction(1, 1)}}}
	b := model.Measure{Notes: []model.Note{model.NoteValue{Letter: 'B', Length: model.NewFraction(1, 1)}}}

	p.add(a)
	snap := p.snapshot()
	p.add(b)
	committed := p.commit()
	p.restore(snap)

	assert := assert.New(t)
	assert.Len(committed.Measures, 2)
	assert.Len(p.measures, 1)

	p.measures[0].Notes[0] = model.Rest{Length: model.NewFraction(1, 1)}
	assert.Equal(byte('A'), committed.Measures[0].Notes[0].(model.NoteValue).Letter)
	assert.Equal(byte('A'), snap[0].Notes[0].(model.NoteValue).Letter)

	p.clear()
	assert.True(p.empty())
}
