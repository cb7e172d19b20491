package model

type Measure struct {
	Notes []Note
}

// Clone copies the note list. Notes themselves are values and never
// mutated after scanning, so a shallow copy of each is enough.
func (m Measure) Clone() Measure {
	notes := make([]Note, len(m.Notes))
	copy(notes, m.Notes)
	return Measure{Notes: notes}
}

// Duration in default-length units
func (m Measure) Duration() Fraction {
	total := Zero
	for _, n := range m.Notes {
		total = total.Add(n.Duration())
	}
	return total
}

type Section struct {
	Measures []Measure
}

type Voice struct {
	Name     string
	Sections []Section
}

// Notes flattens the voice in playing order
func (v Voice) Notes() []Note {
	var res []Note
	for _, s := range v.Sections {
		for _, m := range s.Measures {
			res = append(res, m.Notes...)
		}
	}
	return res
}

func (v Voice) Measures() []Measure {
	var res []Measure
	for _, s := range v.Sections {
		res = append(res, s.Measures...)
	}
	return res
}

type Piece struct {
	ID            string
	Title         string
	Composer      string
	Key           Key
	DefaultLength Fraction
	Meter         Fraction
	Tempo         int
	Voices        []Voice
}

func (p *Piece) Metadata() PieceMetadata {
	md := PieceMetadata{
		ID:            p.ID,
		Title:         p.Title,
		Composer:      p.Composer,
		Key:           p.Key.String(),
		Meter:         p.Meter.String(),
		DefaultLength: p.DefaultLength.String(),
		Tempo:         p.Tempo,
	}
	for _, v := range p.Voices {
		md.Voices = append(md.Voices, v.Name)
	}
	return md
}
