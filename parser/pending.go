package parser

import "github.com/jsphweid/abcplay/model"

// pending collects the measures of a voice that have not been committed to
// its timeline yet. It is the only state shared across the recursive calls
// that expand repeat endings, so everything leaving it is a copy.
type pending struct {
	measures []model.Measure
}

func (p *pending) add(m model.Measure) {
	p.measures = append(p.measures, m.Clone())
}

func (p *pending) empty() bool {
	return len(p.measures) == 0
}

func (p *pending) snapshot() []model.Measure {
	return cloneMeasures(p.measures)
}

func (p *pending) restore(snap []model.Measure) {
	p.measures = cloneMeasures(snap)
}

// commit returns a Section that no later change to the buffer can reach
func (p *pending) commit() model.Section {
	return model.Section{Measures: cloneMeasures(p.measures)}
}

func (p *pending) clear() {
	p.measures = nil
}

func cloneMeasures(ms []model.Measure) []model.Measure {
	res := make([]model.Measure, len(ms))
	for i, m := range ms {
		res[i] = m.Clone()
	}
	return res
}
