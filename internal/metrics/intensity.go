package metrics

import "github.com/san-kum/slitsim/internal/dynamo"

// Peak tracks the largest raw intensity seen in any row.
type Peak struct {
	name string
	peak float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak_intensity"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(row dynamo.Row, t float64) {
	if m := row.Max(); m > p.peak {
		p.peak = m
	}
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() { p.peak = 0 }

// Mean averages the per-row mean intensity.
type Mean struct {
	name    string
	samples int
	total   float64
}

func NewMean() *Mean {
	return &Mean{name: "mean_intensity"}
}

func (m *Mean) Name() string { return m.name }

func (m *Mean) Observe(row dynamo.Row, t float64) {
	if len(row) == 0 {
		return
	}
	m.total += row.Mean()
	m.samples++
}

func (m *Mean) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Mean) Reset() {
	m.total = 0
	m.samples = 0
}

// Invalid counts rows containing NaN, Inf or negative samples.
type Invalid struct {
	name  string
	count int
}

func NewInvalid() *Invalid {
	return &Invalid{name: "invalid_rows"}
}

func (v *Invalid) Name() string { return v.name }

func (v *Invalid) Observe(row dynamo.Row, t float64) {
	if !row.IsValid() {
		v.count++
	}
}

func (v *Invalid) Value() float64 { return float64(v.count) }

func (v *Invalid) Reset() { v.count = 0 }
