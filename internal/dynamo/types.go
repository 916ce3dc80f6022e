package dynamo

import (
	"fmt"
	"math"
)

const (
	DefaultSlit1 = 0.3
	DefaultSlit2 = 0.7
	DefaultT     = 1.0
	DefaultK     = 10.0
)

// Params holds the slit geometry and wave parameters. It is replaced
// wholesale on every UI interaction and passed by value into the kernel.
type Params struct {
	Slit1 float64 `yaml:"slit1" json:"slit1"`
	Slit2 float64 `yaml:"slit2" json:"slit2"`
	T     float64 `yaml:"t" json:"t"`
	K     float64 `yaml:"k" json:"k"`
}

func DefaultParams() Params {
	return Params{Slit1: DefaultSlit1, Slit2: DefaultSlit2, T: DefaultT, K: DefaultK}
}

// Validate checks that slits lie in [0,1], t is strictly positive and every
// field is finite. k may take any finite value.
func (p Params) Validate() error {
	for _, f := range []struct {
		key string
		val float64
	}{
		{"slit1", p.Slit1},
		{"slit2", p.Slit2},
		{"t", p.T},
		{"k", p.K},
	} {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return fmt.Errorf("%s is not finite: %w", f.key, ErrParameterBounds)
		}
	}
	if p.Slit1 < 0 || p.Slit1 > 1 {
		return &ParamError{Key: "slit1", Value: p.Slit1, Min: 0, Max: 1}
	}
	if p.Slit2 < 0 || p.Slit2 > 1 {
		return &ParamError{Key: "slit2", Value: p.Slit2, Min: 0, Max: 1}
	}
	if p.T <= 0 {
		return &ParamError{Key: "t", Value: p.T, Min: math.SmallestNonzeroFloat64, Max: math.MaxFloat64}
	}
	return nil
}

// WithT returns a copy of p with the time parameter replaced.
func (p Params) WithT(t float64) Params {
	p.T = t
	return p
}

func (p Params) String() string {
	return fmt.Sprintf("slit1=%.2f slit2=%.2f t=%.2f k=%.2f", p.Slit1, p.Slit2, p.T, p.K)
}

// Row is one horizontal line of raw intensities, one entry per screen column.
type Row []float64

func (r Row) Clone() Row {
	c := make(Row, len(r))
	copy(c, r)
	return c
}

// Max returns the largest finite value, or 0 for an empty row.
func (r Row) Max() float64 {
	m := 0.0
	for _, v := range r {
		if !math.IsInf(v, 0) && v > m {
			m = v
		}
	}
	return m
}

// Min returns the smallest value, or 0 for an empty row.
func (r Row) Min() float64 {
	if len(r) == 0 {
		return 0
	}
	m := r[0]
	for _, v := range r[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

// ArgMax returns the index of the first maximum, or -1 for an empty row.
func (r Row) ArgMax() int {
	idx := -1
	best := math.Inf(-1)
	for i, v := range r {
		if v > best {
			best, idx = v, i
		}
	}
	return idx
}

func (r Row) Mean() float64 {
	if len(r) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range r {
		sum += v
	}
	return sum / float64(len(r))
}

// IsValid reports whether every value is finite and non-negative.
func (r Row) IsValid() bool {
	for _, v := range r {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}
	return true
}

// ScreenX maps pixel column x of a width-wide row onto [0,1].
func ScreenX(x, width int) float64 {
	if width <= 1 {
		return 0
	}
	return float64(x) / float64(width-1)
}

// Control describes an adjustable parameter with slider-style bounds.
type Control struct {
	Key   string
	Label string
	Min   float64
	Max   float64
	Step  float64
}

// Clamp snaps v into [Min, Max].
func (c Control) Clamp(v float64) float64 {
	return math.Max(c.Min, math.Min(c.Max, v))
}

// Controls lists the parameters the front ends expose, in display order.
var Controls = []Control{
	{Key: "slit1", Label: "Slit 1", Min: 0, Max: 1, Step: 0.01},
	{Key: "slit2", Label: "Slit 2", Min: 0, Max: 1, Step: 0.01},
	{Key: "t", Label: "t", Min: 0.1, Max: 5, Step: 0.1},
	{Key: "k", Label: "k", Min: 1, Max: 20, Step: 1},
}

// Get returns the named field of p.
func (p Params) Get(key string) (float64, error) {
	switch key {
	case "slit1":
		return p.Slit1, nil
	case "slit2":
		return p.Slit2, nil
	case "t":
		return p.T, nil
	case "k":
		return p.K, nil
	}
	return 0, fmt.Errorf("%q: %w", key, ErrUnknownParameter)
}

// Set returns a copy of p with the named field replaced.
func (p Params) Set(key string, value float64) (Params, error) {
	switch key {
	case "slit1":
		p.Slit1 = value
	case "slit2":
		p.Slit2 = value
	case "t":
		p.T = value
	case "k":
		p.K = value
	default:
		return p, fmt.Errorf("%q: %w", key, ErrUnknownParameter)
	}
	return p, nil
}

// Nudge moves the parameter controlled by c by dir steps, clamped to its bounds.
func (p Params) Nudge(c Control, dir int) Params {
	v, err := p.Get(c.Key)
	if err != nil {
		return p
	}
	v = c.Clamp(v + float64(dir)*c.Step)
	// Snap to the step grid so repeated nudges do not accumulate drift.
	v = math.Round(v/c.Step) * c.Step
	np, _ := p.Set(c.Key, c.Clamp(v))
	return np
}
