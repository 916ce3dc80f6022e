package metrics

import "github.com/san-kum/slitsim/internal/dynamo"

// Visibility averages the fringe contrast (Imax-Imin)/(Imax+Imin) per row.
// Rows with no intensity contribute nothing.
type Visibility struct {
	name    string
	samples int
	total   float64
}

func NewVisibility() *Visibility {
	return &Visibility{name: "visibility"}
}

func (v *Visibility) Name() string { return v.name }

func (v *Visibility) Observe(row dynamo.Row, t float64) {
	if row.Max()+row.Min() <= 0 {
		return
	}
	v.total += RowVisibility(row)
	v.samples++
}

func (v *Visibility) Value() float64 {
	if v.samples == 0 {
		return 0
	}
	return v.total / float64(v.samples)
}

func (v *Visibility) Reset() {
	v.total = 0
	v.samples = 0
}

// RowVisibility computes the contrast of a single row.
func RowVisibility(row dynamo.Row) float64 {
	hi, lo := row.Max(), row.Min()
	if hi+lo <= 0 {
		return 0
	}
	return (hi - lo) / (hi + lo)
}
