package analysis

import (
	"math"

	"github.com/san-kum/slitsim/internal/dynamo"
)

// LocalMaxima returns interior indices whose value exceeds the left
// neighbour and is not below the right one. Plateaus report their first
// column.
func LocalMaxima(row dynamo.Row) []int {
	var idx []int
	for i := 1; i < len(row)-1; i++ {
		if row[i] > row[i-1] && row[i] >= row[i+1] {
			idx = append(idx, i)
		}
	}
	return idx
}

// MaximaBetween filters LocalMaxima to screen coordinates strictly inside (lo, hi).
func MaximaBetween(row dynamo.Row, lo, hi float64) []int {
	var out []int
	for _, i := range LocalMaxima(row) {
		x := dynamo.ScreenX(i, len(row))
		if x > lo && x < hi {
			out = append(out, i)
		}
	}
	return out
}

// FringeSpacing is the mean distance, in screen units, between consecutive
// maxima inside (lo, hi). It returns 0 when fewer than two maxima are found.
func FringeSpacing(row dynamo.Row, lo, hi float64) (float64, int) {
	maxima := MaximaBetween(row, lo, hi)
	if len(maxima) < 2 {
		return 0, len(maxima)
	}
	first := dynamo.ScreenX(maxima[0], len(row))
	last := dynamo.ScreenX(maxima[len(maxima)-1], len(row))
	return (last - first) / float64(len(maxima)-1), len(maxima)
}

// Wavelength is 2π/|k|.
func Wavelength(k float64) float64 {
	if k == 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / math.Abs(k)
}

// ExpectedSpacing is the intensity fringe period, half a wavelength, since
// intensity goes as the square of an amplitude oscillating with cos(k·d).
func ExpectedSpacing(k float64) float64 {
	return Wavelength(k) / 2
}

// Report summarises a row for the analyze command.
type Report struct {
	Params          dynamo.Params
	Width           int
	Peak            float64
	PeakX           float64
	Maxima          int
	Spacing         float64
	ExpectedSpacing float64
	Wavelength      float64
	DominantPeriod  float64
	Valid           bool
}

// Analyze inspects the region between the slits, inset by margin on each
// side to keep the 1/d peaks under the slits out of the fringe count.
func Analyze(row dynamo.Row, p dynamo.Params, margin float64) Report {
	lo, hi := math.Min(p.Slit1, p.Slit2)+margin, math.Max(p.Slit1, p.Slit2)-margin
	spacing, n := FringeSpacing(row, lo, hi)

	r := Report{
		Params:          p,
		Width:           len(row),
		Peak:            row.Max(),
		Maxima:          n,
		Spacing:         spacing,
		ExpectedSpacing: ExpectedSpacing(p.K),
		Wavelength:      Wavelength(p.K),
		Valid:           row.IsValid(),
	}
	if i := row.ArgMax(); i >= 0 {
		r.PeakX = dynamo.ScreenX(i, len(row))
	}
	if w := Window(row, lo, hi); len(w) >= 4 {
		r.DominantPeriod = DominantPeriod(w, len(row))
	}
	return r
}
