package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/slitsim/internal/dynamo"
)

// Window returns the samples whose screen coordinate lies in [lo, hi].
func Window(row dynamo.Row, lo, hi float64) dynamo.Row {
	var out dynamo.Row
	for i, v := range row {
		x := dynamo.ScreenX(i, len(row))
		if x >= lo && x <= hi {
			out = append(out, v)
		}
	}
	return out
}

// Spectrum returns the magnitude of the first half of the FFT of row with
// its mean removed, so bin 0 is always zero. Rows shorter than two samples
// have no spectrum.
func Spectrum(row dynamo.Row) []float64 {
	if len(row) < 2 {
		return nil
	}
	mean := row.Mean()
	centered := make([]float64, len(row))
	for i, v := range row {
		centered[i] = v - mean
	}

	bins := fft.FFTReal(centered)
	ps := make([]float64, len(bins)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	ps[0] = 0
	return ps
}

// DominantBin returns the FFT bin with the largest magnitude, excluding DC.
func DominantBin(row dynamo.Row) int {
	ps := Spectrum(row)
	best, idx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > best {
			best, idx = ps[i], i
		}
	}
	return idx
}

// DominantPeriod converts the dominant bin of a window taken from a row of
// fullWidth columns into a period in screen units. It returns 0 for a flat
// window.
func DominantPeriod(window dynamo.Row, fullWidth int) float64 {
	bin := DominantBin(window)
	if bin == 0 || fullWidth < 2 {
		return 0
	}
	samples := float64(len(window)) / float64(bin)
	return samples / float64(fullWidth-1)
}
