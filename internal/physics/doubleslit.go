package physics

import (
	"math"

	"github.com/san-kum/slitsim/internal/dynamo"
)

// Epsilon is added to the slit distance before dividing.
const Epsilon = 1e-6

// minParallelColumns is the smallest chunk handed to a worker by FillRow.
const minParallelColumns = 64

// Amplitude returns the real-valued amplitude contributed by one slit at
// screenX: exp(-d²/2t) · cos(k·d) / (d+ε) with d = |screenX - slit|.
func Amplitude(slit, screenX, t, k float64) float64 {
	d := math.Abs(screenX - slit)
	return math.Exp(-d*d/(2*t)) * math.Cos(k*d) / (d + Epsilon)
}

// Intensity is the squared coherent sum of both slit amplitudes.
func Intensity(slit1, slit2, screenX, t, k float64) float64 {
	a := Amplitude(slit1, screenX, t, k) + Amplitude(slit2, screenX, t, k)
	return a * a
}

// FillRow evaluates p across len(row) screen columns, left to right. Columns
// are independent, so workers > 1 (or 0 for NumCPU) splits them across
// goroutines without changing the output.
func FillRow(row dynamo.Row, p dynamo.Params, workers int) {
	width := len(row)
	eval := func(start, end int) {
		for x := start; x < end; x++ {
			row[x] = Intensity(p.Slit1, p.Slit2, dynamo.ScreenX(x, width), p.T, p.K)
		}
	}
	if workers == 1 {
		eval(0, width)
		return
	}
	dynamo.ParallelFor(width, minParallelColumns, workers, eval)
}
