package metrics

import "github.com/san-kum/slitsim/internal/sim"

// Default returns the metrics attached to every run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewPeak(),
		NewMean(),
		NewVisibility(),
		NewInvalid(),
	}
}
