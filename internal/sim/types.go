package sim

import "github.com/san-kum/slitsim/internal/dynamo"

// Metric accumulates a scalar over the rows produced by the loop.
type Metric interface {
	Name() string
	Observe(row dynamo.Row, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every tick with the raw row, its normalized
// grayscale form and the effective time. Both slices are reused by the next
// tick.
type Observer interface {
	OnRow(row dynamo.Row, gray []uint8, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(row dynamo.Row, gray []uint8, t float64)

func (f ObserverFunc) OnRow(row dynamo.Row, gray []uint8, t float64) { f(row, gray, t) }

type Config struct {
	// FPS throttles Run; zero or negative runs unthrottled.
	FPS int
	// MaxTicks stops Run after that many rows; zero runs until canceled.
	MaxTicks int
}

func DefaultConfig() Config {
	return Config{FPS: 60}
}

type Result struct {
	Ticks   int
	Offset  float64
	Metrics map[string]float64
}
