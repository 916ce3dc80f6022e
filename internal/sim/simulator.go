package sim

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/san-kum/slitsim/internal/dynamo"
	"github.com/san-kum/slitsim/internal/viz"
)

// Loop drives the renderer once per frame while playing.
//
// SetParams, Play, Pause and Toggle may be called from any goroutine. Tick,
// Step and Run must be called from a single goroutine, the one that owns the
// renderer and its heatmap.
type Loop struct {
	renderer  *viz.Renderer
	params    atomic.Pointer[dynamo.Params]
	playing   atomic.Bool
	wake      chan struct{}
	ticks     int
	metrics   []Metric
	observers []Observer
}

func New(r *viz.Renderer, p dynamo.Params) (*Loop, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	l := &Loop{
		renderer:  r,
		wake:      make(chan struct{}, 1),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	l.params.Store(&p)
	return l, nil
}

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// SetParams replaces the parameter snapshot read at the start of each tick.
func (l *Loop) SetParams(p dynamo.Params) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("set params: %w", err)
	}
	l.params.Store(&p)
	return nil
}

func (l *Loop) Params() dynamo.Params { return *l.params.Load() }

func (l *Loop) Play() {
	l.playing.Store(true)
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pause stops further ticks. The heatmap is left untouched.
func (l *Loop) Pause() { l.playing.Store(false) }

// Toggle flips the play flag and reports the new state.
func (l *Loop) Toggle() bool {
	if l.playing.Load() {
		l.Pause()
		return false
	}
	l.Play()
	return true
}

func (l *Loop) Playing() bool { return l.playing.Load() }

func (l *Loop) Renderer() *viz.Renderer { return l.renderer }

func (l *Loop) Heatmap() *viz.Heatmap { return l.renderer.Heatmap() }

// Ticks counts the rows appended since the loop was created.
func (l *Loop) Ticks() int { return l.ticks }

// Tick appends one row if the loop is playing and reports whether it did.
func (l *Loop) Tick() bool {
	if !l.playing.Load() {
		return false
	}
	l.Step()
	return true
}

// Step appends one row regardless of the play flag.
func (l *Loop) Step() {
	p := l.Params()
	row, tEff := l.renderer.Tick(p)
	l.ticks++

	for _, m := range l.metrics {
		m.Observe(row, tEff)
	}
	gray := l.renderer.LastGray()
	for _, o := range l.observers {
		o.OnRow(row, gray, tEff)
	}
}

// Run ticks at cfg.FPS until ctx is canceled or cfg.MaxTicks rows have been
// appended. While paused it waits without consuming ticks.
func (l *Loop) Run(ctx context.Context, cfg Config) (*Result, error) {
	for _, m := range l.metrics {
		m.Reset()
	}

	var frames <-chan time.Time
	if cfg.FPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
		defer ticker.Stop()
		frames = ticker.C
	}

	start := l.ticks
	for {
		if cfg.MaxTicks > 0 && l.ticks-start >= cfg.MaxTicks {
			return l.result(start), nil
		}

		select {
		case <-ctx.Done():
			return l.result(start), ctx.Err()
		default:
		}

		if !l.playing.Load() {
			select {
			case <-ctx.Done():
				return l.result(start), ctx.Err()
			case <-l.wake:
			case <-frames:
			}
			continue
		}

		if frames != nil {
			select {
			case <-ctx.Done():
				return l.result(start), ctx.Err()
			case <-frames:
			}
		}

		l.Tick()
	}
}

func (l *Loop) result(start int) *Result {
	return &Result{
		Ticks:   l.ticks - start,
		Offset:  l.renderer.Offset(),
		Metrics: l.MetricValues(),
	}
}

// MetricValues reports the current value of every registered metric.
func (l *Loop) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(l.metrics))
	for _, m := range l.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
