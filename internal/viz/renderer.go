package viz

import (
	"github.com/san-kum/slitsim/internal/dynamo"
	"github.com/san-kum/slitsim/internal/physics"
)

// DefaultTimeStep is added to the time offset on every tick.
const DefaultTimeStep = 0.02

// Renderer turns one kernel evaluation per column into a new heatmap row.
type Renderer struct {
	buf     *Heatmap
	step    float64
	offset  float64
	workers int

	raw  dynamo.Row
	gray []uint8
}

// NewRenderer creates a renderer drawing into buf. step <= 0 selects
// DefaultTimeStep; workers follows dynamo.ParallelFor (0 = NumCPU, 1 = serial).
func NewRenderer(buf *Heatmap, step float64, workers int) *Renderer {
	if step <= 0 {
		step = DefaultTimeStep
	}
	return &Renderer{
		buf:     buf,
		step:    step,
		workers: workers,
		raw:     make(dynamo.Row, buf.Width()),
		gray:    make([]uint8, buf.Width()),
	}
}

// Tick scrolls the buffer up one row, advances the time offset, evaluates the
// kernel at p.T plus the offset for every column, and writes the normalized
// row at the bottom. The returned row is reused by the next Tick.
func (r *Renderer) Tick(p dynamo.Params) (dynamo.Row, float64) {
	r.buf.Shift()

	r.offset += r.step
	tEff := p.T + r.offset

	physics.FillRow(r.raw, p.WithT(tEff), r.workers)
	r.gray = Normalize(r.raw, r.gray)

	// Lengths always match the buffer width here.
	_ = r.buf.WriteRow(r.gray)

	return r.raw, tEff
}

func (r *Renderer) Heatmap() *Heatmap { return r.buf }

// Offset is the accumulated time added to the user-facing t.
func (r *Renderer) Offset() float64 { return r.offset }

// SetOffset restores a saved time offset; the next Tick continues from it.
func (r *Renderer) SetOffset(offset float64) { r.offset = offset }

func (r *Renderer) TimeStep() float64 { return r.step }

// LastGray returns the most recently written grayscale row.
func (r *Renderer) LastGray() []uint8 { return r.gray }

// Recreate swaps in a fresh black buffer of the given size. The time offset
// keeps running.
func (r *Renderer) Recreate(width, height int) error {
	buf, err := NewHeatmap(width, height)
	if err != nil {
		return err
	}
	r.Replace(buf)
	return nil
}

// Replace draws into buf from the next Tick on, keeping the time offset.
func (r *Renderer) Replace(buf *Heatmap) {
	r.buf = buf
	r.raw = make(dynamo.Row, buf.Width())
	r.gray = buf.GrayRow(buf.Height() - 1)
}
