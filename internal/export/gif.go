package export

import (
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/san-kum/slitsim/internal/viz"
)

var grayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}()

// GIFRecorder collects grayscale frames of the heatmap for an animated GIF.
type GIFRecorder struct {
	frames []*image.Paletted
	delay  int
	limit  int
}

// MinFrameDelay is the shortest frame delay, in hundredths of a second, that
// common GIF viewers honor. Shorter delays are usually stretched to 10.
const MinFrameDelay = 2

// NewGIFRecorder keeps at most limit frames (0 = unbounded), each shown for
// delay hundredths of a second. Delays below MinFrameDelay are raised to it.
func NewGIFRecorder(delay, limit int) *GIFRecorder {
	if delay < MinFrameDelay {
		delay = MinFrameDelay
	}
	return &GIFRecorder{delay: delay, limit: limit}
}

// FrameStride returns how many ticks to advance between captures at fps and
// the frame delay that plays them back at live speed. every is a lower bound
// on the stride; it is raised until the delay reaches MinFrameDelay.
func FrameStride(fps, every int) (stride, delay int) {
	if fps < 1 {
		fps = 1
	}
	stride = max(every, 1)
	for 100*stride/fps < MinFrameDelay {
		stride++
	}
	return stride, 100 * stride / fps
}

// Capture copies the current heatmap into a new frame.
func (g *GIFRecorder) Capture(h *viz.Heatmap) {
	if g.limit > 0 && len(g.frames) >= g.limit {
		g.frames = g.frames[1:]
	}

	w, ht := h.Width(), h.Height()
	frame := image.NewPaletted(image.Rect(0, 0, w, ht), grayPalette)
	for y := 0; y < ht; y++ {
		copy(frame.Pix[y*frame.Stride:y*frame.Stride+w], h.GrayRow(y))
	}
	g.frames = append(g.frames, frame)
}

func (g *GIFRecorder) Len() int { return len(g.frames) }

func (g *GIFRecorder) Reset() { g.frames = nil }

// Encode writes all captured frames as a looping GIF.
func (g *GIFRecorder) Encode(w io.Writer) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range g.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, g.delay)
	}
	return gif.EncodeAll(w, &anim)
}
