package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/san-kum/slitsim/internal/dynamo"
)

// Heatmap is the scrolling RGBA pixel buffer shown by the display. Row 0 is
// the oldest visible row, row Height-1 the newest.
type Heatmap struct {
	img *image.RGBA
}

// NewHeatmap allocates a width×height buffer filled with opaque black.
func NewHeatmap(width, height int) (*Heatmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, dynamo.ErrInvalidDimensions)
	}
	h := &Heatmap{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	h.Clear()
	return h, nil
}

// HeatmapFromImage copies any image into a new buffer.
func HeatmapFromImage(src image.Image) (*Heatmap, error) {
	b := src.Bounds()
	h, err := NewHeatmap(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	draw.Draw(h.img, h.img.Bounds(), src, b.Min, draw.Src)
	return h, nil
}

func (h *Heatmap) Width() int  { return h.img.Rect.Dx() }
func (h *Heatmap) Height() int { return h.img.Rect.Dy() }

// Clear resets every pixel to opaque black.
func (h *Heatmap) Clear() {
	draw.Draw(h.img, h.img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
}

// Shift moves every row up by one. Row 0 is discarded and the bottom row is
// left holding a duplicate of its previous contents until WriteRow.
func (h *Heatmap) Shift() {
	stride := h.img.Stride
	copy(h.img.Pix, h.img.Pix[stride:])
}

// WriteRow blits a grayscale row into the bottom row with full alpha.
func (h *Heatmap) WriteRow(gray []uint8) error {
	return h.SetRow(h.Height()-1, gray)
}

// SetRow writes a grayscale row at y.
func (h *Heatmap) SetRow(y int, gray []uint8) error {
	if len(gray) != h.Width() {
		return fmt.Errorf("got %d values for width %d: %w", len(gray), h.Width(), dynamo.ErrInvalidRow)
	}
	if y < 0 || y >= h.Height() {
		return fmt.Errorf("row %d outside buffer height %d: %w", y, h.Height(), dynamo.ErrInvalidDimensions)
	}
	off := y * h.img.Stride
	px := h.img.Pix[off : off+4*len(gray)]
	for x, v := range gray {
		px[x*4+0] = v
		px[x*4+1] = v
		px[x*4+2] = v
		px[x*4+3] = 0xff
	}
	return nil
}

// RowPixels returns a copy of the RGBA bytes of row y.
func (h *Heatmap) RowPixels(y int) []byte {
	off := y * h.img.Stride
	out := make([]byte, 4*h.Width())
	copy(out, h.img.Pix[off:off+len(out)])
	return out
}

// Gray returns the red channel at (x, y), which equals G and B for rows
// written by WriteRow.
func (h *Heatmap) Gray(x, y int) uint8 {
	return h.img.Pix[h.img.PixOffset(x, y)]
}

// GrayRow returns the grayscale values of row y.
func (h *Heatmap) GrayRow(y int) []uint8 {
	out := make([]uint8, h.Width())
	off := y * h.img.Stride
	for x := range out {
		out[x] = h.img.Pix[off+x*4]
	}
	return out
}

// Pix exposes the backing RGBA bytes for texture upload. Callers must not
// retain it across ticks.
func (h *Heatmap) Pix() []byte { return h.img.Pix }

// Image exposes the buffer as an image.
func (h *Heatmap) Image() *image.RGBA { return h.img }

func (h *Heatmap) Clone() *Heatmap {
	img := image.NewRGBA(h.img.Rect)
	copy(img.Pix, h.img.Pix)
	return &Heatmap{img: img}
}

// Equal reports whether both buffers hold identical pixels.
func (h *Heatmap) Equal(other *Heatmap) bool {
	if other == nil || h.img.Rect != other.img.Rect {
		return false
	}
	for i, v := range h.img.Pix {
		if other.img.Pix[i] != v {
			return false
		}
	}
	return true
}
