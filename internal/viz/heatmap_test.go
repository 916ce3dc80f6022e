package viz

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/san-kum/slitsim/internal/dynamo"
)

func TestNewHeatmap(t *testing.T) {
	h, err := NewHeatmap(4, 3)
	if err != nil {
		t.Fatalf("new heatmap: %v", err)
	}
	if h.Width() != 4 || h.Height() != 3 {
		t.Fatalf("unexpected size %dx%d", h.Width(), h.Height())
	}
	for y := 0; y < 3; y++ {
		px := h.RowPixels(y)
		for x := 0; x < 4; x++ {
			if px[x*4] != 0 || px[x*4+3] != 0xff {
				t.Fatalf("pixel (%d,%d) not opaque black: %v", x, y, px[x*4:x*4+4])
			}
		}
	}

	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 5}} {
		if _, err := NewHeatmap(dims[0], dims[1]); !errors.Is(err, dynamo.ErrInvalidDimensions) {
			t.Errorf("%v: expected ErrInvalidDimensions, got %v", dims, err)
		}
	}
}

func TestHeatmapWriteRow(t *testing.T) {
	h, _ := NewHeatmap(3, 2)
	if err := h.WriteRow([]uint8{10, 128, 255}); err != nil {
		t.Fatalf("write row: %v", err)
	}

	px := h.RowPixels(1)
	want := []byte{10, 10, 10, 255, 128, 128, 128, 255, 255, 255, 255, 255}
	for i := range want {
		if px[i] != want[i] {
			t.Fatalf("byte %d: expected %d, got %d", i, want[i], px[i])
		}
	}
	if h.Gray(1, 1) != 128 {
		t.Errorf("expected gray 128, got %d", h.Gray(1, 1))
	}

	if err := h.WriteRow([]uint8{1, 2}); !errors.Is(err, dynamo.ErrInvalidRow) {
		t.Errorf("expected ErrInvalidRow, got %v", err)
	}
	if err := h.SetRow(5, []uint8{1, 2, 3}); !errors.Is(err, dynamo.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestHeatmapShift(t *testing.T) {
	h, _ := NewHeatmap(2, 3)
	for y := 0; y < 3; y++ {
		v := uint8(10 * (y + 1))
		_ = h.SetRow(y, []uint8{v, v})
	}

	h.Shift()

	if got := h.GrayRow(0); got[0] != 20 {
		t.Errorf("row 0 should hold old row 1, got %v", got)
	}
	if got := h.GrayRow(1); got[0] != 30 {
		t.Errorf("row 1 should hold old row 2, got %v", got)
	}
}

func TestHeatmapShiftSingleRow(t *testing.T) {
	h, _ := NewHeatmap(2, 1)
	_ = h.WriteRow([]uint8{7, 9})
	h.Shift()
	if got := h.GrayRow(0); got[0] != 7 || got[1] != 9 {
		t.Errorf("single-row shift changed contents: %v", got)
	}
}

func TestHeatmapCloneEqual(t *testing.T) {
	h, _ := NewHeatmap(3, 3)
	_ = h.WriteRow([]uint8{1, 2, 3})

	c := h.Clone()
	if !h.Equal(c) {
		t.Fatal("clone should equal original")
	}

	_ = c.WriteRow([]uint8{9, 9, 9})
	if h.Equal(c) {
		t.Error("clone shares pixels with original")
	}
}

func TestHeatmapFromImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(1, 0, color.Gray{Y: 200})

	h, err := HeatmapFromImage(src)
	if err != nil {
		t.Fatalf("from image: %v", err)
	}
	if h.Gray(1, 0) != 200 || h.Gray(0, 0) != 0 {
		t.Errorf("unexpected pixels %v", h.Pix())
	}
}
