package viz

import "testing"

func TestShadeRuneEnds(t *testing.T) {
	if got := ShadeRune(0); got != ' ' {
		t.Errorf("ShadeRune(0) = %q, want ' '", got)
	}
	if got := ShadeRune(255); got != '@' {
		t.Errorf("ShadeRune(255) = %q, want '@'", got)
	}
}

func TestDownsampleAverages(t *testing.T) {
	h, _ := NewHeatmap(4, 2)
	_ = h.SetRow(0, []uint8{0, 100, 200, 200})
	_ = h.SetRow(1, []uint8{100, 200, 0, 0})

	got := Downsample(h, 2, 1)
	if len(got) != 1 || len(got[0]) != 2 {
		t.Fatalf("unexpected shape %v", got)
	}
	if got[0][0] != 100 || got[0][1] != 100 {
		t.Errorf("got %v, want [100 100]", got[0])
	}
}

func TestDownsampleClampsToSize(t *testing.T) {
	h, _ := NewHeatmap(3, 2)
	got := Downsample(h, 10, 10)
	if len(got) != 2 || len(got[0]) != 3 {
		t.Errorf("expected 2x3 grid, got %dx%d", len(got), len(got[0]))
	}
	if Downsample(h, 0, 1) != nil {
		t.Error("expected nil for zero columns")
	}
}

func TestDownsampleRow(t *testing.T) {
	got := DownsampleRow([]float64{1, 3, 5, 7}, 2)
	if len(got) != 2 || got[0] != 2 || got[1] != 6 {
		t.Errorf("got %v, want [2 6]", got)
	}
	if got := DownsampleRow([]float64{1, 2}, 5); len(got) != 2 {
		t.Errorf("expected passthrough, got %v", got)
	}
}
