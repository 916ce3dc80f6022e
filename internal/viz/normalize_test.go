package viz

import (
	"math"
	"testing"

	"github.com/san-kum/slitsim/internal/dynamo"
	"github.com/san-kum/slitsim/internal/physics"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		row  dynamo.Row
		want []uint8
	}{
		{"empty", dynamo.Row{}, []uint8{}},
		{"all zero", dynamo.Row{0, 0, 0}, []uint8{0, 0, 0}},
		{"peak", dynamo.Row{0, 1, 2, 4}, []uint8{0, 64, 128, 255}},
		{"rounds", dynamo.Row{1, 3}, []uint8{85, 255}},
		{"non-finite ignored", dynamo.Row{math.NaN(), 2, math.Inf(1)}, []uint8{0, 255, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.row, nil)
			if len(got) != len(tt.want) {
				t.Fatalf("length %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizeArgMaxIs255(t *testing.T) {
	p := dynamo.DefaultParams()
	row := make(dynamo.Row, 800)
	for _, k := range []float64{1, 10, 17} {
		p.K = k
		physics.FillRow(row, p, 1)
		gray := Normalize(row, nil)
		if gray[row.ArgMax()] != 255 {
			t.Errorf("k=%v: argmax pixel is %d", k, gray[row.ArgMax()])
		}
	}
}

func TestNormalizeReusesBuffer(t *testing.T) {
	dst := make([]uint8, 3)
	got := Normalize(dynamo.Row{1, 2, 3}, dst)
	if &got[0] != &dst[0] {
		t.Error("expected dst to be reused")
	}
}
