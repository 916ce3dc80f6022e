package viz

import (
	"math"

	"github.com/san-kum/slitsim/internal/dynamo"
)

// Normalize maps a raw row onto 0..255 relative to the row's own peak, so
// brightness is never compared across rows. An all-zero row maps to black.
// Non-finite samples are ignored when finding the peak and render black.
// dst is reused when it has the right length.
func Normalize(row dynamo.Row, dst []uint8) []uint8 {
	if len(dst) != len(row) {
		dst = make([]uint8, len(row))
	}

	peak := row.Max()
	if peak <= 0 {
		for i := range dst {
			dst[i] = 0
		}
		return dst
	}

	for i, v := range row {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			dst[i] = 0
			continue
		}
		g := math.Round(255 * v / peak)
		if g > 255 {
			g = 255
		}
		dst[i] = uint8(g)
	}
	return dst
}
