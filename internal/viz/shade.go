package viz

// Ramp orders glyphs from dark to bright for text renderings of the heatmap.
const Ramp = " .:-=+*#%@"

// ShadeRune maps a gray level onto Ramp.
func ShadeRune(g uint8) rune {
	return rune(Ramp[int(g)*(len(Ramp)-1)/255])
}

// Downsample box-averages the heatmap into a cols x rows grid of gray levels.
// Sizes larger than the heatmap are clamped to it.
func Downsample(h *Heatmap, cols, rows int) [][]uint8 {
	w, ht := h.Width(), h.Height()
	if cols > w {
		cols = w
	}
	if rows > ht {
		rows = ht
	}
	if cols <= 0 || rows <= 0 {
		return nil
	}

	out := make([][]uint8, rows)
	for r := 0; r < rows; r++ {
		y0, y1 := r*ht/rows, (r+1)*ht/rows
		out[r] = make([]uint8, cols)
		for c := 0; c < cols; c++ {
			x0, x1 := c*w/cols, (c+1)*w/cols
			sum, n := 0, 0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					sum += int(h.Gray(x, y))
					n++
				}
			}
			out[r][c] = uint8(sum / n)
		}
	}
	return out
}

// DownsampleRow averages a row into n buckets. Rows shorter than n are
// copied unchanged.
func DownsampleRow(row []float64, n int) []float64 {
	if n >= len(row) || n <= 0 {
		out := make([]float64, len(row))
		copy(out, row)
		return out
	}
	out := make([]float64, n)
	for i := range out {
		a, b := i*len(row)/n, (i+1)*len(row)/n
		sum := 0.0
		for _, v := range row[a:b] {
			sum += v
		}
		out[i] = sum / float64(b-a)
	}
	return out
}
