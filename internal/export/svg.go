package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/slitsim/internal/dynamo"
)

// ProfileSVG draws a row as an intensity-versus-screen-position polyline.
// The vertical axis is normalized to the row peak.
func ProfileSVG(row dynamo.Row, width, height int, strokeColor string) string {
	if len(row) < 2 {
		return ""
	}

	peak := row.Max()
	if peak <= 0 {
		peak = 1
	}

	// 5% headroom above the peak
	top := peak * 1.05

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range row {
		if v > peak || v < 0 || math.IsNaN(v) {
			v = 0
		}
		x := dynamo.ScreenX(i, len(row)) * float64(width)
		y := float64(height) - v/top*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
