package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/slitsim/internal/viz"
)

// renderBlocks draws the heatmap with upper half blocks, two buffer cells per
// terminal cell. Runs of equal colors share one style.
func renderBlocks(h *viz.Heatmap, cols, rows int, theme Theme) string {
	grid := viz.Downsample(h, cols, rows*2)
	var b strings.Builder
	for r := 0; r+1 < len(grid); r += 2 {
		top, bot := grid[r], grid[r+1]
		start := 0
		for c := 1; c <= len(top); c++ {
			if c < len(top) && top[c] == top[start] && bot[c] == bot[start] {
				continue
			}
			style := lipgloss.NewStyle().
				Foreground(theme.Color(top[start])).
				Background(theme.Color(bot[start]))
			b.WriteString(style.Render(strings.Repeat("▀", c-start)))
			start = c
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderASCII draws the heatmap with the viz.Ramp glyphs and no color.
func renderASCII(h *viz.Heatmap, cols, rows int) string {
	var b strings.Builder
	for _, row := range viz.Downsample(h, cols, rows) {
		for _, g := range row {
			b.WriteRune(viz.ShadeRune(g))
		}
		b.WriteString("\n")
	}
	return b.String()
}
