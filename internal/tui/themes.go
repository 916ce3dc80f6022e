package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme tints the grayscale waterfall. Gray level g is drawn as Tint scaled
// by g/255, so mono reproduces the heatmap exactly.
type Theme struct {
	Name   string
	Tint   [3]uint8
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeMono = Theme{
		Name:   "mono",
		Tint:   [3]uint8{255, 255, 255},
		Accent: lipgloss.Color("255"),
		Muted:  lipgloss.Color("242"),
	}

	ThemeAmber = Theme{
		Name:   "amber",
		Tint:   [3]uint8{255, 176, 0},
		Accent: lipgloss.Color("#ffb000"),
		Muted:  lipgloss.Color("#805800"),
	}

	ThemePhosphor = Theme{
		Name:   "phosphor",
		Tint:   [3]uint8{51, 255, 102},
		Accent: lipgloss.Color("#33ff66"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeIce = Theme{
		Name:   "ice",
		Tint:   [3]uint8{140, 200, 255},
		Accent: lipgloss.Color("#8cc8ff"),
		Muted:  lipgloss.Color("#4488aa"),
	}

	Themes = []Theme{
		ThemeMono,
		ThemeAmber,
		ThemePhosphor,
		ThemeIce,
	}
)

// GetTheme returns a theme by name, falling back to mono.
func GetTheme(name string) Theme {
	return Themes[themeIndex(name)]
}

func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Color returns the tinted terminal color for gray level g.
func (t Theme) Color(g uint8) lipgloss.Color {
	scale := func(c uint8) int { return int(c) * int(g) / 255 }
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", scale(t.Tint[0]), scale(t.Tint[1]), scale(t.Tint[2])))
}
