package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

var hasDarkBackground = termenv.HasDarkBackground()

// ColorRGB converts a normalized [0,1] RGB triple to a lipgloss color.
func ColorRGB(c [3]float64) lipgloss.Color {
	col := colorful.Color{R: clamp01(c[0]), G: clamp01(c[1]), B: clamp01(c[2])}
	return lipgloss.Color(col.Hex())
}

// ColorRGBA converts a normalized [0,1] RGBA quad to a lipgloss color. The
// alpha channel is blended against the terminal background since ANSI colors
// carry no transparency.
func ColorRGBA(c [4]float64) lipgloss.Color {
	bg := colorful.Color{R: 1, G: 1, B: 1}
	if hasDarkBackground {
		bg = colorful.Color{R: 0.1, G: 0.1, B: 0.1}
	}
	fg := colorful.Color{R: clamp01(c[0]), G: clamp01(c[1]), B: clamp01(c[2])}
	blended := bg.BlendRgb(fg, clamp01(c[3]))
	return lipgloss.Color(blended.Hex())
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
