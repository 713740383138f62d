package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wardtrain/internal/ui/theme"
)

// ContentWidth returns the inner width used for centered panels.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded border of the given width. A nil accent
// uses the default border color.
func Card(content string, width int, accent color.Color) string {
	if accent == nil {
		accent = theme.Border
	}
	return theme.Card.
		BorderForeground(accent).
		Width(width).
		Render(content)
}

// Center places content in the middle of a width x height box.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
