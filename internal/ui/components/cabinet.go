package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/guessr/internal/ui/theme"
)

const (
	cabinetChrome = 6 // double border plus inner padding
	minContent    = 20
	maxContent    = 60
)

// ContentWidth is the inner width every box inside the cabinet shares, so
// stacked sections line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-cabinetChrome, minContent), maxContent)
}

// CabinetFrame draws the double border around a whole screen and centers
// content inside it.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card boxes content at width cw with an edge in the given color.
func Card(content string, cw int, edge color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(edge).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(1, 2).
		Render(content)
}

// Button renders a bordered label. The selected button is filled.
func Button(label string, selected bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !selected {
		return style.Foreground(theme.Text).BorderForeground(theme.Border).Render(label)
	}
	return style.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		BorderForeground(theme.ArcadeYellow).
		Render("▸ " + label)
}
