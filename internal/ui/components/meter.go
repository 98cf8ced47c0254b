package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/guessr/internal/ui/theme"
)

// LeadMeter shows how close the leading candidate is to being guessed: the
// bar fills as Lead approaches Margin.
type LeadMeter struct {
	Lead   float64
	Margin float64
	Width  int
}

// Fill returns the filled fraction in [0, 1].
func (m LeadMeter) Fill() float64 {
	if m.Margin <= 0 {
		return 0
	}
	return min(max(m.Lead/m.Margin, 0), 1)
}

// View renders the meter with its label and a lead/margin readout.
func (m LeadMeter) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render("Hunch") + "  "
	readout := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %.1f/%.0f", max(m.Lead, 0), m.Margin))

	barWidth := max(m.Width-lipgloss.Width(label)-lipgloss.Width(readout), 4)
	filled := int(float64(barWidth) * m.Fill())

	fill := theme.Secondary
	if m.Fill() >= 1 {
		fill = theme.ArcadeYellow
	}
	bar := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return label + bar + readout
}
