package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FACC15")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Answer tones, from a firm yes to a firm no.
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Leaning = lipgloss.NewStyle().
		Foreground(Secondary)

	Unsure = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Doubtful = lipgloss.NewStyle().
			Foreground(Accent)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// AnswerTone picks the style for a graded answer in [-2, 2].
func AnswerTone(delta int) lipgloss.Style {
	switch {
	case delta >= 2:
		return Correct
	case delta == 1:
		return Leaning
	case delta == -1:
		return Doubtful
	case delta <= -2:
		return Incorrect
	default:
		return Unsure
	}
}
