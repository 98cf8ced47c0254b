package game

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/guessr/internal/ui/components"
	"github.com/abhisek/guessr/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderInfoLine renders the round counter and how many candidates remain.
func (g *GameScreen) renderInfoLine(width int) string {
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Round %d", g.info.Round))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d in play  %d ruled out", g.info.Remaining, g.info.Eliminated))

	line := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		line += strings.Repeat(" ", rightPad) + infoRight
	}

	var b strings.Builder
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")
	return b.String()
}

// meter shows how far the leader is from being guessed.
func (g *GameScreen) meter(width int) components.LeadMeter {
	return components.LeadMeter{
		Lead:   g.info.Lead,
		Margin: g.info.Margin,
		Width:  components.ContentWidth(width),
	}
}

// renderQuestion renders the current question and the answer picker.
func (g *GameScreen) renderQuestion(width int) string {
	var b strings.Builder
	b.WriteString(g.renderInfoLine(width))

	b.WriteString(centered(width).
		Foreground(theme.Text).
		Bold(true).
		Render(g.step.Question))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, g.picker.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, g.meter(width).View()))
	b.WriteString("\n")

	if g.info.CanGoBack {
		b.WriteString("\n")
		b.WriteString(centered(width).
			Foreground(theme.TextDim).
			Render("Changed your mind? Press B to take back the last answer."))
	}
	return b.String()
}

// renderDeclare renders the engine's guess.
func (g *GameScreen) renderDeclare(width int) string {
	step := g.step
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(g.renderInfoLine(width))

	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render("I think you are thinking of..."))
	b.WriteString("\n\n")

	name := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(step.CandidateName)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Card(name, cw, theme.ArcadeYellow)))
	b.WriteString("\n\n")

	if step.HasRunnerUp {
		runnerUp := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("ahead of %s by %.1f", step.RunnerUpName, step.Score-step.RunnerUpScore))
		b.WriteString(centered(width).Render(runnerUp))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, g.meter(width).View()))
	b.WriteString("\n\n")

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		components.Button("[Y] That's it", true, 18),
		"  ",
		components.Button("[N] Nope", false, 18),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, buttons))
	return b.String()
}

// renderReveal asks the player what they were thinking of.
func (g *GameScreen) renderReveal(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	b.WriteString(centered(width).
		Foreground(theme.Accent).
		Bold(true).
		Render("You got me!"))
	b.WriteString("\n")
	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render("Who were you thinking of?"))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Render(g.reveal.View()))
	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(centered(width).
		Foreground(theme.Text).
		Bold(true).
		Render("Quit this game?"))
	b.WriteString("\n\n")
	b.WriteString(centered(width).
		Foreground(theme.Success).
		Render("[Y] Yes, quit"))
	b.WriteString("\n")
	b.WriteString(centered(width).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width int) string {
	return centered(width).
		Foreground(theme.TextDim).
		Render("\n\n\n  Thinking...")
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return centered(width).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  %s\n\n  Press any key to go back.", errMsg))
}
