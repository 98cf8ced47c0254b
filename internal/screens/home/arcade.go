package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/guessr/internal/store"
	"github.com/abhisek/guessr/internal/ui/components"
	"github.com/abhisek/guessr/internal/ui/theme"
)

const arcadeTitleFull = `  ██████╗ ██╗   ██╗███████╗███████╗███████╗██████╗
 ██╔════╝ ██║   ██║██╔════╝██╔════╝██╔════╝██╔══██╗
 ██║  ███╗██║   ██║█████╗  ███████╗███████╗██████╔╝
 ██║   ██║██║   ██║██╔══╝  ╚════██║╚════██║██╔══██╗
 ╚██████╔╝╚██████╔╝███████╗███████║███████║██║  ██║
  ╚═════╝  ╚═════╝ ╚══════╝╚══════╝╚══════╝╚═╝  ╚═╝`

const arcadeTitleCompact = "G · U · E · S · S · R"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderPrompt renders the one-line invitation under the title.
func renderPrompt(catalog string, size, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("Think of one of %d %s. I will guess it.", size, strings.ToLower(catalog)))
}

// renderStatsBar summarizes the game log in a bordered box at content
// width. Wide layouts also name the most often guessed candidate.
func renderStatsBar(st store.Stats, favorite string, cw int, compact bool) string {
	gamesStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	winStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	roundStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	winRate := st.WinRate() * 100
	var line string
	switch {
	case st.Games == 0:
		line = dimStyle.Render("NO GAMES YET")
	case compact:
		line = fmt.Sprintf("%s %s %s",
			gamesStyle.Render(fmt.Sprintf("#%d", st.Games)),
			winStyle.Render(fmt.Sprintf("✓%.0f%%", winRate)),
			roundStyle.Render(fmt.Sprintf("?%.1f", st.MeanRounds)),
		)
	default:
		line = fmt.Sprintf("%s  %s  %s",
			gamesStyle.Render(fmt.Sprintf("# %d PLAYED", st.Games)),
			winStyle.Render(fmt.Sprintf("✓ %.0f%% GUESSED", winRate)),
			roundStyle.Render(fmt.Sprintf("? %.1f ROUNDS", st.MeanRounds)),
		)
		if favorite != "" {
			line += "\n" + dimStyle.Render("most guessed: "+favorite)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	disabledBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if disabled[i] {
			buttons = append(buttons, disabledBtn.Render(label+" (off)"))
			continue
		}
		buttons = append(buttons, components.Button(label, i == selected, buttonWidth))
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
