package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/guessr/internal/ui/theme"
)

// MascotVariant is the mood of the crystal-ball mascot, taken from the most
// recent game.
type MascotVariant int

const (
	MascotIdle MascotVariant = iota
	MascotCelebrating
	MascotPuzzled
)

func (v MascotVariant) String() string {
	switch v {
	case MascotCelebrating:
		return "celebrating"
	case MascotPuzzled:
		return "puzzled"
	default:
		return "idle"
	}
}

type mascotPose struct {
	art     string
	color   color.Color
	caption string
}

var mascotPoses = map[MascotVariant]mascotPose{
	MascotIdle: {
		art: `  .---.
 / o o \
|   ~   |
 \_____/
  /___\`,
		color:   theme.Primary,
		caption: "Ready when you are.",
	},
	MascotCelebrating: {
		art: ` * .---. *
 / ^ ^ \
|  \_/  |
 \_____/
  /___\`,
		color:   theme.ArcadeYellow,
		caption: "Got the last one!",
	},
	MascotPuzzled: {
		art: `  .---.  ?
 / o O \
|   ~~  |
 \_____/
  /___\`,
		color:   theme.Accent,
		caption: "You stumped me last time.",
	},
}

// RenderMascot draws the mascot for a mood with its caption underneath.
func RenderMascot(v MascotVariant) string {
	pose, ok := mascotPoses[v]
	if !ok {
		pose = mascotPoses[MascotIdle]
	}
	art := lipgloss.NewStyle().Foreground(pose.color).Render(pose.art)
	caption := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(pose.caption)
	return lipgloss.JoinVertical(lipgloss.Center, art, caption)
}
