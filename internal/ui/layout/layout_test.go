package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{80, 23, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader("Game", "Round 3", 100)
	for _, want := range []string{"Guessr", "Game", "Round 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
	if h := lipgloss.Height(out); h != 3 {
		t.Errorf("header height = %d, want 3", h)
	}
}

func TestRenderFrame_FillsHeight(t *testing.T) {
	header := RenderHeader("Home", "", 90)
	footer := RenderFooter([]KeyHint{{Key: "Enter", Description: "Select"}}, 90)
	frame := RenderFrame(header, "hello", footer, 90, 30)

	if h := lipgloss.Height(frame); h != 30 {
		t.Errorf("frame height = %d, want 30", h)
	}
	if !strings.Contains(frame, "Select") {
		t.Error("footer hint missing from frame")
	}
}
