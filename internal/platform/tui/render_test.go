package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gem-quest/internal/core"
)

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(1, 1, "GEM QUEST")

	if got := RenderScreen(s); got != s.String() {
		t.Errorf("RenderScreen() of unstyled screen = %q, want %q", got, s.String())
	}
}

func TestRenderScreenStyledKeepsLayout(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.SetCell(0, 0, core.Cell{Rune: '●', Color: core.ColorRed})
	s.SetCell(1, 0, core.Cell{Rune: '■', Color: core.ColorBlue, Bold: true})
	s.SetCell(2, 0, core.Cell{Rune: '▲', Color: core.ColorGreen, Reverse: true})
	s.DrawTextColor(0, 1, "gold", core.ColorGold)

	lines := strings.Split(RenderScreen(s), "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 10 {
			t.Errorf("line %d width = %d, want 10", i, w)
		}
	}
	if !strings.Contains(lines[0], "●") || !strings.Contains(lines[1], "gold") {
		t.Errorf("RenderScreen() lost content: %q", lines)
	}
}

func TestEveryColorHasPaletteEntry(t *testing.T) {
	for c := core.ColorRed; c <= core.ColorGold; c++ {
		if _, ok := palette[c]; !ok {
			t.Errorf("color %d has no palette entry", c)
		}
	}
}

func TestStyleOf(t *testing.T) {
	a := styleOf(core.Cell{Rune: 'a', Color: core.ColorRed, Bold: true})
	b := styleOf(core.Cell{Rune: 'b', Color: core.ColorRed, Bold: true})
	c := styleOf(core.Cell{Rune: 'a', Color: core.ColorRed, Reverse: true})
	if a != b {
		t.Error("cells differing only in rune have different styles")
	}
	if a == c {
		t.Error("bold and reverse cells share a style")
	}
}
