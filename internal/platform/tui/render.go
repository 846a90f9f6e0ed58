package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gem-quest/internal/core"
)

// palette maps core.Color to ANSI 256 color codes.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:     lipgloss.Color("196"),
	core.ColorBlue:    lipgloss.Color("33"),
	core.ColorGreen:   lipgloss.Color("40"),
	core.ColorYellow:  lipgloss.Color("226"),
	core.ColorPurple:  lipgloss.Color("129"),
	core.ColorOrange:  lipgloss.Color("208"),
	core.ColorPink:    lipgloss.Color("213"),
	core.ColorCyan:    lipgloss.Color("51"),
	core.ColorLime:    lipgloss.Color("118"),
	core.ColorMagenta: lipgloss.Color("201"),
	core.ColorWhite:   lipgloss.Color("15"),
	core.ColorGray:    lipgloss.Color("245"),
	core.ColorGold:    lipgloss.Color("220"),
}

// cellStyle is everything about a cell except its rune.
type cellStyle struct {
	color   core.Color
	bold    bool
	reverse bool
}

func styleOf(c core.Cell) cellStyle {
	return cellStyle{color: c.Color, bold: c.Bold, reverse: c.Reverse}
}

// styles caches one lipgloss style per cell style. SSH sessions render
// concurrently.
var (
	stylesMu sync.Mutex
	styles   = map[cellStyle]lipgloss.Style{}
)

func (cs cellStyle) style() lipgloss.Style {
	stylesMu.Lock()
	defer stylesMu.Unlock()
	if st, ok := styles[cs]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if fg, ok := palette[cs.color]; ok {
		st = st.Foreground(fg)
	}
	if cs.bold {
		st = st.Bold(true)
	}
	if cs.reverse {
		st = st.Reverse(true)
	}
	styles[cs] = st
	return st
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := styleOf(s.GetCell(x, y))

			// Collect consecutive cells with the same style
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if styleOf(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start == (cellStyle{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(start.style().Render(run.String()))
		}
	}
	return sb.String()
}
