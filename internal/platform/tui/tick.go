// Package tui provides the Bubble Tea front end for Gem Quest.
// It runs the tick loop, maps keys and mouse clicks to game actions, and
// serves the level picker, scoreboard and game over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gem-quest/internal/core"
)

// TickMsg drives one game step.
type TickMsg time.Time

// tickCmd schedules the next TickMsg one step of cfg away.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.TickDuration(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
