package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gem-quest/internal/audio"
	"github.com/vovakirdan/gem-quest/internal/config"
	"github.com/vovakirdan/gem-quest/internal/core"
	"github.com/vovakirdan/gem-quest/internal/match3"
	"github.com/vovakirdan/gem-quest/internal/registry"
	"github.com/vovakirdan/gem-quest/internal/storage"
)

// resizer is implemented by games that can follow a terminal resize without
// restarting.
type resizer interface {
	Resize(w, h int)
}

// notifiable is implemented by games that accept extra engine listeners.
type notifiable interface {
	AddNotifier(n match3.Notifier)
}

// Options are the collaborators a game model works with. All are optional.
type Options struct {
	Store    *storage.Store
	Player   string        // Name scores and progress are stored under
	Audio    *audio.Player // Sound cues; nil plays nothing
	Logger   *log.Logger
	Embedded bool // Running inside a session: Back returns to its menu
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	sound      *audio.Player
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	player     string
	runID      string
	embedded   bool
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current run has been recorded
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Player == "" {
		opts.Player = storage.LocalPlayer
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Audio != nil {
		if n, ok := game.(notifiable); ok {
			n.AddNotifier(opts.Audio)
		}
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		sound:      opts.Audio,
		logger:     opts.Logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		player:     opts.Player,
		runID:      uuid.NewString(),
		embedded:   opts.Embedded,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMapper.Game.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keyMapper.Game.Sound):
		if m.sound != nil {
			m.logger.Debug("sound toggled", "enabled", m.sound.Toggle())
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves a finished or paused game; otherwise it pauses.
	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit
		}
		m.inputFrame.Set(core.ActionPause)
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games without a layout of their own start over at the new size.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.newRun()
		m.inputFrame.Clear()
		return m, tickCmd(m.config)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// A new level began after a recorded one.
	if !m.gameState.GameOver && m.scoreSaved {
		m.newRun()
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.recordRun()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config)
}

func (m *Model) newRun() {
	m.runID = uuid.NewString()
	m.scoreSaved = false
}

// recordRun stores the finished run and unlocks the next level after a win.
// Storage is best-effort; the game continues regardless.
func (m *Model) recordRun() {
	if m.store == nil {
		return
	}
	st := m.gameState
	if st.Score > 0 || st.Won {
		_, err := m.store.SaveRun(storage.Run{
			RunID:     m.runID,
			GameID:    m.game.ID(),
			Player:    m.player,
			Level:     st.Level,
			Score:     st.Score,
			Won:       st.Won,
			MovesLeft: st.MovesLeft,
		})
		if err != nil {
			m.logger.Warn("could not save run", "error", err)
		}
	}
	if st.Won && st.Level > 0 {
		if err := m.store.Unlock(m.player, st.Level+1); err != nil {
			m.logger.Warn("could not save progress", "error", err)
		}
	}
}

// saveScreenshot saves the current screen to ~/.gemquest/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(config.UserDir(), "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// RunID returns the ID the current run is stored under.
func (m Model) RunID() string {
	return m.runID
}

// Run starts the Bubble Tea program with the given game.
// Returns true if the player left with Back rather than quitting.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Gems can be picked with the mouse
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
