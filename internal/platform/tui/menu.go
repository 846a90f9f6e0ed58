package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gem-quest/internal/core"
	"github.com/vovakirdan/gem-quest/internal/games/gemquest"
	"github.com/vovakirdan/gem-quest/internal/storage"
)

// MenuItem is one entry of the level picker.
type MenuItem struct {
	GameID string
	Title  string
	Detail string
	Level  int // 1-based campaign level, 0 for score attack
	Locked bool
	Best   int // best recorded score, 0 when none
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuLockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	unlocked       int
	notice         string
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	help           help.Model
	quitting       bool
	selected       *MenuItem // Set when user picks a level
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a level picker for the given player. Without a store
// every level is open.
func NewMenuModel(store *storage.Store, player string, cfg core.RuntimeConfig) MenuModel {
	unlocked := gemquest.LevelCount()
	if store != nil {
		if n, err := store.Unlocked(player); err == nil {
			unlocked = n
		}
	}
	items := menuItems(unlocked)
	fillBests(store, items)

	return MenuModel{
		items:     items,
		cursor:    max(min(unlocked, gemquest.LevelCount())-1, 0),
		unlocked:  unlocked,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
}

// menuItems lists every campaign level followed by score attack.
func menuItems(unlocked int) []MenuItem {
	items := make([]MenuItem, 0, gemquest.LevelCount()+1)
	for i := range gemquest.LevelCount() {
		lvl := gemquest.GetLevel(i)
		goals := make([]string, len(lvl.Goals))
		for j, g := range lvl.Goals {
			goals[j] = fmt.Sprintf("%d %s", g.Target, g.Kind)
		}
		items = append(items, MenuItem{
			GameID: gemquest.CampaignID,
			Title:  fmt.Sprintf("%d. %s", i+1, lvl.Name),
			Detail: fmt.Sprintf("%d moves, %s", lvl.Moves, strings.Join(goals, ", ")),
			Level:  i + 1,
			Locked: i+1 > unlocked,
		})
	}
	return append(items, MenuItem{
		GameID: gemquest.AttackID,
		Title:  "Score Attack",
		Detail: "fixed moves, no goals",
	})
}

// fillBests looks up the best score of every item. Lookup errors leave 0.
func fillBests(store *storage.Store, items []MenuItem) {
	if store == nil {
		return
	}
	for i := range items {
		var (
			top []storage.ScoreEntry
			err error
		)
		if items[i].Level > 0 {
			top, err = store.TopLevelScores(items[i].GameID, items[i].Level, 1)
		} else {
			top, err = store.TopScores(items[i].GameID, 1)
		}
		if err == nil && len(top) > 0 {
			items[i].Best = top[0].Score
		}
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	m.notice = ""

	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if n := len(m.items); n > 0 {
			m.cursor = (m.cursor + n - 1) % n
		}

	case MenuActionDown:
		if n := len(m.items); n > 0 {
			m.cursor = (m.cursor + 1) % n
		}

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if item.Locked {
			m.notice = fmt.Sprintf("Locked: clear level %d first", item.Level-1)
			return m, nil
		}
		m.selected = &item
		return m, tea.Quit // Exit menu to start game

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit // Exit menu to show scoreboard
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("G E M   Q U E S T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Choose a level (%d of %d unlocked)",
		min(m.unlocked, gemquest.LevelCount()), gemquest.LevelCount()), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%-22s %-28s", cursor, item.Title, item.Detail)
		if item.Best > 0 {
			line += fmt.Sprintf(" best %d", item.Best)
		}
		switch {
		case item.Locked:
			line = menuLockedStyle.Render(fmt.Sprintf("%s%-22s locked", cursor, item.Title))
		case i == m.cursor:
			line = menuCursorStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(centerText(menuNoticeStyle.Render(m.notice), m.width))
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keyMapper.Menu), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, ignoring ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Level           int
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the level picker and returns the selection result.
func RunMenu(store *storage.Store, player string, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, player, cfg), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch sel := m.Selected(); {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case sel != nil && !m.IsQuitting():
		result.GameID, result.Level = sel.GameID, sel.Level
	default:
		result.Quit = true
	}
	return result, nil
}
