package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gem-quest/internal/games/gemquest"
	"github.com/vovakirdan/gem-quest/internal/storage"
)

const (
	boardLimit   = 100 // rows loaded per board
	boardChrome  = 9   // title, tabs, summary, help and borders
	playerColMax = 16
)

var (
	boardTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardSummaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boardEmptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
)

// ScoreTable is one list of scores the scoreboard can show.
type ScoreTable struct {
	Title  string
	GameID string
	Level  int // 0 shows every level of the mode
}

// ScoreTables lists the campaign overall, each campaign level and score attack.
func ScoreTables() []ScoreTable {
	tables := []ScoreTable{{Title: "Campaign", GameID: gemquest.CampaignID}}
	for i, name := range gemquest.LevelNames() {
		tables = append(tables, ScoreTable{
			Title:  fmt.Sprintf("L%d %s", i+1, name),
			GameID: gemquest.CampaignID,
			Level:  i + 1,
		})
	}
	return append(tables, ScoreTable{Title: "Score Attack", GameID: gemquest.AttackID})
}

// load reads the rows of t from store. A nil store has no rows.
func (t ScoreTable) load(store *storage.Store) ([]storage.ScoreEntry, error) {
	if store == nil {
		return nil, nil
	}
	if t.Level > 0 {
		return store.TopLevelScores(t.GameID, t.Level, boardLimit)
	}
	return store.TopScores(t.GameID, boardLimit)
}

// boardSummary is the line printed under a board.
type boardSummary struct {
	Runs, Wins, Best int
	Mine             int // runs by the viewing player
}

func summarize(entries []storage.ScoreEntry, player string) boardSummary {
	var s boardSummary
	for _, e := range entries {
		s.Runs++
		if e.Won {
			s.Wins++
		}
		if e.Score > s.Best {
			s.Best = e.Score
		}
		if e.Player == player {
			s.Mine++
		}
	}
	return s
}

func (s boardSummary) String() string {
	if s.Runs == 0 {
		return ""
	}
	return fmt.Sprintf("%d runs  %d won  best %d  yours %d", s.Runs, s.Wins, s.Best, s.Mine)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next board")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab/←", "prev board")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Up, k.Down, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Next, k.Prev, k.Back, k.Quit},
	}
}

// ScoreboardModel pages through the score tables.
type ScoreboardModel struct {
	store  *storage.Store
	player string
	boards []ScoreTable
	active int

	entries []storage.ScoreEntry
	summary boardSummary
	loadErr error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard for player, whose runs are marked.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	if player == "" {
		player = storage.LocalPlayer
	}
	m := ScoreboardModel{
		store:  store,
		player: player,
		boards: ScoreTables(),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = newBoardTable(width, height)
	m.selectBoard(0)
	return m
}

func newBoardTable(width, height int) table.Model {
	playerW := min(max(width-50, 8), playerColMax)
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Player", Width: playerW},
			{Title: "Lvl", Width: 4},
			{Title: "Score", Width: 8},
			{Title: "Result", Width: 7},
			{Title: "When", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-boardChrome, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// selectBoard switches to board i, wrapping around, and reloads its rows.
func (m *ScoreboardModel) selectBoard(i int) {
	if len(m.boards) == 0 {
		return
	}
	n := len(m.boards)
	m.active = ((i % n) + n) % n
	m.entries, m.loadErr = m.boards[m.active].load(m.store)
	m.summary = summarize(m.entries, m.player)
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, 0, len(m.entries))
	for i, e := range m.entries {
		rows = append(rows, m.row(i+1, e))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) row(rank int, e storage.ScoreEntry) table.Row {
	player := e.Player
	if player == m.player {
		player = "* " + player
	}
	level, result := "-", "-"
	if e.Level > 0 {
		level = strconv.Itoa(e.Level)
		result = "lost"
		if e.Won {
			result = "won"
		}
	}
	return table.Row{
		strconv.Itoa(rank),
		player,
		level,
		strconv.Itoa(e.Score),
		result,
		e.CreatedAt.Format("Jan 02 15:04"),
	}
}

// Board returns the table currently shown.
func (m ScoreboardModel) Board() ScoreTable {
	if len(m.boards) == 0 {
		return ScoreTable{}
	}
	return m.boards[m.active]
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.selectBoard(m.active + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.selectBoard(m.active - 1)
			return m, nil
		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.table.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = newBoardTable(m.width, m.height)
		m.fillRows()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")

	var body string
	switch {
	case m.loadErr != nil:
		body = boardEmptyStyle.Render("Scores unavailable: " + m.loadErr.Error())
	case len(m.entries) == 0:
		body = boardEmptyStyle.Render("No scores recorded yet.\nFinish a level to set a high score!")
	default:
		body = m.table.View()
	}
	b.WriteString(centerText(boardFrameStyle.Render(body), m.width))
	b.WriteString("\n")

	if line := m.summary.String(); line != "" {
		b.WriteString(centerText(boardSummaryStyle.Render(line), m.width))
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

// tabs shows the active board with as many neighbours as fit the width.
func (m ScoreboardModel) tabs() string {
	if len(m.boards) == 0 {
		return ""
	}
	limit := m.width - 4
	line := boardActiveStyle.Render(m.boards[m.active].Title)
	for d := 1; d < len(m.boards); d++ {
		grown := false
		if i := m.active - d; i >= 0 {
			next := boardTabStyle.Render(m.boards[i].Title) + line
			if lipgloss.Width(next) <= limit {
				line, grown = next, true
			}
		}
		if i := m.active + d; i < len(m.boards) {
			next := line + boardTabStyle.Render(m.boards[i].Title)
			if lipgloss.Width(next) <= limit {
				line, grown = next, true
			}
		}
		if !grown {
			break
		}
	}
	return line
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen for player.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, player, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
