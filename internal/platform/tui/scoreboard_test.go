package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gem-quest/internal/games/gemquest"
	"github.com/vovakirdan/gem-quest/internal/storage"
)

func updateScoreboard(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return sb
}

func TestScoreboardPaging(t *testing.T) {
	m := NewScoreboardModel(nil, "", 100, 30)
	if got := m.Board().Title; got != "Campaign" {
		t.Fatalf("first board = %q, want Campaign", got)
	}

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.Board().GameID; got != gemquest.AttackID {
		t.Errorf("prev from first board = %q, want %q", got, gemquest.AttackID)
	}
	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Board().Title; got != "Campaign" {
		t.Errorf("next from last board = %q, want Campaign", got)
	}
	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.Board().Level; got != 1 {
		t.Errorf("second board level = %d, want 1", got)
	}
}

func TestScoreboardRowsAndSummary(t *testing.T) {
	store := openStore(t)
	runs := []storage.Run{
		{GameID: gemquest.CampaignID, Player: "alice", Level: 1, Score: 900, Won: true},
		{GameID: gemquest.CampaignID, Player: "bob", Level: 1, Score: 400},
		{GameID: gemquest.CampaignID, Player: "alice", Level: 2, Score: 1200, Won: true},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() error: %v", err)
		}
	}

	m := NewScoreboardModel(store, "alice", 100, 30)
	if len(m.entries) != 3 {
		t.Fatalf("campaign board has %d rows, want 3", len(m.entries))
	}
	want := boardSummary{Runs: 3, Wins: 2, Best: 1200, Mine: 2}
	if m.summary != want {
		t.Errorf("summary = %+v, want %+v", m.summary, want)
	}
	if row := m.row(1, m.entries[0]); row[1] != "* alice" || row[4] != "won" {
		t.Errorf("top row = %v, want marked alice win", row)
	}

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if len(m.entries) != 2 {
		t.Errorf("level 1 board has %d rows, want 2", len(m.entries))
	}
	if view := m.View(); !strings.Contains(view, "2 runs") {
		t.Errorf("view missing summary line:\n%s", view)
	}
}

func TestScoreboardEmptyAndExit(t *testing.T) {
	m := NewScoreboardModel(nil, "", 80, 24)
	if view := m.View(); !strings.Contains(view, "No scores recorded yet") {
		t.Errorf("empty board view:\n%s", view)
	}

	back := updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.IsGoingBack() || back.IsQuitting() {
		t.Error("esc should go back without quitting")
	}
	quit := updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
	if quit.View() != "" {
		t.Error("view after quit should be empty")
	}
}
