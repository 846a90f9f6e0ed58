package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	if err := store.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if _, err := store.SaveScore("gemquest", 500); err != nil {
		t.Fatalf("SaveScore() error: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() error: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("gemquest")
	if err != nil {
		t.Fatalf("HighScore() error: %v", err)
	}
	if high != 500 {
		t.Errorf("HighScore() after reopen = %d, want 500", high)
	}
}

func TestSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	scores := []int{100, 500, 200, 1000, 300}
	for _, s := range scores {
		if _, err := store.SaveScore("gemquest", s); err != nil {
			t.Fatalf("SaveScore(%d) error: %v", s, err)
		}
	}

	top, err := store.TopScores("gemquest", 3)
	if err != nil {
		t.Fatalf("TopScores() error: %v", err)
	}

	if len(top) != 3 {
		t.Fatalf("TopScores() returned %d entries, want 3", len(top))
	}

	expected := []int{1000, 500, 300}
	for i, e := range top {
		if e.Score != expected[i] {
			t.Errorf("TopScores()[%d].Score = %d, want %d", i, e.Score, expected[i])
		}
		if e.GameID != "gemquest" {
			t.Errorf("TopScores()[%d].GameID = %q, want %q", i, e.GameID, "gemquest")
		}
		if e.Player != LocalPlayer {
			t.Errorf("TopScores()[%d].Player = %q, want %q", i, e.Player, LocalPlayer)
		}
	}
}

func TestSaveRun(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{GameID: "gemquest", Player: "alice", Level: 3, Score: 1200, Won: true, MovesLeft: 4})
	if err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("SaveRun() run id = %q, want a uuid", id)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() error: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() = nil")
	}
	if got.Player != "alice" || got.Level != 3 || got.Score != 1200 || !got.Won || got.MovesLeft != 4 {
		t.Errorf("RunByID() = %+v", *got)
	}

	missing, err := store.RunByID("no-such-run")
	if err != nil {
		t.Fatalf("RunByID(missing) error: %v", err)
	}
	if missing != nil {
		t.Errorf("RunByID(missing) = %+v, want nil", *missing)
	}
}

func TestSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{RunID: "fixed-id", GameID: "gemquest", Score: 10})
	if err != nil {
		t.Fatalf("SaveRun() error: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("SaveRun() = %q, want fixed-id", id)
	}
	if _, err := store.SaveRun(Run{RunID: "fixed-id", GameID: "gemquest", Score: 20}); err == nil {
		t.Error("SaveRun() with duplicate run id returned nil error")
	}
}

func TestTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 15 {
		store.SaveScore("gemquest", i*100)
	}

	top, err := store.TopScores("gemquest", 10)
	if err != nil {
		t.Fatalf("TopScores() error: %v", err)
	}
	if len(top) != 10 {
		t.Errorf("TopScores(10) returned %d entries", len(top))
	}

	top, err = store.TopScores("gemquest", 0)
	if err != nil {
		t.Fatalf("TopScores() error: %v", err)
	}
	if len(top) != 10 {
		t.Errorf("TopScores(0) returned %d entries, want 10", len(top))
	}
}

func TestTopLevelScores(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{GameID: "gemquest", Level: 1, Score: 300},
		{GameID: "gemquest", Level: 2, Score: 900},
		{GameID: "gemquest", Level: 1, Score: 700},
		{GameID: "gemquest_attack", Level: 1, Score: 5000},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() error: %v", err)
		}
	}

	top, err := store.TopLevelScores("gemquest", 1, 5)
	if err != nil {
		t.Fatalf("TopLevelScores() error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopLevelScores() returned %d entries, want 2", len(top))
	}
	if top[0].Score != 700 || top[1].Score != 300 {
		t.Errorf("TopLevelScores() = %d, %d; want 700, 300", top[0].Score, top[1].Score)
	}
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("gemquest")
	if err != nil {
		t.Fatalf("HighScore() error: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty = %d, want 0", high)
	}

	store.SaveScore("gemquest", 100)
	store.SaveScore("gemquest", 500)
	store.SaveScore("gemquest", 200)

	high, err = store.HighScore("gemquest")
	if err != nil {
		t.Fatalf("HighScore() error: %v", err)
	}
	if high != 500 {
		t.Errorf("HighScore() = %d, want 500", high)
	}

	store.SaveScore("gemquest_attack", 1000)
	high, _ = store.HighScore("gemquest")
	if high != 500 {
		t.Errorf("HighScore(gemquest) = %d, want 500 (not affected by other modes)", high)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("gemquest", 100)
	store.SaveScore("gemquest", 200)
	store.SaveScore("gemquest_attack", 300)

	if err := store.ClearScores("gemquest"); err != nil {
		t.Fatalf("ClearScores() error: %v", err)
	}

	top, _ := store.TopScores("gemquest", 10)
	if len(top) != 0 {
		t.Errorf("TopScores() after clear returned %d entries", len(top))
	}

	top, _ = store.TopScores("gemquest_attack", 10)
	if len(top) != 1 {
		t.Errorf("TopScores(gemquest_attack) returned %d entries, want 1", len(top))
	}
}

func TestAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("gemquest", i*10)
	}

	all, err := store.AllScores("gemquest")
	if err != nil {
		t.Fatalf("AllScores() error: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("AllScores() returned %d entries, want 5", len(all))
	}
	if all[0].Score != 40 {
		t.Errorf("AllScores()[0].Score = %d, want 40", all[0].Score)
	}
}

func TestProgress(t *testing.T) {
	store := openTestStore(t)

	got, err := store.Unlocked("alice")
	if err != nil {
		t.Fatalf("Unlocked() error: %v", err)
	}
	if got != 1 {
		t.Errorf("Unlocked() for new player = %d, want 1", got)
	}

	steps := []struct {
		unlock int
		want   int
	}{
		{2, 2},
		{4, 4},
		{3, 4}, // never moves backwards
	}
	for _, s := range steps {
		if err := store.Unlock("alice", s.unlock); err != nil {
			t.Fatalf("Unlock(%d) error: %v", s.unlock, err)
		}
		got, _ := store.Unlocked("alice")
		if got != s.want {
			t.Errorf("after Unlock(%d) Unlocked() = %d, want %d", s.unlock, got, s.want)
		}
	}

	if other, _ := store.Unlocked("bob"); other != 1 {
		t.Errorf("Unlocked(bob) = %d, want 1", other)
	}

	if err := store.ResetProgress("alice"); err != nil {
		t.Fatalf("ResetProgress() error: %v", err)
	}
	if got, _ := store.Unlocked("alice"); got != 1 {
		t.Errorf("Unlocked() after reset = %d, want 1", got)
	}
}

func TestProgressDefaultPlayer(t *testing.T) {
	store := openTestStore(t)

	if err := store.Unlock("", 3); err != nil {
		t.Fatalf("Unlock() error: %v", err)
	}
	got, _ := store.Unlocked(LocalPlayer)
	if got != 3 {
		t.Errorf("Unlocked(local) = %d, want 3", got)
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "gemquest", Level: 1, Score: 100, Won: true})
	store.SaveRun(Run{GameID: "gemquest", Level: 2, Score: 300})
	store.SaveRun(Run{GameID: "gemquest_attack", Score: 1000})

	stats, err := store.GetGameStats("gemquest")
	if err != nil {
		t.Fatalf("GetGameStats() error: %v", err)
	}
	if stats.GamesCount != 2 || stats.Wins != 1 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("GetGameStats() = %+v", *stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}

	empty, err := store.GetGameStats("never_played")
	if err != nil {
		t.Fatalf("GetGameStats(empty) error: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("GetGameStats(empty) = %+v", *empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAllGamesStats() returned %d modes, want 2", len(all))
	}
	if all["gemquest_attack"].HighScore != 1000 {
		t.Errorf("attack high score = %d, want 1000", all["gemquest_attack"].HighScore)
	}
}

func TestExpandHomePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	testDir := filepath.Join(home, ".gemquest_test_"+t.Name())
	defer os.RemoveAll(testDir)

	dbPath := "~/.gemquest_test_" + t.Name() + "/test.db"
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with ~ error: %v", err)
	}
	store.Close()

	expectedPath := filepath.Join(testDir, "test.db")
	if _, err := os.Stat(expectedPath); os.IsNotExist(err) {
		t.Errorf("Database not created at expanded path %s", expectedPath)
	}
}

func TestSchemaVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	for range 2 {
		store, err := Open(dbPath)
		if err != nil {
			t.Fatalf("Open() error: %v", err)
		}
		v, err := store.SchemaVersion()
		if err != nil {
			t.Fatalf("SchemaVersion() error: %v", err)
		}
		if v != len(migrations) {
			t.Errorf("SchemaVersion() = %d, want %d", v, len(migrations))
		}
		store.Close()
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"~/x/scores.db", filepath.Join(home, "x", "scores.db")},
		{"/tmp/scores.db", "/tmp/scores.db"},
		{"scores.db", "scores.db"},
	}
	for _, tt := range tests {
		got, err := expandHome(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("expandHome(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
