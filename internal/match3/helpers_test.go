package match3

import (
	"testing"
)

var letterKinds = map[rune]Kind{
	'R': KindRed,
	'B': KindBlue,
	'G': KindGreen,
	'Y': KindYellow,
	'P': KindPurple,
	'O': KindOrange,
	'K': KindPink,
	'C': KindCyan,
	'.': KindNone,
}

// parseBoard builds a board from rows of kind letters.
func parseBoard(t *testing.T, rows ...string) Board {
	t.Helper()
	kinds := make([][]Kind, len(rows))
	for r, row := range rows {
		if len(row) != len(rows) {
			t.Fatalf("row %d has %d cells, want %d", r, len(row), len(rows))
		}
		for _, ch := range row {
			k, ok := letterKinds[ch]
			if !ok {
				t.Fatalf("unknown kind letter %q", ch)
			}
			kinds[r] = append(kinds[r], k)
		}
	}
	return BoardFromKinds(kinds)
}

// letters renders b with the same letters parseBoard accepts.
func letters(b Board) []string {
	byKind := make(map[Kind]rune, len(letterKinds))
	for ch, k := range letterKinds {
		byKind[k] = ch
	}
	rows := make([]string, b.Size())
	for r := range b.Size() {
		buf := make([]rune, b.Size())
		for c := range b.Size() {
			buf[c] = byKind[b.Kind(P(r, c))]
		}
		rows[r] = string(buf)
	}
	return rows
}

func assertRows(t *testing.T, b Board, want ...string) {
	t.Helper()
	got := letters(b)
	for r := range want {
		if got[r] != want[r] {
			t.Errorf("row %d = %s, want %s\nboard:\n%s", r, got[r], want[r], b)
		}
	}
}

// deadBoard has no runs and no legal move.
var deadBoard = []string{
	"RBGYPORB",
	"GYPORBGY",
	"PORBGYPO",
	"RBGYPORB",
	"GYPORBGY",
	"PORBGYPO",
	"RBGYPORB",
	"GYPORBGY",
}

// greenBoard is deadBoard with a bottom row where swapping (7,2) and (7,3)
// forms a single green run at (7,0)-(7,2).
var greenBoard = []string{
	"RBGYPORB",
	"GYPORBGY",
	"PORBGYPO",
	"RBGYPORB",
	"GYPORBGY",
	"PORBGYPO",
	"RBGYPORB",
	"GGYGRBGY",
}

// chainBoard is greenBoard set up so the green run's drop lines up four
// purples on row 6.
var chainBoard = []string{
	"RBGYPORB",
	"GYPORBGY",
	"PORBGYPO",
	"RBGYPORB",
	"GYPORBGY",
	"GPPBGYPO",
	"RBGPPORB",
	"GGYGRBGY",
}

// newTestEngine creates an engine with the default options and loads rows.
func newTestEngine(t *testing.T, policy MissPolicy, rows ...string) *Engine {
	t.Helper()
	opts := DefaultOptions()
	opts.Seed = 42
	opts.MissPolicy = policy
	e, err := New(opts)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if len(rows) > 0 {
		e.LoadBoard(parseBoard(t, rows...))
	}
	return e
}
