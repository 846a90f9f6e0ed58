package match3

import "math/rand"

// Initialization attempt limits.
const (
	DefaultCellAttempts  = 50
	DefaultBoardAttempts = 100
)

// InitLimits bounds the retries of Initialize.
type InitLimits struct {
	CellAttempts  int // redraws per cell to avoid a run of three
	BoardAttempts int // full refills to obtain a legal move
}

// DefaultInitLimits returns the standard retry budget.
func DefaultInitLimits() InitLimits {
	return InitLimits{
		CellAttempts:  DefaultCellAttempts,
		BoardAttempts: DefaultBoardAttempts,
	}
}

// Initialize builds a size x size board with no standing runs and at least
// one legal move. When every attempt fails it returns the last board built
// and false; callers treat that as a degraded but playable start.
func Initialize(size int, gen *Generator, limits InitLimits) (Board, bool) {
	if limits.CellAttempts <= 0 {
		limits.CellAttempts = DefaultCellAttempts
	}
	if limits.BoardAttempts <= 0 {
		limits.BoardAttempts = DefaultBoardAttempts
	}

	var b Board
	for range limits.BoardAttempts {
		b = fill(size, gen, limits.CellAttempts)
		if !HasMatch(b) && HasLegalMove(b) {
			return b, true
		}
	}
	return b, false
}

// InitializeBoard builds a board from palette using rng with default limits
// and no special markers.
func InitializeBoard(size int, palette []Kind, rng *rand.Rand) Board {
	b, _ := Initialize(size, NewGenerator(rng, palette, 0), DefaultInitLimits())
	return b
}

// fill places tokens row-major, redrawing any token that would complete a
// run with the two cells to its left or the two cells above it.
func fill(size int, gen *Generator, cellAttempts int) Board {
	b := NewBoard(size)
	for r := range size {
		for c := range size {
			var t Token
			for range cellAttempts {
				t = gen.Token(r, c, false)
				if !completesRun(b, r, c, t) {
					break
				}
			}
			b.Set(Pos{Row: r, Col: c}, t)
		}
	}
	return b
}

func completesRun(b Board, r, c int, t Token) bool {
	if !t.Matchable() {
		return false
	}
	if c >= 2 && sameKind(b.At(Pos{Row: r, Col: c - 1}), t.Kind) && sameKind(b.At(Pos{Row: r, Col: c - 2}), t.Kind) {
		return true
	}
	if r >= 2 && sameKind(b.At(Pos{Row: r - 1, Col: c}), t.Kind) && sameKind(b.At(Pos{Row: r - 2, Col: c}), t.Kind) {
		return true
	}
	return false
}
