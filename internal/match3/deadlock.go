package match3

import (
	"errors"
	"math/rand"
)

// ErrUnsolvable is returned when reshuffling cannot produce a board with a
// legal move and no standing runs within the attempt budget.
var ErrUnsolvable = errors.New("match3: board has no solvable arrangement")

// DefaultReshuffleAttempts bounds ReshuffleUntilSolvable.
const DefaultReshuffleAttempts = 100

// Move is a pair of adjacent positions.
type Move struct {
	A Pos
	B Pos
}

// FindLegalMove returns the first swap, in row-major order with right tried
// before down, that produces a match.
func FindLegalMove(b Board) (Move, bool) {
	scratch := b.Clone()
	for r := range b.size {
		for c := range b.size {
			a := Pos{Row: r, Col: c}
			for _, d := range [...]Pos{{Row: 0, Col: 1}, {Row: 1, Col: 0}} {
				q := Pos{Row: r + d.Row, Col: c + d.Col}
				if !b.InBounds(q) {
					continue
				}
				if swapMatches(scratch, a, q) {
					return Move{A: a, B: q}, true
				}
			}
		}
	}
	return Move{}, false
}

// HasLegalMove reports whether any adjacent swap yields a match.
func HasLegalMove(b Board) bool {
	_, ok := FindLegalMove(b)
	return ok
}

// swapMatches swaps a and q on scratch, tests for a run and swaps back.
func swapMatches(scratch Board, a, q Pos) bool {
	ta, tq := scratch.At(a), scratch.At(q)
	if ta.Kind == tq.Kind && ta.Special == tq.Special {
		return false
	}
	scratch.cells[a.Row*scratch.size+a.Col] = tq
	scratch.cells[q.Row*scratch.size+q.Col] = ta
	found := HasMatch(scratch)
	scratch.cells[a.Row*scratch.size+a.Col] = ta
	scratch.cells[q.Row*scratch.size+q.Col] = tq
	return found
}

// Reshuffle re-deals the board's tokens in row-major order after a
// Fisher-Yates shuffle. The token multiset is preserved and coordinates are
// rewritten. The input board is not modified.
func Reshuffle(b Board, rng *rand.Rand) Board {
	tokens := b.Tokens()
	for i := len(tokens) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}

	out := NewBoard(b.size)
	for i, t := range tokens {
		out.Set(Pos{Row: i / b.size, Col: i % b.size}, t)
	}
	return out
}

// ReshuffleUntilSolvable reshuffles until the board has a legal move and no
// standing runs. It returns the last attempt together with ErrUnsolvable
// when attempts run out.
func ReshuffleUntilSolvable(b Board, rng *rand.Rand, attempts int) (Board, int, error) {
	if attempts <= 0 {
		attempts = DefaultReshuffleAttempts
	}
	current := b
	for i := 1; i <= attempts; i++ {
		current = Reshuffle(current, rng)
		if !HasMatch(current) && HasLegalMove(current) {
			return current, i, nil
		}
	}
	return current, attempts, ErrUnsolvable
}
