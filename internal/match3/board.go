package match3

import (
	"strings"
)

// DefaultBoardSize is the side length of the standard board.
const DefaultBoardSize = 8

// Board is a square grid of cells, stored row-major.
// Board values share storage on assignment; use Clone before mutating a
// board received from elsewhere.
type Board struct {
	size  int
	cells []Token
}

// NewBoard creates an empty size x size board.
func NewBoard(size int) Board {
	if size < 0 {
		size = 0
	}
	return Board{
		size:  size,
		cells: make([]Token, size*size),
	}
}

// BoardFromKinds builds a board from rows of kinds. Token ids are assigned
// row-major starting at 1. Rows must form a square; missing cells stay empty.
func BoardFromKinds(rows [][]Kind) Board {
	b := NewBoard(len(rows))
	var id uint64
	for r, row := range rows {
		for c, k := range row {
			if c >= b.size {
				break
			}
			if k == KindNone {
				continue
			}
			id++
			b.cells[r*b.size+c] = Token{ID: id, Kind: k, Row: r, Col: c}
		}
	}
	return b
}

// Size returns the side length.
func (b Board) Size() int {
	return b.size
}

// InBounds reports whether p lies on the board.
func (b Board) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

// At returns the token at p. Out-of-bounds positions return an empty token.
func (b Board) At(p Pos) Token {
	if !b.InBounds(p) {
		return Token{}
	}
	return b.cells[p.Row*b.size+p.Col]
}

// Kind returns the kind at p, KindNone for empty or out-of-bounds cells.
func (b Board) Kind(p Pos) Kind {
	return b.At(p).Kind
}

// Set places t at p and rewrites its coordinates.
// Out-of-bounds positions are ignored.
func (b Board) Set(p Pos, t Token) {
	if !b.InBounds(p) {
		return
	}
	if !t.Empty() {
		t.Row = p.Row
		t.Col = p.Col
	}
	b.cells[p.Row*b.size+p.Col] = t
}

// Clear vacates the cell at p.
func (b Board) Clear(p Pos) {
	if !b.InBounds(p) {
		return
	}
	b.cells[p.Row*b.size+p.Col] = Token{}
}

// Clone returns a deep copy.
func (b Board) Clone() Board {
	cells := make([]Token, len(b.cells))
	copy(cells, b.cells)
	return Board{size: b.size, cells: cells}
}

// Swapped returns a copy with the tokens at a and b exchanged.
func (b Board) Swapped(p, q Pos) Board {
	out := b.Clone()
	tp, tq := out.At(p), out.At(q)
	out.Set(p, tq)
	out.Set(q, tp)
	return out
}

// Full reports whether every cell holds a token.
func (b Board) Full() bool {
	for _, t := range b.cells {
		if t.Empty() {
			return false
		}
	}
	return true
}

// Tokens returns the non-empty tokens in row-major order.
func (b Board) Tokens() []Token {
	tokens := make([]Token, 0, len(b.cells))
	for _, t := range b.cells {
		if !t.Empty() {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Counts tallies the kinds present on the board.
func (b Board) Counts() Tally {
	counts := make(Tally)
	for _, t := range b.cells {
		if !t.Empty() {
			counts.Add(t.Kind, 1)
		}
	}
	return counts
}

// Kinds returns the board as rows of kinds.
func (b Board) Kinds() [][]Kind {
	rows := make([][]Kind, b.size)
	for r := range b.size {
		rows[r] = make([]Kind, b.size)
		for c := range b.size {
			rows[r][c] = b.cells[r*b.size+c].Kind
		}
	}
	return rows
}

// Equal reports whether both boards hold the same kinds and markers.
// Token ids and the fresh flag are ignored.
func (b Board) Equal(other Board) bool {
	if b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i].Kind != other.cells[i].Kind || b.cells[i].Special != other.cells[i].Special {
			return false
		}
	}
	return true
}

// String renders the board with the first letter of each kind,
// '.' for empty cells and '*' for special-marked tokens.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow(b.size*b.size + b.size)
	for r := range b.size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b.size {
			t := b.cells[r*b.size+c]
			switch {
			case t.Empty():
				sb.WriteByte('.')
			case t.Special != SpecialNone:
				sb.WriteByte('*')
			default:
				sb.WriteByte(t.Kind.String()[0])
			}
		}
	}
	return sb.String()
}
