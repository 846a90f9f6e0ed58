// Package match3 implements the tile-matching board engine: board model,
// match detection, cascade resolution, combo scoring, the bonus progress
// meter, solvable initialization, deadlock handling and the swap controller.
//
// The package has no terminal or storage dependencies. Everything that
// happens on the board is reported through a Notifier, and every timed
// phase goes through a Scheduler so tests can run without real time.
package match3

import "strings"

// Kind is the type of a token. KindNone marks an empty cell.
type Kind uint8

// Token kinds. The first six form the default palette.
const (
	KindNone Kind = iota
	KindRed
	KindBlue
	KindGreen
	KindYellow
	KindPurple
	KindOrange
	KindPink
	KindCyan
	KindLime
	KindMagenta
)

var kindNames = [...]string{
	KindNone:    "none",
	KindRed:     "red",
	KindBlue:    "blue",
	KindGreen:   "green",
	KindYellow:  "yellow",
	KindPurple:  "purple",
	KindOrange:  "orange",
	KindPink:    "pink",
	KindCyan:    "cyan",
	KindLime:    "lime",
	KindMagenta: "magenta",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Valid reports whether k is a real token kind (not KindNone).
func (k Kind) Valid() bool {
	return k > KindNone && k <= KindMagenta
}

// ParseKind converts a name like "red" into a Kind.
func ParseKind(name string) (Kind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k := KindRed; k <= KindMagenta; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindNone, false
}

// FullPalette returns all ten kinds in declaration order.
func FullPalette() []Kind {
	kinds := make([]Kind, 0, int(KindMagenta))
	for k := KindRed; k <= KindMagenta; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// DefaultPalette returns the first n kinds of the full palette.
// n is clamped to [3, 10].
func DefaultPalette(n int) []Kind {
	if n < 3 {
		n = 3
	}
	if n > int(KindMagenta) {
		n = int(KindMagenta)
	}
	return FullPalette()[:n]
}

// Special is a marker attached to a token at spawn time.
//
// Specials are generated but no effect consumes them yet: a marked token is
// simply excluded from run detection.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialArea
	SpecialRow
	SpecialColumn
	SpecialColor
)

// String returns the marker name.
func (s Special) String() string {
	switch s {
	case SpecialNone:
		return "none"
	case SpecialArea:
		return "area"
	case SpecialRow:
		return "row"
	case SpecialColumn:
		return "column"
	case SpecialColor:
		return "color"
	default:
		return "unknown"
	}
}

// Token is a typed unit occupying one cell. The zero Token is an empty cell.
type Token struct {
	ID      uint64
	Kind    Kind
	Row     int
	Col     int
	Fresh   bool // spawned by the latest cascade step; only used for entry animation
	Special Special
}

// Empty reports whether the token represents a vacated cell.
func (t Token) Empty() bool {
	return t.Kind == KindNone
}

// Matchable reports whether the token can take part in an ordinary run.
func (t Token) Matchable() bool {
	return t.Kind != KindNone && t.Special == SpecialNone
}

// Pos is a (row, column) grid position.
type Pos struct {
	Row int
	Col int
}

// P is shorthand for Pos{Row: row, Col: col}.
func P(row, col int) Pos {
	return Pos{Row: row, Col: col}
}

// Adjacent reports whether a and b are at Manhattan distance exactly 1.
func Adjacent(a, b Pos) bool {
	dr := a.Row - b.Row
	dc := a.Col - b.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// Tally counts tokens per kind.
type Tally map[Kind]int

// Add increments the count for k.
func (t Tally) Add(k Kind, n int) {
	if n == 0 {
		return
	}
	t[k] += n
}

// Merge adds every count from other into t.
func (t Tally) Merge(other Tally) {
	for k, n := range other {
		t.Add(k, n)
	}
}

// Total returns the sum of all counts.
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// Kinds returns the kinds with a non-zero count, in palette order.
func (t Tally) Kinds() []Kind {
	var kinds []Kind
	for k := KindRed; k <= KindMagenta; k++ {
		if t[k] > 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
