// Package core provides fundamental types and utilities shared by the game
// logic and the platform. It contains no external dependencies (especially
// no Bubble Tea) to keep game logic pure and testable.
package core

// Rect represents an axis-aligned area of the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Centered returns a w x h rectangle centered inside r.
func (r Rect) Centered(w, h int) Rect {
	return Rect{
		X: r.X + (r.W-w)/2,
		Y: r.Y + (r.H-h)/2,
		W: w,
		H: h,
	}
}

// Inset shrinks r by n on every side. The size never goes below zero.
func (r Rect) Inset(n int) Rect {
	return Rect{
		X: r.X + n,
		Y: r.Y + n,
		W: max(r.W-2*n, 0),
		H: max(r.H-2*n, 0),
	}
}

// Grid splits an area into equal cells, row 0 at the top.
type Grid struct {
	Origin       Rect // Top-left cell starts at Origin.X, Origin.Y
	CellW, CellH int
}

// FitGrid returns a rows x cols grid with the first cell size from sizes
// that fits inside area together with a one-cell border, centered
// horizontally at the top of area. The returned Rect is the grid with its
// border. ok is false when no size fits.
func FitGrid(area Rect, rows, cols int, sizes [][2]int) (grid Grid, border Rect, ok bool) {
	for _, s := range sizes {
		w := cols*s[0] + 2
		h := rows*s[1] + 2
		if w > area.W || h > area.H {
			continue
		}
		border = NewRect(area.X+(area.W-w)/2, area.Y, w, h)
		inner := border.Inset(1)
		return Grid{Origin: inner, CellW: s[0], CellH: s[1]}, border, true
	}
	return Grid{}, Rect{}, false
}

// Cell returns the screen area of a cell.
func (g Grid) Cell(row, col int) Rect {
	return NewRect(g.Origin.X+col*g.CellW, g.Origin.Y+row*g.CellH, g.CellW, g.CellH)
}

// At maps a screen position to the cell under it.
func (g Grid) At(x, y int) (row, col int, ok bool) {
	if g.CellW <= 0 || g.CellH <= 0 || !g.Origin.Contains(x, y) {
		return 0, 0, false
	}
	return (y - g.Origin.Y) / g.CellH, (x - g.Origin.X) / g.CellW, true
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
