package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors. The gem colors come first so a board renderer can map
// token kinds onto them directly.
const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorPurple
	ColorOrange
	ColorPink
	ColorCyan
	ColorLime
	ColorMagenta
	ColorWhite
	ColorGray
	ColorGold
)

// Cell is one character of the screen buffer with its styling.
type Cell struct {
	Rune    rune
	Color   Color
	Bold    bool
	Reverse bool // swap foreground and background (cursor, highlights)
}

// Blank is the cell a cleared screen is filled with.
var Blank = Cell{Rune: ' '}
