package gemquest

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/gem-quest/internal/core"
	"github.com/vovakirdan/gem-quest/internal/match3"
)

const (
	hudHeight    = 3 // Title, status and goal lines above the board
	footerHeight = 2 // Banner and controls below the board
)

// gemGlyphs gives every kind its own shape so the board reads without color.
var gemGlyphs = map[match3.Kind]rune{
	match3.KindRed:     '●',
	match3.KindBlue:    '■',
	match3.KindGreen:   '▲',
	match3.KindYellow:  '★',
	match3.KindPurple:  '◆',
	match3.KindOrange:  '▼',
	match3.KindPink:    '♥',
	match3.KindCyan:    '◉',
	match3.KindLime:    '♣',
	match3.KindMagenta: '♠',
}

var specialGlyphs = map[match3.Special]rune{
	match3.SpecialArea:   '✹',
	match3.SpecialRow:    '↔',
	match3.SpecialColumn: '↕',
	match3.SpecialColor:  '✺',
}

// GemCell returns the screen cell for a token.
func GemCell(t match3.Token) core.Cell {
	if t.Empty() {
		return core.Cell{Rune: '·', Color: core.ColorGray}
	}
	r, ok := gemGlyphs[t.Kind]
	if !ok {
		r = '?'
	}
	bold := false
	if sr, ok := specialGlyphs[t.Special]; ok {
		r = sr
		bold = true
	}
	// Gem kinds and gem colors share their ordering.
	return core.Cell{Rune: r, Color: core.Color(t.Kind), Bold: bold}
}

// cellSizes are the cell sizes tried, largest first.
var cellSizes = [][2]int{{4, 2}, {3, 1}, {2, 1}}

// layout is where the board sits on screen.
type layout struct {
	board core.Rect // Board including its border
	grid  core.Grid
}

// computeLayout picks the largest cell size that fits the screen.
func (g *Game) computeLayout() {
	if g.engine == nil {
		return
	}
	n := g.engine.Size()
	area := core.NewRect(0, hudHeight, g.screenW, g.screenH-hudHeight-footerHeight)
	grid, border, ok := core.FitGrid(area, n, n, cellSizes)
	if !ok {
		g.tooSmall = true
		return
	}
	g.layout = layout{board: border, grid: grid}
	g.tooSmall = g.screenW < 40
}

// cellAt maps a screen position to a board cell.
func (g *Game) cellAt(x, y int) (match3.Pos, bool) {
	if g.tooSmall || g.engine == nil {
		return match3.Pos{}, false
	}
	row, col, ok := g.layout.grid.At(x, y)
	return match3.P(row, col), ok
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.engine == nil {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderFooter(dst)
	g.renderOverlays(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, counters and goals.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextCenteredColor(0, "GEM QUEST", core.ColorGold)

	var status string
	if g.mode == ModeCampaign {
		lvl := g.Level()
		status = fmt.Sprintf("Level %d: %s   Score: %d   Moves: %d",
			g.levelIndex+1, lvl.Name, g.session.Score, g.session.MovesLeft)
	} else {
		status = fmt.Sprintf("Score Attack   Score: %d   Moves: %d",
			g.session.Score, g.session.MovesLeft)
	}
	dst.DrawTextCentered(1, status)

	if g.mode == ModeCampaign {
		g.renderGoals(dst, 2)
		return
	}
	meter := fmt.Sprintf("Gems: %d   Bonus meter: %d/%d",
		len(g.engine.Palette()), g.engine.BonusCounter(), g.engine.BonusThreshold())
	dst.DrawTextCenteredColor(2, meter, core.ColorGray)
}

// renderGoals draws "● 3/15" style goal counters, lime when done, followed
// by the bonus meter.
func (g *Game) renderGoals(dst *core.Screen, y int) {
	parts := make([]string, len(g.session.Goals))
	for i, gp := range g.session.Goals {
		parts[i] = fmt.Sprintf("%c %d/%d", gemGlyphs[gp.Kind], gp.Current, gp.Target)
	}
	meter := fmt.Sprintf("bonus %d/%d", g.engine.BonusCounter(), g.engine.BonusThreshold())
	line := strings.Join(append(parts, meter), "   ")
	x := (dst.Width() - utf8.RuneCountInString(line)) / 2

	for i, gp := range g.session.Goals {
		color := core.Color(gp.Kind)
		if gp.Done() {
			color = core.ColorLime
		}
		dst.DrawTextColor(x, y, parts[i], color)
		x += utf8.RuneCountInString(parts[i]) + 3
	}
	dst.DrawTextColor(x, y, meter, core.ColorGray)
}

// renderBoard draws the border and every gem of the frame on display.
func (g *Game) renderBoard(dst *core.Screen) {
	border := core.ColorGray
	if !g.ctrl.Idle() {
		border = core.ColorWhite
	}
	dst.DrawBoxColor(g.layout.board, border)

	board := g.ctrl.Board()
	removing := make(map[match3.Pos]bool)
	for _, p := range g.ctrl.Highlight() {
		removing[p] = true
	}

	n := board.Size()
	for r := range n {
		for c := range n {
			p := match3.P(r, c)
			g.renderCell(dst, p, board.At(p), removing[p])
		}
	}
}

// renderCell draws one gem with its cursor and selection marks.
func (g *Game) renderCell(dst *core.Screen, p match3.Pos, t match3.Token, removing bool) {
	area := g.layout.grid.Cell(p.Row, p.Col)
	x, y := area.X, area.Y+area.H/2
	gx := x + area.W/2

	cell := GemCell(t)
	if removing {
		cell = core.Cell{Rune: '✸', Color: core.ColorWhite, Bold: true}
	}

	isCursor := p == g.cursor && g.outcome == OutcomePlaying
	if isCursor {
		for i := range area.W {
			dst.SetCell(x+i, y, core.Cell{Rune: ' ', Color: cell.Color, Reverse: true})
		}
		cell.Reverse = true
	}
	dst.SetCell(gx, y, cell)

	if g.hasSel && p == g.selected {
		mark := core.Cell{Color: core.ColorGold, Bold: true, Reverse: isCursor}
		mark.Rune = '['
		dst.SetCell(gx-1, y, mark)
		if area.W >= 3 {
			mark.Rune = ']'
			dst.SetCell(gx+1, y, mark)
		}
	}
}

// renderFooter draws the combo/bonus banner and the controls.
func (g *Game) renderFooter(dst *core.Screen) {
	y := g.layout.board.Bottom()

	switch {
	case g.session.Bonus() > 0:
		dst.DrawTextCenteredColor(y, fmt.Sprintf("BONUS! +%d Target Gems", g.session.Bonus()), core.ColorGold)
	case match3.IsCombo(g.session.Combo()):
		c := g.session.Combo()
		bonus := (c - 1) * g.cfg.Scoring.ChainBonus
		dst.DrawTextCenteredColor(y, fmt.Sprintf("%dx COMBO! +%d Bonus", c, bonus), core.ColorOrange)
	case g.lastError != nil:
		dst.DrawTextCenteredColor(y, swapErrorText(g.lastError), core.ColorRed)
	}

	if y+1 < g.screenH {
		dst.DrawTextCenteredColor(y+1, g.Controls(), core.ColorGray)
	}
}

func swapErrorText(err error) string {
	switch {
	case errors.Is(err, match3.ErrBusy):
		return "Wait for the board to settle"
	case errors.Is(err, match3.ErrNotAdjacent):
		return "Gems must be neighbours"
	default:
		return "Swap not allowed"
	}
}

// renderOverlays draws pause and end-of-level boxes over the board.
func (g *Game) renderOverlays(dst *core.Screen) {
	if g.paused {
		g.drawOverlay(dst, "PAUSED", "Press P to resume")
		return
	}

	score := fmt.Sprintf("Score: %d", g.session.Score)
	switch g.outcome {
	case OutcomeWon:
		if g.levelIndex < LevelCount()-1 {
			g.drawOverlay(dst, "LEVEL COMPLETE!", score, "Enter: next level  R: replay")
		} else {
			g.drawOverlay(dst, "CAMPAIGN COMPLETE!", score, "Press R to replay")
		}
	case OutcomeLost:
		if g.mode == ModeAttack {
			g.drawOverlay(dst, "OUT OF MOVES", "Final "+score, "Press R to restart")
		} else {
			g.drawOverlay(dst, "OUT OF MOVES", score, "Press R to retry")
		}
	}
}

// drawOverlay draws a text box centered on the board.
func (g *Game) drawOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := g.layout.board.Centered(boxW, boxH)

	// Clear area behind overlay
	dst.Fill(box, core.Blank)
	dst.DrawBoxColor(box, core.ColorGold)

	for i, line := range lines {
		x := box.X + (box.W-utf8.RuneCountInString(line))/2
		dst.DrawText(x, box.Y+1+i, line)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: Move | Space/Click: Pick | X: Clear | P: Pause | R: Restart | Q: Quit"
}
