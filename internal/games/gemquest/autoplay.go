package gemquest

import (
	"errors"

	"github.com/vovakirdan/gem-quest/internal/core"
	"github.com/vovakirdan/gem-quest/internal/match3"
)

// ErrNoMove is returned by Autoplay when the board offers no legal swap.
var ErrNoMove = errors.New("gemquest: no legal move on the board")

// AutoplayMove records one swap made by Autoplay.
type AutoplayMove struct {
	Move       match3.Move
	ScoreDelta int
	Combo      int
	Removed    int
	Reshuffled bool
}

// AutoplayResult summarizes a headless run.
type AutoplayResult struct {
	Level      int
	Moves      []AutoplayMove
	Score      int
	MovesLeft  int
	Won        bool
	Reshuffles int
}

// Autoplay plays the game's current level to the end without a screen,
// always taking the engine's hint. maxMoves bounds score attack runs with
// large budgets; 0 means no bound. The game must have been Reset.
func (g *Game) Autoplay(maxMoves int) (AutoplayResult, error) {
	res := AutoplayResult{Level: g.LevelNumber()}
	for g.outcome == OutcomePlaying {
		if maxMoves > 0 && len(res.Moves) >= maxMoves {
			break
		}
		mv, ok := g.engine.Hint()
		if !ok {
			return g.summary(res), ErrNoMove
		}
		swap, err := g.engine.TrySwap(mv.A, mv.B)
		if err != nil && !errors.Is(err, match3.ErrUnsolvable) {
			return g.summary(res), err
		}
		g.settled(swap, err)
		res.Moves = append(res.Moves, AutoplayMove{
			Move:       mv,
			ScoreDelta: swap.ScoreDelta,
			Combo:      swap.ComboLevel,
			Removed:    swap.Removed.Total(),
			Reshuffled: swap.Reshuffled,
		})
	}
	return g.summary(res), nil
}

func (g *Game) summary(res AutoplayResult) AutoplayResult {
	res.Score = g.session.Score
	res.MovesLeft = g.session.MovesLeft
	res.Won = g.outcome == OutcomeWon
	res.Reshuffles = g.session.Reshuffles()
	return res
}

// NewHeadless creates a game of the given mode reset for headless play on
// the 1-based campaign level.
func NewHeadless(mode Mode, level int, seed int64) *Game {
	g := New()
	if mode == ModeAttack {
		g = NewAttack()
	}
	g.StartAt(level)
	rc := core.DefaultConfig()
	rc.Seed = seed
	g.Reset(rc)
	return g
}
