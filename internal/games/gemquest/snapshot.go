package gemquest

import "github.com/vovakirdan/gem-quest/internal/match3"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StateWon         GameStateType = "won"
	StateLost        GameStateType = "lost"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "campaign" or "attack"
	Level     int    // 1-indexed, 0 in score attack
	Score     int
	MovesLeft int
	Goals     []GoalProgress
	Bonus     int // bonus meter counter
	Phase     string
	Board     [][]match3.Kind
	Cursor    match3.Pos
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.outcome == OutcomeWon:
		state = StateWon
	case g.outcome == OutcomeLost:
		state = StateLost
	case !g.ctrl.Idle():
		state = StateResolving
	}

	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Level:     g.LevelNumber(),
		Score:     g.session.Score,
		MovesLeft: g.session.MovesLeft,
		Goals:     append([]GoalProgress(nil), g.session.Goals...),
		Bonus:     g.engine.BonusCounter(),
		Phase:     g.ctrl.Phase().String(),
		Board:     g.engine.Board().Kinds(),
		Cursor:    g.cursor,
		State:     state,
	}
}
