package gemquest

import (
	"time"

	"github.com/vovakirdan/gem-quest/internal/match3"
)

// Display durations for transient feedback.
const (
	comboDisplay = 1500 * time.Millisecond
	bonusDisplay = 2 * time.Second
)

// GoalProgress tracks one goal during a level.
type GoalProgress struct {
	Kind    match3.Kind
	Target  int
	Current int
}

// Done reports whether the target has been reached.
func (g GoalProgress) Done() bool {
	return g.Current >= g.Target
}

// Outcome is the result of a finished session.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeWon
	OutcomeLost
)

// Session keeps the per-level counters the engine reports into: moves,
// score, goal progress and the transient combo and bonus banners.
// It implements match3.Notifier.
type Session struct {
	MovesLeft   int
	MovesPlayed int
	Score       int
	Goals       []GoalProgress
	Collected   match3.Tally

	combo      int
	comboLeft  time.Duration
	bonus      int
	bonusLeft  time.Duration
	reshuffles int
}

// NewSession starts a session with a move budget and goals.
// A session without goals is a score-attack run.
func NewSession(moves int, goals []Goal) *Session {
	s := &Session{
		MovesLeft: moves,
		Collected: make(match3.Tally),
	}
	for _, g := range goals {
		s.Goals = append(s.Goals, GoalProgress{Kind: g.Kind, Target: g.Target})
	}
	return s
}

// Notify applies an engine event.
func (s *Session) Notify(ev match3.Event) {
	switch e := ev.(type) {
	case match3.MoveUsed:
		s.MovesPlayed++
		if s.MovesLeft > 0 {
			s.MovesLeft--
		}
	case match3.ScoreChanged:
		s.Score += e.Delta
	case match3.TokensCollected:
		s.Collected.Add(e.Kind, e.Count)
		for i := range s.Goals {
			g := &s.Goals[i]
			if g.Kind == e.Kind {
				g.Current = min(g.Current+e.Count, g.Target)
			}
		}
	case match3.ComboReached:
		s.combo = e.Level
		s.comboLeft = comboDisplay
	case match3.BonusGranted:
		s.bonus = e.Amount
		s.bonusLeft = bonusDisplay
	case match3.BoardReshuffled:
		s.reshuffles++
	}
}

// Advance ages the transient banners.
func (s *Session) Advance(dt time.Duration) {
	if s.comboLeft > 0 {
		s.comboLeft -= dt
	}
	if s.bonusLeft > 0 {
		s.bonusLeft -= dt
	}
}

// Combo returns the combo level on display, 0 when none.
func (s *Session) Combo() int {
	if s.comboLeft <= 0 {
		return 0
	}
	return s.combo
}

// Bonus returns the bonus amount on display, 0 when none.
func (s *Session) Bonus() int {
	if s.bonusLeft <= 0 {
		return 0
	}
	return s.bonus
}

// Reshuffles returns how many times the board was re-dealt.
func (s *Session) Reshuffles() int {
	return s.reshuffles
}

// GoalsComplete reports whether every goal is done. A session without
// goals never completes.
func (s *Session) GoalsComplete() bool {
	if len(s.Goals) == 0 {
		return false
	}
	for _, g := range s.Goals {
		if !g.Done() {
			return false
		}
	}
	return true
}

// Outcome evaluates win and loss. It should only be called when no swap
// is in flight, so the last move's cascade has been fully credited.
func (s *Session) Outcome() Outcome {
	switch {
	case s.GoalsComplete() && s.MovesLeft >= 0:
		return OutcomeWon
	case s.MovesLeft == 0:
		return OutcomeLost
	default:
		return OutcomePlaying
	}
}
