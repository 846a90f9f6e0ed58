package match3

import (
	"github.com/charmbracelet/log"
)

// Event is something the engine reports to its collaborators.
type Event interface {
	event()
}

// SwapStarted is sent when a tentative swap is placed on the board.
type SwapStarted struct {
	A, B Pos
}

func (SwapStarted) event() {}

// SwapReverted is sent when a swap without matches is undone.
type SwapReverted struct {
	A, B Pos
}

func (SwapReverted) event() {}

// MoveUsed is sent when a swap consumes a move.
type MoveUsed struct{}

func (MoveUsed) event() {}

// StepResolved is sent once per cascade step with that step's combo level.
type StepResolved struct {
	Combo   int
	Matched int
	Score   int
}

func (StepResolved) event() {}

// ScoreChanged carries a score delta.
type ScoreChanged struct {
	Delta int
}

func (ScoreChanged) event() {}

// TokensCollected reports tokens of one kind credited to the player.
// Bonus is true for units granted by the bonus meter.
type TokensCollected struct {
	Kind  Kind
	Count int
	Bonus bool
}

func (TokensCollected) event() {}

// ComboReached is sent for chain levels above 1.
type ComboReached struct {
	Level int
}

func (ComboReached) event() {}

// BonusGranted is the one-shot notification of a bonus meter crossing.
type BonusGranted struct {
	Amount int
}

func (BonusGranted) event() {}

// BoardReshuffled is sent after a deadlocked board has been re-dealt.
type BoardReshuffled struct {
	Attempts int
}

func (BoardReshuffled) event() {}

// Settled is sent when a swap sequence has ended and the engine is idle.
type Settled struct {
	Matched bool
}

func (Settled) event() {}

// Notifier receives engine events.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

// Notify calls f(e).
func (f NotifierFunc) Notify(e Event) {
	f(e)
}

// Notifiers fans one event out to several notifiers in order.
type Notifiers []Notifier

// Notify forwards e to every non-nil notifier.
func (ns Notifiers) Notify(e Event) {
	for _, n := range ns {
		if n != nil {
			n.Notify(e)
		}
	}
}

// Recorder keeps every event it receives. Useful for tests and replays.
type Recorder struct {
	Events []Event
}

// Notify appends e.
func (r *Recorder) Notify(e Event) {
	r.Events = append(r.Events, e)
}

// Reset drops recorded events.
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}

// LogNotifier writes every event to a logger at debug level.
type LogNotifier struct {
	Logger *log.Logger
}

// Notify logs e.
func (n LogNotifier) Notify(e Event) {
	if n.Logger == nil {
		return
	}
	switch ev := e.(type) {
	case SwapStarted:
		n.Logger.Debug("swap", "a", ev.A, "b", ev.B)
	case SwapReverted:
		n.Logger.Debug("swap reverted", "a", ev.A, "b", ev.B)
	case MoveUsed:
		n.Logger.Debug("move used")
	case StepResolved:
		n.Logger.Debug("step", "combo", ev.Combo, "matched", ev.Matched, "score", ev.Score)
	case ScoreChanged:
		n.Logger.Debug("score", "delta", ev.Delta)
	case TokensCollected:
		n.Logger.Debug("collected", "kind", ev.Kind, "count", ev.Count, "bonus", ev.Bonus)
	case ComboReached:
		n.Logger.Debug("combo", "level", ev.Level)
	case BonusGranted:
		n.Logger.Debug("bonus", "amount", ev.Amount)
	case BoardReshuffled:
		n.Logger.Debug("reshuffled", "attempts", ev.Attempts)
	case Settled:
		n.Logger.Debug("settled", "matched", ev.Matched)
	}
}
