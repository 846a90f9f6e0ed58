package match3

import (
	"time"
)

// Phase is the controller's position in a swap sequence.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSwapped
	PhaseResolving
	PhaseReverting
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSwapped:
		return "swapped"
	case PhaseResolving:
		return "resolving"
	case PhaseReverting:
		return "reverting"
	default:
		return "unknown"
	}
}

// Pacing holds the animation delays of a swap sequence.
type Pacing struct {
	Settle time.Duration // swap shown before evaluation
	Remove time.Duration // vacated cells shown before the drop
	Drop   time.Duration // refilled board shown before the next scan
}

// DefaultPacing returns 200ms / 300ms / 300ms.
func DefaultPacing() Pacing {
	return Pacing{
		Settle: 200 * time.Millisecond,
		Remove: 300 * time.Millisecond,
		Drop:   300 * time.Millisecond,
	}
}

// Controller plays a swap sequence through a Scheduler so a renderer can
// show each frame. Outcomes are computed by the Engine up front; the
// scheduler only decides when frames and events are released.
type Controller struct {
	engine *Engine
	sched  Scheduler
	pacing Pacing

	phase     Phase
	display   Board
	highlight []Pos
	combo     int

	onSettled func(SwapResult, error)
}

// NewController wraps e. A nil scheduler runs every frame immediately.
func NewController(e *Engine, sched Scheduler, pacing Pacing) *Controller {
	if sched == nil {
		sched = Immediate{}
	}
	return &Controller{
		engine:  e,
		sched:   sched,
		pacing:  pacing,
		display: e.Board(),
	}
}

// Engine returns the wrapped engine.
func (c *Controller) Engine() *Engine {
	return c.engine
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Idle reports whether a new swap may be requested.
func (c *Controller) Idle() bool {
	return c.phase == PhaseIdle
}

// Board returns the frame to render. Outside a sequence this is the
// engine's board.
func (c *Controller) Board() Board {
	if c.phase == PhaseIdle {
		return c.engine.Board()
	}
	return c.display.Clone()
}

// Highlight returns the positions being removed in the current frame.
func (c *Controller) Highlight() []Pos {
	return append([]Pos(nil), c.highlight...)
}

// Combo returns the chain level of the step on screen, 0 outside a cascade.
func (c *Controller) Combo() int {
	return c.combo
}

// OnSettled registers a callback run after each sequence ends.
func (c *Controller) OnSettled(fn func(SwapResult, error)) {
	c.onSettled = fn
}

// Request starts a swap sequence. It returns ErrBusy while a sequence is
// in flight and the engine's validation errors otherwise.
func (c *Controller) Request(a, b Pos) error {
	if c.phase != PhaseIdle {
		return ErrBusy
	}
	if err := c.engine.Validate(a, b); err != nil {
		return err
	}

	c.engine.busy = true
	c.phase = PhaseSwapped
	c.display = c.engine.board.Swapped(a, b)
	c.engine.emit(SwapStarted{A: a, B: b})
	c.sched.After(c.pacing.Settle, func() { c.evaluate(a, b) })
	return nil
}

func (c *Controller) evaluate(a, b Pos) {
	res, err := c.engine.apply(a, b)
	if len(res.Lead) == 0 {
		// Rejected at evaluation time, e.g. game over meanwhile.
		c.finish(res, err)
		return
	}
	// SwapStarted was already sent by Request.
	c.engine.emitAll(res.Lead[1:])

	if !res.Matched {
		if res.Reverted {
			c.phase = PhaseReverting
			c.display = res.Board
			c.sched.After(c.pacing.Settle, func() { c.finish(res, err) })
			return
		}
		c.finish(res, err)
		return
	}

	c.phase = PhaseResolving
	c.play(res, err, 0)
}

func (c *Controller) play(res SwapResult, err error, i int) {
	if i >= len(res.Steps) {
		c.finish(res, err)
		return
	}
	step := res.Steps[i]
	c.combo = step.Combo
	c.display = step.AfterRemove
	c.highlight = step.Matched
	c.engine.emitAll(step.Events)

	c.sched.After(c.pacing.Remove, func() {
		c.display = step.AfterRefill
		c.highlight = nil
		c.sched.After(c.pacing.Drop, func() { c.play(res, err, i+1) })
	})
}

func (c *Controller) finish(res SwapResult, err error) {
	c.phase = PhaseIdle
	c.highlight = nil
	c.combo = 0
	c.display = c.engine.Board()
	c.engine.busy = false
	c.engine.emitAll(res.Tail)
	if c.onSettled != nil {
		c.onSettled(res, err)
	}
}
