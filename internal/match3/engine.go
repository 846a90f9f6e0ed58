package match3

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"
)

// Swap rejections. Engine state is unchanged when one of these is returned.
var (
	ErrBusy        = errors.New("match3: a swap is already in progress")
	ErrOutOfBounds = errors.New("match3: position out of bounds")
	ErrNotAdjacent = errors.New("match3: positions are not adjacent")
	ErrGameOver    = errors.New("match3: game is over")
)

// MissPolicy selects what happens to a swap that produces no match.
type MissPolicy int

const (
	// MissRevert undoes the swap and does not charge a move.
	MissRevert MissPolicy = iota
	// MissRevertCharged undoes the swap but still charges a move.
	MissRevertCharged
	// MissAccept keeps the swap as a valid no-op move and charges it.
	MissAccept
)

// String returns the configuration name of the policy.
func (p MissPolicy) String() string {
	switch p {
	case MissRevert:
		return "revert"
	case MissRevertCharged:
		return "revert_charged"
	case MissAccept:
		return "accept"
	default:
		return "unknown"
	}
}

// ParseMissPolicy converts a configuration name into a MissPolicy.
func ParseMissPolicy(s string) (MissPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "revert":
		return MissRevert, nil
	case "revert_charged":
		return MissRevertCharged, nil
	case "accept":
		return MissAccept, nil
	default:
		return MissRevert, fmt.Errorf("match3: unknown miss policy %q", s)
	}
}

// Options configures an Engine.
type Options struct {
	Size          int
	Palette       []Kind
	SpecialChance float64

	// Seed feeds the engine's random source when Rand is nil.
	Seed int64
	Rand *rand.Rand

	Score             ScoreRules
	BonusThreshold    int
	BonusUnits        int
	MissPolicy        MissPolicy
	Init              InitLimits
	ReshuffleAttempts int

	Logger   *log.Logger
	Notifier Notifier
}

// DefaultOptions returns an 8x8 six-kind engine configuration.
func DefaultOptions() Options {
	return Options{
		Size:              DefaultBoardSize,
		Palette:           DefaultPalette(6),
		Score:             DefaultScoreRules(),
		BonusThreshold:    DefaultBonusThreshold,
		BonusUnits:        DefaultBonusUnits,
		MissPolicy:        MissRevert,
		Init:              DefaultInitLimits(),
		ReshuffleAttempts: DefaultReshuffleAttempts,
	}
}

// SwapResult describes one fully resolved swap.
type SwapResult struct {
	A, B       Pos
	Matched    bool
	Board      Board // board after the sequence settled
	Removed    Tally // tokens removed by matches, all steps
	Bonus      Tally // bonus units granted, all steps
	ScoreDelta int
	ComboLevel int // final chain level; 0 when nothing matched
	Steps      []Step
	MoveUsed   bool
	Reverted   bool
	Reshuffled bool

	// Events in emission order: Lead, then each step's events, then Tail.
	Lead []Event
	Tail []Event
}

// Events returns every event of the swap in emission order.
func (r SwapResult) Events() []Event {
	events := append([]Event(nil), r.Lead...)
	for _, s := range r.Steps {
		events = append(events, s.Events...)
	}
	return append(events, r.Tail...)
}

// Engine owns the board, the combo counter and the bonus counter.
// It is single-threaded: all calls must come from one goroutine.
type Engine struct {
	opts     Options
	rng      *rand.Rand
	gen      *Generator
	resolver *Resolver
	bonus    *BonusMeter
	combo    Combo
	board    Board
	goals    []Kind
	gameOver bool
	busy     bool
	logger   *log.Logger
	notifier Notifier
}

// New validates opts and creates an engine with a freshly initialized board.
func New(opts Options) (*Engine, error) {
	if opts.Size < 3 {
		return nil, fmt.Errorf("match3: board size %d is too small", opts.Size)
	}
	if err := checkPalette(opts.Palette); err != nil {
		return nil, err
	}
	if opts.SpecialChance < 0 || opts.SpecialChance >= 1 {
		return nil, fmt.Errorf("match3: special chance %.2f out of range [0, 1)", opts.SpecialChance)
	}
	if opts.Score == (ScoreRules{}) {
		opts.Score = DefaultScoreRules()
	}

	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	gen := NewGenerator(rng, opts.Palette, opts.SpecialChance)
	e := &Engine{
		opts:     opts,
		rng:      rng,
		gen:      gen,
		resolver: NewResolver(gen),
		bonus:    NewBonusMeter(opts.BonusThreshold, opts.BonusUnits),
		logger:   logger,
		notifier: opts.Notifier,
	}
	e.Regenerate()
	return e, nil
}

func checkPalette(kinds []Kind) error {
	if len(kinds) < 3 {
		return fmt.Errorf("match3: palette needs at least 3 kinds, got %d", len(kinds))
	}
	seen := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		if !k.Valid() {
			return fmt.Errorf("match3: invalid kind %d in palette", k)
		}
		if seen[k] {
			return fmt.Errorf("match3: duplicate kind %s in palette", k)
		}
		seen[k] = true
	}
	return nil
}

// Board returns a copy of the current board.
func (e *Engine) Board() Board {
	return e.board.Clone()
}

// Size returns the board side length.
func (e *Engine) Size() int {
	return e.board.Size()
}

// Palette returns the kinds the engine spawns.
func (e *Engine) Palette() []Kind {
	return e.gen.Palette()
}

// SetPalette changes the kinds used by later refills and regenerations.
// Tokens already on the board are kept.
func (e *Engine) SetPalette(kinds []Kind) error {
	if err := checkPalette(kinds); err != nil {
		return err
	}
	e.gen.SetPalette(kinds)
	e.opts.Palette = append([]Kind(nil), kinds...)
	return nil
}

// MissPolicy returns the configured policy for swaps without matches.
func (e *Engine) MissPolicy() MissPolicy {
	return e.opts.MissPolicy
}

// LoadBoard replaces the board, e.g. to set up a scenario.
// The board is copied; no validity checks are made.
func (e *Engine) LoadBoard(b Board) {
	e.board = b.Clone()
	for _, t := range e.board.cells {
		if t.ID > e.gen.nextID {
			e.gen.nextID = t.ID
		}
	}
}

// SetNotifier replaces the event sink.
func (e *Engine) SetNotifier(n Notifier) {
	e.notifier = n
}

// SetGoals sets the active goal kinds used by the bonus meter.
func (e *Engine) SetGoals(kinds []Kind) {
	e.goals = append(e.goals[:0], kinds...)
}

// Goals returns the active goal kinds.
func (e *Engine) Goals() []Kind {
	return append([]Kind(nil), e.goals...)
}

// SetGameOver makes every later swap fail with ErrGameOver while true.
func (e *Engine) SetGameOver(over bool) {
	e.gameOver = over
}

// GameOver reports whether swaps are disabled.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// Busy reports whether a swap sequence is in flight.
func (e *Engine) Busy() bool {
	return e.busy
}

// BonusCounter returns the bonus meter's accumulated count.
func (e *Engine) BonusCounter() int {
	return e.bonus.Counter()
}

// BonusThreshold returns the bonus meter's threshold.
func (e *Engine) BonusThreshold() int {
	return e.bonus.Threshold()
}

// Regenerate replaces the board with a freshly initialized one.
func (e *Engine) Regenerate() Board {
	b, ok := Initialize(e.opts.Size, e.gen, e.opts.Init)
	if !ok {
		e.logger.Warn("board initialization fell back to unsolvable board",
			"size", e.opts.Size,
			"palette", len(e.opts.Palette),
		)
	}
	e.board = b
	return e.board.Clone()
}

// Restart regenerates the board and clears the bonus counter, the combo
// counter and the game-over flag.
func (e *Engine) Restart() {
	e.bonus.Reset()
	e.combo.Reset()
	e.gameOver = false
	e.busy = false
	e.Regenerate()
}

// HasLegalMove reports whether the current board has a legal swap.
func (e *Engine) HasLegalMove() bool {
	return HasLegalMove(e.board)
}

// Hint returns a legal move on the current board, if any.
func (e *Engine) Hint() (Move, bool) {
	return FindLegalMove(e.board)
}

// Reshuffle re-deals the current board until it is solvable.
// On ErrUnsolvable the board keeps the last arrangement tried.
func (e *Engine) Reshuffle() (Board, error) {
	b, attempts, err := ReshuffleUntilSolvable(e.board, e.rng, e.opts.ReshuffleAttempts)
	e.board = b
	if err != nil {
		e.logger.Error("reshuffle failed", "attempts", attempts, "error", err)
		return b.Clone(), fmt.Errorf("match3: reshuffle after %d attempts: %w", attempts, err)
	}
	e.emit(BoardReshuffled{Attempts: attempts})
	return b.Clone(), nil
}

// Validate checks that a swap of a and b would be accepted right now.
func (e *Engine) Validate(a, b Pos) error {
	if e.busy {
		return ErrBusy
	}
	return e.validate(a, b)
}

func (e *Engine) validate(a, b Pos) error {
	if e.gameOver {
		return ErrGameOver
	}
	if !e.board.InBounds(a) || !e.board.InBounds(b) {
		return ErrOutOfBounds
	}
	if !Adjacent(a, b) {
		return ErrNotAdjacent
	}
	return nil
}

// TrySwap performs a full swap synchronously: tentative swap, match check,
// cascade resolution, scoring, bonus, deadlock handling. Events are emitted
// to the notifier before it returns.
//
// A non-nil error wrapping ErrUnsolvable comes with a valid result: the
// swap happened, but the settled board could not be made solvable.
func (e *Engine) TrySwap(a, b Pos) (SwapResult, error) {
	if err := e.Validate(a, b); err != nil {
		return SwapResult{}, err
	}
	e.busy = true
	defer func() { e.busy = false }()

	res, err := e.apply(a, b)
	e.emitAll(res.Events())
	return res, err
}

// apply commits a validated swap and returns its result without emitting.
func (e *Engine) apply(a, b Pos) (SwapResult, error) {
	if err := e.validate(a, b); err != nil {
		return SwapResult{}, err
	}

	res := SwapResult{
		A:       a,
		B:       b,
		Removed: make(Tally),
		Bonus:   make(Tally),
		Lead:    []Event{SwapStarted{A: a, B: b}},
	}

	swapped := e.board.Swapped(a, b)
	matches := FindMatches(swapped)

	if len(matches) == 0 {
		switch e.opts.MissPolicy {
		case MissAccept:
			e.board = swapped
			res.MoveUsed = true
			res.Lead = append(res.Lead, MoveUsed{})
		case MissRevertCharged:
			res.Reverted = true
			res.MoveUsed = true
			res.Lead = append(res.Lead, SwapReverted{A: a, B: b}, MoveUsed{})
		default:
			res.Reverted = true
			res.Lead = append(res.Lead, SwapReverted{A: a, B: b})
		}
		err := e.settle(&res)
		res.Board = e.board.Clone()
		return res, err
	}

	res.Matched = true
	res.MoveUsed = true
	res.Lead = append(res.Lead, MoveUsed{})

	final, steps := e.resolver.Run(swapped, matches, &e.combo, func(step *Step) {
		e.scoreStep(step)
	})
	for _, s := range steps {
		res.Removed.Merge(s.Removed)
		res.Bonus.Merge(s.Bonus.Tally)
		res.ScoreDelta += s.Score
	}
	res.Steps = steps
	res.ComboLevel = len(steps)

	e.board = final
	err := e.settle(&res)
	res.Board = e.board.Clone()
	return res, err
}

// scoreStep applies the score formula and the bonus meter to one step and
// records the step's events.
func (e *Engine) scoreStep(step *Step) {
	step.Score = StepScore(len(step.Matched), step.Combo, e.opts.Score)
	step.Events = append(step.Events,
		StepResolved{Combo: step.Combo, Matched: len(step.Matched), Score: step.Score},
		ScoreChanged{Delta: step.Score},
	)
	for _, k := range step.Removed.Kinds() {
		step.Events = append(step.Events, TokensCollected{Kind: k, Count: step.Removed[k]})
	}
	if IsCombo(step.Combo) {
		step.Events = append(step.Events, ComboReached{Level: step.Combo})
	}

	grant := e.bonus.Apply(step.Removed, e.goals)
	step.Bonus = grant
	if grant.Granted() {
		for _, k := range grant.Tally.Kinds() {
			step.Events = append(step.Events, TokensCollected{Kind: k, Count: grant.Tally[k], Bonus: true})
		}
		step.Events = append(step.Events, BonusGranted{Amount: grant.Total})
	}
}

// settle runs the deadlock check on the committed board and appends the
// closing events.
func (e *Engine) settle(res *SwapResult) error {
	var err error
	if !HasLegalMove(e.board) {
		b, attempts, rerr := ReshuffleUntilSolvable(e.board, e.rng, e.opts.ReshuffleAttempts)
		e.board = b
		if rerr != nil {
			e.logger.Error("board deadlocked", "attempts", attempts, "error", rerr)
			err = fmt.Errorf("match3: reshuffle after %d attempts: %w", attempts, rerr)
		} else {
			e.logger.Info("board reshuffled", "attempts", attempts)
			res.Reshuffled = true
			res.Tail = append(res.Tail, BoardReshuffled{Attempts: attempts})
		}
	}
	res.Tail = append(res.Tail, Settled{Matched: res.Matched})
	return err
}

func (e *Engine) emit(ev Event) {
	if e.notifier != nil {
		e.notifier.Notify(ev)
	}
}

func (e *Engine) emitAll(events []Event) {
	for _, ev := range events {
		e.emit(ev)
	}
}
