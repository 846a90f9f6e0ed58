package gemquest

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gem-quest/internal/config"
	"github.com/vovakirdan/gem-quest/internal/core"
	"github.com/vovakirdan/gem-quest/internal/match3"
	"github.com/vovakirdan/gem-quest/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeAttack   Mode = "attack"
)

// Mode IDs used by the registry and the score table.
const (
	CampaignID = "gemquest"
	AttackID   = "gemquest_attack"

	campaignTitle = "Gem Quest"
	attackTitle   = "Gem Quest (Score Attack)"
)

// Package-level settings applied on the next Reset, set from the CLI.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	selectedLevel    int
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetStartLevel sets the campaign level (1-based) new games start on.
// 0 means the first level.
func SetStartLevel(level int) {
	selectedLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedLevel
}

// SetLogger sets the logger new games write to.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register(CampaignID, campaignTitle, func() registry.Game {
		return New()
	})
	registry.Register(AttackID, attackTitle, func() registry.Game {
		return NewAttack()
	})
}

// Game is one Gem Quest run: an engine behind a paced controller, a
// session collecting its events, and the cursor/selection the player
// drives it with.
type Game struct {
	mode Mode
	cfg  config.GemQuestConfig

	engine     *match3.Engine
	ctrl       *match3.Controller
	sched      *match3.TickScheduler
	session    *Session
	difficulty *config.DifficultyManager
	listeners  []match3.Notifier
	logger     *log.Logger

	levelIndex int
	started    bool
	seed       int64
	tick       uint64
	tickDur    time.Duration

	cursor    match3.Pos
	selected  match3.Pos
	hasSel    bool
	lastError error

	outcome  Outcome
	paused   bool
	screenW  int
	screenH  int
	layout   layout
	tooSmall bool
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewAttack creates a score-attack game.
func NewAttack() *Game {
	return &Game{mode: ModeAttack}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeAttack {
		return AttackID
	}
	return CampaignID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeAttack {
		return attackTitle
	}
	return campaignTitle
}

// Mode returns the game mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// AddNotifier registers an extra listener for engine events, such as the
// audio player. Listeners survive Reset.
func (g *Game) AddNotifier(n match3.Notifier) {
	g.listeners = append(g.listeners, n)
	if g.engine != nil {
		g.wireNotifiers()
	}
}

// StartAt makes the next Reset start the given 1-based campaign level,
// overriding SetStartLevel for this game only.
func (g *Game) StartAt(level int) {
	if level < 1 || level > LevelCount() {
		return
	}
	g.levelIndex = level - 1
	g.started = true
}

// Reset loads the configuration and starts the current level over.
// The first Reset picks the level chosen with SetStartLevel.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.logger = logger.With("mode", g.ID())

	loaded, err := config.Load(configPath)
	cfg := loaded.Config
	if err == nil {
		err = cfg.Validate()
	}
	if err == nil {
		g.logger.Debug("config loaded", "source", loaded.Source)
	} else {
		g.logger.Warn("using default config", "error", err)
		cfg = config.DefaultGemQuestConfig()
	}
	if difficultyPreset != "" {
		config.ApplyGemQuestPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	if !g.started {
		g.levelIndex = 0
		if selectedLevel > 0 && selectedLevel <= LevelCount() {
			g.levelIndex = selectedLevel - 1
		}
		g.started = true
	}

	g.seed = rc.Seed
	g.tickDur = rc.TickDuration()
	g.tick = 0
	g.paused = false
	g.Resize(rc.ScreenW, rc.ScreenH)
	g.startLevel(g.seed)
}

// startLevel builds a fresh engine and session for the current level.
func (g *Game) startLevel(seed int64) {
	opts, err := g.cfg.EngineOptions(seed)
	if err != nil {
		// Validate passed in Reset, so only a bad preset combination gets here.
		g.logger.Warn("engine options rejected, using defaults", "error", err)
		opts = match3.DefaultOptions()
		opts.Seed = seed
	}
	opts.Logger = g.logger

	moves := g.difficulty.MoveBudget(g.cfg.Attack.Moves)
	var goals []Goal
	if g.mode == ModeAttack && len(g.cfg.Board.Palette) == 0 {
		opts.Palette = match3.DefaultPalette(g.difficulty.PaletteSize(g.cfg.Board.PaletteSize, 0, 0))
	}
	if g.mode == ModeCampaign {
		lvl := g.Level()
		opts.Palette = lvl.Palette()
		moves = g.difficulty.MoveBudget(lvl.Moves)
		goals = lvl.Goals
	}

	engine, err := match3.New(opts)
	if err != nil {
		g.logger.Error("engine rejected options, using defaults", "error", err)
		fallback := match3.DefaultOptions()
		fallback.Seed = seed
		fallback.Logger = g.logger
		engine, _ = match3.New(fallback)
	}
	engine.SetGoals(goalKinds(goals))

	g.engine = engine
	g.session = NewSession(moves, goals)
	g.sched = match3.NewTickScheduler()
	g.ctrl = match3.NewController(engine, g.sched, g.cfg.Pacing.ControllerPacing())
	g.ctrl.OnSettled(g.settled)
	g.wireNotifiers()

	g.outcome = OutcomePlaying
	g.cursor = match3.P(engine.Size()/2, engine.Size()/2)
	g.hasSel = false
	g.lastError = nil
	g.computeLayout()

	g.logger.Info("level started",
		"level", g.levelIndex+1,
		"moves", moves,
		"palette", len(engine.Palette()),
		"seed", seed,
	)
}

func (g *Game) wireNotifiers() {
	ns := match3.Notifiers{g.session, match3.LogNotifier{Logger: g.logger}}
	ns = append(ns, g.listeners...)
	g.engine.SetNotifier(ns)
}

// settled runs after every swap sequence.
func (g *Game) settled(res match3.SwapResult, err error) {
	if errors.Is(err, match3.ErrUnsolvable) {
		g.logger.Warn("board unsolvable, dealing a new one", "error", err)
		g.engine.Regenerate()
	}

	if g.mode == ModeAttack {
		g.progressPalette()
	}

	g.outcome = g.session.Outcome()
	if g.outcome != OutcomePlaying {
		g.engine.SetGameOver(true)
		g.hasSel = false
		g.logger.Info("level finished",
			"won", g.outcome == OutcomeWon,
			"score", g.session.Score,
			"moves_left", g.session.MovesLeft,
		)
	}
}

// progressPalette widens the score-attack palette as difficulty rises.
// An explicit palette in the config is never changed.
func (g *Game) progressPalette() {
	if len(g.cfg.Board.Palette) > 0 || !g.difficulty.IsEnabled() {
		return
	}
	want := g.difficulty.PaletteSize(g.cfg.Board.PaletteSize, g.session.Score, g.session.MovesPlayed)
	if want <= len(g.engine.Palette()) {
		return
	}
	if err := g.engine.SetPalette(match3.DefaultPalette(want)); err != nil {
		g.logger.Warn("palette change rejected", "size", want, "error", err)
		return
	}
	g.logger.Info("palette widened", "size", want)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.outcome == OutcomePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Animation time only passes while unpaused.
	g.sched.Advance(g.tickDur)
	g.session.Advance(g.tickDur)

	if g.outcome != OutcomePlaying {
		if in.Has(core.ActionConfirm) || in.Has(core.ActionSelect) {
			g.NextLevel()
		}
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	return core.StepResult{State: g.State()}
}

// handleInput moves the cursor and turns picks into swap requests.
func (g *Game) handleInput(in core.InputFrame) {
	size := g.engine.Size()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, size-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, size-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, size-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, size-1)
	}

	if in.Has(core.ActionCancel) {
		g.hasSel = false
	}

	if x, y, ok := in.Clicked(); ok {
		if p, hit := g.cellAt(x, y); hit {
			g.cursor = p
			g.Pick(p)
		}
		return
	}

	if in.Has(core.ActionSelect) {
		g.Pick(g.cursor)
	}
}

// Pick applies the selection rules to a cell: the first pick selects it,
// picking it again clears the selection, an adjacent second pick requests
// the swap and any other second pick clears the selection.
func (g *Game) Pick(p match3.Pos) {
	if !g.ctrl.Idle() || g.outcome != OutcomePlaying {
		return
	}
	if !g.hasSel {
		g.selected = p
		g.hasSel = true
		return
	}

	first := g.selected
	g.hasSel = false
	if first == p || !match3.Adjacent(first, p) {
		return
	}

	if err := g.ctrl.Request(first, p); err != nil {
		g.lastError = err
		g.logger.Debug("swap rejected", "a", first, "b", p, "error", err)
		return
	}
	g.lastError = nil
}

// NextLevel advances the campaign after a won level. It does nothing on
// the last level or in score attack.
func (g *Game) NextLevel() bool {
	if g.mode != ModeCampaign || g.outcome != OutcomeWon || g.levelIndex >= LevelCount()-1 {
		return false
	}
	g.levelIndex++
	g.startLevel(g.seed + int64(g.levelIndex))
	return true
}

// Resize updates the layout without restarting the level.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.computeLayout()
}

// Level returns the current campaign level.
func (g *Game) Level() Level {
	if lvl := GetLevel(g.levelIndex); lvl != nil {
		return *lvl
	}
	return Levels[len(Levels)-1]
}

// LevelNumber returns the 1-based level, 0 in score attack.
func (g *Game) LevelNumber() int {
	if g.mode != ModeCampaign {
		return 0
	}
	return g.levelIndex + 1
}

// Session returns the running session.
func (g *Game) Session() *Session {
	return g.session
}

// Engine returns the running engine.
func (g *Game) Engine() *match3.Engine {
	return g.engine
}

// Cursor returns the cursor position and the selected cell, if any.
func (g *Game) Cursor() (cursor match3.Pos, selected match3.Pos, hasSelection bool) {
	return g.cursor, g.selected, g.hasSel
}

// Idle reports whether no swap sequence is playing.
func (g *Game) Idle() bool {
	return g.ctrl.Idle()
}

// Outcome returns the session outcome.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Paused: g.paused || g.tooSmall,
		Level:  g.LevelNumber(),
	}
	if g.session != nil {
		st.Score = g.session.Score
		st.MovesLeft = g.session.MovesLeft
	}
	st.GameOver = g.outcome != OutcomePlaying
	st.Won = g.outcome == OutcomeWon
	return st
}
