package config

// Progression types accepted in difficulty.progression.type.
const (
	ProgressionNone  = "none"
	ProgressionScore = "score"
	ProgressionMoves = "moves"
)

// Bounds for values derived from difficulty.
const (
	minMoveBudget = 5
	maxKinds      = 10
)

// DifficultyManager maps a run's progress to a difficulty level in [0, 1]
// and derives palette sizes and move budgets from it.
type DifficultyManager struct {
	cfg  DifficultyConfig
	base float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, base: unit(cfg.InitialLevel)}
}

// SetInitialLevel overrides the starting level.
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.base = unit(level)
}

// SetEnabled switches progression on or off.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled reports whether the level moves during a run.
func (d *DifficultyManager) IsEnabled() bool {
	switch d.cfg.Progression.Type {
	case ProgressionScore, ProgressionMoves:
		return d.cfg.Enabled
	}
	return false
}

// progress is how far the run is toward MaxAt, in [0, 1].
func (d *DifficultyManager) progress(score, moves int) float64 {
	if !d.IsEnabled() {
		return 0
	}
	at := float64(max(d.cfg.Progression.MaxAt, 1))
	v := float64(moves)
	if d.cfg.Progression.Type == ProgressionScore {
		v = float64(score)
	}
	return unit(v / at)
}

// Level returns the difficulty for a run with the given score and moves
// played, rising linearly from the initial level to 1.
func (d *DifficultyManager) Level(score, moves int) float64 {
	return d.base + d.progress(score, moves)*(1-d.base)
}

// PaletteSize returns how many kinds should be in play.
func (d *DifficultyManager) PaletteSize(base, score, moves int) int {
	extra := int(d.Level(score, moves) * float64(d.cfg.Scaling.ExtraKinds))
	return min(base+extra, maxKinds)
}

// MoveBudget shrinks a level's move budget by the initial difficulty only;
// progression never changes a running level's budget. Budgets are not cut
// below minMoveBudget, and budgets already below it are left alone.
func (d *DifficultyManager) MoveBudget(base int) int {
	if base < minMoveBudget {
		return base
	}
	cut := int(d.base * float64(d.cfg.Scaling.MoveReduction))
	return max(base-cut, minMoveBudget)
}

func unit(v float64) float64 {
	return min(max(v, 0), 1)
}
