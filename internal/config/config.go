// Package config loads Gem Quest settings from YAML.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/gem-quest/internal/match3"
)

// GemQuestConfig holds all configurable parameters for Gem Quest.
type GemQuestConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Bonus      BonusConfig      `yaml:"bonus"`
	Rules      RulesConfig      `yaml:"rules"`
	Pacing     PacingConfig     `yaml:"pacing"`
	Attack     AttackConfig     `yaml:"attack"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid and the token palette.
type BoardConfig struct {
	Size          int      `yaml:"size"`
	Palette       []string `yaml:"palette"`      // Kind names; empty means the first palette_size kinds
	PaletteSize   int      `yaml:"palette_size"` // Used when palette is empty
	SpecialChance float64  `yaml:"special_chance"`
}

// ScoringConfig defines the per-step score formula.
type ScoringConfig struct {
	PerToken      int `yaml:"per_token"`
	MaxMultiplier int `yaml:"max_multiplier"`
	ChainBonus    int `yaml:"chain_bonus"`
}

// BonusConfig defines the bonus progress meter.
type BonusConfig struct {
	Threshold int `yaml:"threshold"`
	Units     int `yaml:"units"` // Goal tokens granted per kind per crossing
}

// RulesConfig defines swap rules and generation limits.
type RulesConfig struct {
	MissPolicy        string `yaml:"miss_policy"` // "revert", "revert_charged" or "accept"
	CellAttempts      int    `yaml:"cell_attempts"`
	BoardAttempts     int    `yaml:"board_attempts"`
	ReshuffleAttempts int    `yaml:"reshuffle_attempts"`
}

// PacingConfig defines animation delays in milliseconds.
type PacingConfig struct {
	SettleMS int `yaml:"settle_ms"`
	RemoveMS int `yaml:"remove_ms"`
	DropMS   int `yaml:"drop_ms"`
}

// AttackConfig defines the score-attack mode.
type AttackConfig struct {
	Moves int `yaml:"moves"`
}

// AudioConfig defines sound cue settings.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "moves", or "none"
	MaxAt int    `yaml:"max_at"` // Score/moves at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	ExtraKinds    int `yaml:"extra_kinds"`    // Kinds added to the palette at max difficulty
	MoveReduction int `yaml:"move_reduction"` // Moves removed from budgets at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return DifficultyNormal, fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyGemQuestPreset modifies the config based on a difficulty preset.
// An explicit palette list is left alone; otherwise the palette size follows
// the preset.
func ApplyGemQuestPreset(cfg *GemQuestConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	if len(cfg.Board.Palette) > 0 {
		return
	}
	switch preset {
	case DifficultyEasy:
		cfg.Board.PaletteSize = 5
	case DifficultyNormal:
		cfg.Board.PaletteSize = 6
	case DifficultyHard:
		cfg.Board.PaletteSize = 7
	}
}

// Kinds resolves the configured palette.
func (c BoardConfig) Kinds() ([]match3.Kind, error) {
	if len(c.Palette) == 0 {
		if c.PaletteSize < 3 || c.PaletteSize > len(match3.FullPalette()) {
			return nil, fmt.Errorf("config: palette_size %d out of range [3, %d]", c.PaletteSize, len(match3.FullPalette()))
		}
		return match3.DefaultPalette(c.PaletteSize), nil
	}
	kinds := make([]match3.Kind, 0, len(c.Palette))
	for _, name := range c.Palette {
		k, ok := match3.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("config: unknown gem kind %q", name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Validate reports the first setting the engine cannot run with.
func (c GemQuestConfig) Validate() error {
	if c.Board.Size < 3 || c.Board.Size > 16 {
		return fmt.Errorf("config: board size %d out of range [3, 16]", c.Board.Size)
	}
	kinds, err := c.Board.Kinds()
	if err != nil {
		return err
	}
	if len(kinds) < 3 {
		return fmt.Errorf("config: palette needs at least 3 kinds, got %d", len(kinds))
	}
	if c.Board.SpecialChance < 0 || c.Board.SpecialChance >= 1 {
		return fmt.Errorf("config: special_chance %.2f out of range [0, 1)", c.Board.SpecialChance)
	}
	if _, err := match3.ParseMissPolicy(c.Rules.MissPolicy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Bonus.Threshold <= 0 {
		return fmt.Errorf("config: bonus threshold must be positive, got %d", c.Bonus.Threshold)
	}
	if c.Attack.Moves <= 0 {
		return fmt.Errorf("config: attack moves must be positive, got %d", c.Attack.Moves)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("config: audio volume %.2f out of range [0, 1]", c.Audio.Volume)
	}
	switch c.Difficulty.Progression.Type {
	case "", ProgressionNone, ProgressionScore, ProgressionMoves:
	default:
		return fmt.Errorf("config: unknown progression type %q", c.Difficulty.Progression.Type)
	}
	return nil
}

// EngineOptions converts the config into match3 engine options.
// Zero-valued limits fall back to the engine defaults.
func (c GemQuestConfig) EngineOptions(seed int64) (match3.Options, error) {
	if err := c.Validate(); err != nil {
		return match3.Options{}, err
	}
	kinds, _ := c.Board.Kinds()
	policy, _ := match3.ParseMissPolicy(c.Rules.MissPolicy)

	opts := match3.DefaultOptions()
	opts.Size = c.Board.Size
	opts.Palette = kinds
	opts.SpecialChance = c.Board.SpecialChance
	opts.Seed = seed
	opts.MissPolicy = policy
	opts.BonusThreshold = c.Bonus.Threshold
	if c.Bonus.Units > 0 {
		opts.BonusUnits = c.Bonus.Units
	}
	if c.Scoring != (ScoringConfig{}) {
		opts.Score = match3.ScoreRules{
			PerToken:      c.Scoring.PerToken,
			MaxMultiplier: c.Scoring.MaxMultiplier,
			ChainBonus:    c.Scoring.ChainBonus,
		}
	}
	if c.Rules.CellAttempts > 0 {
		opts.Init.CellAttempts = c.Rules.CellAttempts
	}
	if c.Rules.BoardAttempts > 0 {
		opts.Init.BoardAttempts = c.Rules.BoardAttempts
	}
	if c.Rules.ReshuffleAttempts > 0 {
		opts.ReshuffleAttempts = c.Rules.ReshuffleAttempts
	}
	return opts, nil
}

// ControllerPacing converts the millisecond delays into controller pacing.
func (c PacingConfig) ControllerPacing() match3.Pacing {
	return match3.Pacing{
		Settle: time.Duration(c.SettleMS) * time.Millisecond,
		Remove: time.Duration(c.RemoveMS) * time.Millisecond,
		Drop:   time.Duration(c.DropMS) * time.Millisecond,
	}
}
