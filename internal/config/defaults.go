package config

import (
	_ "embed"
)

//go:embed defaults/gemquest.yaml
var defaultGemQuestYAML []byte

// DefaultGemQuestConfig returns hardcoded default config (fallback).
func DefaultGemQuestConfig() GemQuestConfig {
	return GemQuestConfig{
		Board: BoardConfig{
			Size:          8,
			PaletteSize:   6,
			SpecialChance: 0,
		},
		Scoring: ScoringConfig{
			PerToken:      10,
			MaxMultiplier: 5,
			ChainBonus:    20,
		},
		Bonus: BonusConfig{
			Threshold: 10,
			Units:     2,
		},
		Rules: RulesConfig{
			MissPolicy:        "revert_charged",
			CellAttempts:      50,
			BoardAttempts:     100,
			ReshuffleAttempts: 100,
		},
		Pacing: PacingConfig{
			SettleMS: 200,
			RemoveMS: 300,
			DropMS:   300,
		},
		Attack: AttackConfig{
			Moves: 30,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 5000,
			},
			Scaling: ScalingConfig{
				ExtraKinds:    2,
				MoveReduction: 5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML, used by `gemquest config`.
func DefaultYAML() []byte {
	return defaultGemQuestYAML
}
