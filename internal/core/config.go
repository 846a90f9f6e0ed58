package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 30)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: DefaultTickRate,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Tick rate bounds. Rates outside are replaced by the nearest bound,
// or by DefaultTickRate when unset.
const (
	DefaultTickRate = 30
	MaxTickRate     = 120
)

// TickDuration returns the time covered by one Step. The platform ticks
// at this interval, so simulated and wall-clock time agree.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	switch {
	case rate <= 0:
		rate = DefaultTickRate
	case rate > MaxTickRate:
		rate = MaxTickRate
	}
	return time.Second / time.Duration(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Current score
	GameOver  bool // Whether the game has ended
	Won       bool // Whether the game ended with the level cleared
	Paused    bool // Whether the game is paused
	Level     int  // Current level number, 0 for modes without levels
	MovesLeft int  // Remaining move budget
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
