// Package registry maps mode IDs to game factories. Modes register
// themselves in init(), so the CLI and the SSH sessions can create them by
// the ID stored with every score.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/gem-quest/internal/core"
)

// Game is the interface every playable mode implements. Games hold pure
// logic: the platform maps input, drives the tick and draws the screen.
type Game interface {
	// ID identifies the mode in the CLI and the score table.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts the game over with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Mode describes a registered mode.
type Mode struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	modes     []Mode // registration order
)

// Register adds a mode. It panics on a duplicate ID or an empty title.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	if title == "" {
		panic(fmt.Sprintf("registry: mode %q has no title", id))
	}
	factories[id] = f
	modes = append(modes, Mode{ID: id, Title: title})
}

// Modes returns the registered modes in registration order.
func Modes() []Mode {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Mode(nil), modes...)
}

// Title returns the title of a mode, or the ID itself when unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()
	for _, m := range modes {
		if m.ID == id {
			return m.Title
		}
	}
	return id
}

// Create instantiates a mode by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}
	return f(), nil
}

// Exists reports whether a mode is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[id]
	return ok
}
