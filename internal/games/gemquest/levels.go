// Package gemquest implements Gem Quest, a match-3 puzzle with a goal-based
// campaign and a score-attack mode, on top of the match3 engine.
package gemquest

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gem-quest/internal/match3"
)

// Goal is a collection target for one gem kind.
type Goal struct {
	Kind   match3.Kind
	Target int
}

// Level defines a campaign level.
type Level struct {
	ID          int
	Name        string
	Moves       int // Move budget
	PaletteSize int // Gem kinds in play, the first N of the full palette
	Goals       []Goal
}

// GoalKinds returns the kinds of the level's goals in order.
func (l Level) GoalKinds() []match3.Kind {
	return goalKinds(l.Goals)
}

func goalKinds(goals []Goal) []match3.Kind {
	kinds := make([]match3.Kind, len(goals))
	for i, g := range goals {
		kinds[i] = g.Kind
	}
	return kinds
}

// Palette returns the kinds spawned on this level.
func (l Level) Palette() []match3.Kind {
	return match3.DefaultPalette(l.PaletteSize)
}

// Validate checks that the level is playable.
func (l Level) Validate() error {
	if l.Moves <= 0 {
		return fmt.Errorf("level %q: moves must be positive, got %d", l.Name, l.Moves)
	}
	if l.PaletteSize < 3 || l.PaletteSize > len(match3.FullPalette()) {
		return fmt.Errorf("level %q: palette size %d out of range [3, %d]", l.Name, l.PaletteSize, len(match3.FullPalette()))
	}
	if len(l.Goals) == 0 {
		return fmt.Errorf("level %q: no goals", l.Name)
	}
	palette := l.Palette()
	seen := make(map[match3.Kind]bool)
	for _, g := range l.Goals {
		if !slices.Contains(palette, g.Kind) {
			return fmt.Errorf("level %q: goal kind %s is not in the palette", l.Name, g.Kind)
		}
		if seen[g.Kind] {
			return fmt.Errorf("level %q: duplicate goal kind %s", l.Name, g.Kind)
		}
		if g.Target <= 0 {
			return fmt.Errorf("level %q: goal %s needs a positive target", l.Name, g.Kind)
		}
		seen[g.Kind] = true
	}
	return nil
}

// DefaultLevels is the built-in campaign. The first three levels use the
// classic six-gem palette; later ones widen it.
var DefaultLevels = []Level{
	{ID: 1, Name: "First Steps", Moves: 20, PaletteSize: 6, Goals: []Goal{
		{Kind: match3.KindRed, Target: 15},
		{Kind: match3.KindBlue, Target: 15},
	}},
	{ID: 2, Name: "Rising Challenge", Moves: 18, PaletteSize: 6, Goals: []Goal{
		{Kind: match3.KindGreen, Target: 20},
		{Kind: match3.KindYellow, Target: 20},
	}},
	{ID: 3, Name: "Master Level", Moves: 15, PaletteSize: 6, Goals: []Goal{
		{Kind: match3.KindPurple, Target: 25},
		{Kind: match3.KindOrange, Target: 25},
	}},
	{ID: 4, Name: "Rose Garden", Moves: 22, PaletteSize: 7, Goals: []Goal{
		{Kind: match3.KindPink, Target: 20},
		{Kind: match3.KindRed, Target: 20},
	}},
	{ID: 5, Name: "Deep Water", Moves: 24, PaletteSize: 8, Goals: []Goal{
		{Kind: match3.KindCyan, Target: 20},
		{Kind: match3.KindBlue, Target: 25},
	}},
	{ID: 6, Name: "Prism", Moves: 28, PaletteSize: 10, Goals: []Goal{
		{Kind: match3.KindLime, Target: 15},
		{Kind: match3.KindMagenta, Target: 15},
		{Kind: match3.KindCyan, Target: 15},
	}},
}

// Levels is the active campaign. SetLevels replaces it.
var Levels = DefaultLevels

// SetLevels replaces the campaign, e.g. with a loaded level pack.
// An empty slice restores the built-in levels.
func SetLevels(levels []Level) {
	if len(levels) == 0 {
		Levels = DefaultLevels
		return
	}
	Levels = levels
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}

// levelPack is the YAML layout of a level pack file.
type levelPack struct {
	Levels []struct {
		Name        string `yaml:"name"`
		Moves       int    `yaml:"moves"`
		PaletteSize int    `yaml:"palette_size"`
		Goals       []struct {
			Kind  string `yaml:"kind"`
			Count int    `yaml:"count"`
		} `yaml:"goals"`
	} `yaml:"levels"`
}

// LoadLevelPack reads a YAML level pack. Levels are numbered in file order;
// palette_size defaults to 6.
func LoadLevelPack(path string) ([]Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level pack %s: %w", path, err)
	}
	return ParseLevelPack(data)
}

// ParseLevelPack decodes and validates level pack YAML.
func ParseLevelPack(data []byte) ([]Level, error) {
	var pack levelPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse level pack: %w", err)
	}
	if len(pack.Levels) == 0 {
		return nil, fmt.Errorf("level pack has no levels")
	}

	levels := make([]Level, 0, len(pack.Levels))
	for i, raw := range pack.Levels {
		lvl := Level{
			ID:          i + 1,
			Name:        raw.Name,
			Moves:       raw.Moves,
			PaletteSize: raw.PaletteSize,
		}
		if lvl.Name == "" {
			lvl.Name = fmt.Sprintf("Level %d", i+1)
		}
		if lvl.PaletteSize == 0 {
			lvl.PaletteSize = 6
		}
		for _, g := range raw.Goals {
			k, ok := match3.ParseKind(g.Kind)
			if !ok {
				return nil, fmt.Errorf("level %q: unknown gem kind %q", lvl.Name, g.Kind)
			}
			lvl.Goals = append(lvl.Goals, Goal{Kind: k, Target: g.Count})
		}
		if err := lvl.Validate(); err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}
