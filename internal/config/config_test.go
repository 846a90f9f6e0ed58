package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/gem-quest/internal/match3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadGemQuest("")
	if err != nil {
		t.Fatalf("LoadGemQuest() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultGemQuestConfig()) {
		t.Errorf("embedded defaults differ from DefaultGemQuestConfig():\n%+v\n%+v", cfg, DefaultGemQuestConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "board:\n  size: 6\n  palette: [red, cyan, lime, gold]\nrules:\n  miss_policy: accept\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGemQuest(path)
	if err != nil {
		t.Fatalf("LoadGemQuest() error: %v", err)
	}
	if cfg.Board.Size != 6 {
		t.Errorf("board size = %d, expected 6", cfg.Board.Size)
	}
	if cfg.Rules.MissPolicy != "accept" {
		t.Errorf("miss policy = %q", cfg.Rules.MissPolicy)
	}
	if cfg.Scoring.PerToken != 10 {
		t.Errorf("unset key lost its default: per_token = %d", cfg.Scoring.PerToken)
	}
	// "gold" is not a gem kind
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted an unknown kind")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadGemQuest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config returned nil error")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGemQuest(path); err == nil {
		t.Error("malformed custom config returned nil error")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	writeConfig := func(dir string, moves string) {
		t.Helper()
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("attack:\n  moves: "+moves+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	writeConfig(filepath.Join(work, "configs"), "41")
	cfg, err := LoadGemQuest("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Attack.Moves != 41 {
		t.Errorf("local config not used: moves = %d", cfg.Attack.Moves)
	}

	writeConfig(filepath.Join(home, AppDir, "configs"), "52")
	cfg, err = LoadGemQuest("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Attack.Moves != 52 {
		t.Errorf("user config should win over local: moves = %d", cfg.Attack.Moves)
	}
}

func TestLoadReportsSource(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	l, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if l.Source != EmbeddedSource {
		t.Errorf("Source = %q, want %q", l.Source, EmbeddedSource)
	}

	paths := SearchPaths()
	if len(paths) != 2 || paths[0] != filepath.Join(home, AppDir, "configs", ConfigFile) {
		t.Fatalf("SearchPaths() = %v", paths)
	}
	if err := os.MkdirAll(filepath.Dir(paths[0]), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths[0], []byte("board: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err = Load("")
	if err == nil {
		t.Error("malformed user config was skipped")
	}
	if l.Source != paths[0] {
		t.Errorf("Source = %q, want %q", l.Source, paths[0])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*GemQuestConfig)
	}{
		{"board too small", func(c *GemQuestConfig) { c.Board.Size = 2 }},
		{"board too large", func(c *GemQuestConfig) { c.Board.Size = 40 }},
		{"palette too small", func(c *GemQuestConfig) { c.Board.PaletteSize = 2 }},
		{"palette too large", func(c *GemQuestConfig) { c.Board.PaletteSize = 11 }},
		{"short explicit palette", func(c *GemQuestConfig) { c.Board.Palette = []string{"red", "blue"} }},
		{"special chance", func(c *GemQuestConfig) { c.Board.SpecialChance = 1.5 }},
		{"miss policy", func(c *GemQuestConfig) { c.Rules.MissPolicy = "sometimes" }},
		{"bonus threshold", func(c *GemQuestConfig) { c.Bonus.Threshold = 0 }},
		{"attack moves", func(c *GemQuestConfig) { c.Attack.Moves = 0 }},
		{"volume", func(c *GemQuestConfig) { c.Audio.Volume = 2 }},
		{"progression", func(c *GemQuestConfig) { c.Difficulty.Progression.Type = "time" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGemQuestConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() returned nil")
			}
		})
	}
}

func TestEngineOptions(t *testing.T) {
	cfg := DefaultGemQuestConfig()
	cfg.Board.Palette = []string{"Red", "blue", "lime", "cyan"}
	cfg.Rules.MissPolicy = "accept"
	cfg.Bonus.Threshold = 12

	opts, err := cfg.EngineOptions(99)
	if err != nil {
		t.Fatalf("EngineOptions() error: %v", err)
	}
	want := []match3.Kind{match3.KindRed, match3.KindBlue, match3.KindLime, match3.KindCyan}
	if !reflect.DeepEqual(opts.Palette, want) {
		t.Errorf("palette = %v, expected %v", opts.Palette, want)
	}
	if opts.MissPolicy != match3.MissAccept {
		t.Errorf("miss policy = %v", opts.MissPolicy)
	}
	if opts.Seed != 99 || opts.BonusThreshold != 12 || opts.Size != 8 {
		t.Errorf("options not carried over: %+v", opts)
	}
	if opts.Score != match3.DefaultScoreRules() {
		t.Errorf("score rules = %+v", opts.Score)
	}
	if _, err := match3.New(opts); err != nil {
		t.Errorf("engine rejected converted options: %v", err)
	}

	cfg.Board.Size = 1
	if _, err := cfg.EngineOptions(1); err == nil {
		t.Error("EngineOptions() accepted an invalid config")
	}
}

func TestControllerPacing(t *testing.T) {
	p := DefaultGemQuestConfig().Pacing.ControllerPacing()
	if p != match3.DefaultPacing() {
		t.Errorf("pacing = %+v, expected %+v", p, match3.DefaultPacing())
	}
}

func TestApplyGemQuestPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		enabled     bool
		level       float64
		paletteSize int
	}{
		{DifficultyEasy, true, 0.0, 5},
		{DifficultyNormal, true, 0.3, 6},
		{DifficultyHard, true, 0.7, 7},
		{DifficultyFixed, false, 0.0, 6},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultGemQuestConfig()
			ApplyGemQuestPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.level {
				t.Errorf("initial level = %v, expected %v", cfg.Difficulty.InitialLevel, tt.level)
			}
			if cfg.Board.PaletteSize != tt.paletteSize {
				t.Errorf("palette size = %d, expected %d", cfg.Board.PaletteSize, tt.paletteSize)
			}
		})
	}

	cfg := DefaultGemQuestConfig()
	cfg.Board.Palette = []string{"red", "blue", "green"}
	cfg.Board.PaletteSize = 6
	ApplyGemQuestPreset(&cfg, DifficultyHard)
	if cfg.Board.PaletteSize != 6 {
		t.Error("preset changed palette size despite an explicit palette")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", DifficultyNormal, true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}
