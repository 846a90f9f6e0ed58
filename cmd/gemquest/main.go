// gemquest is a match-3 puzzle game for the terminal.
//
// Usage:
//
//	gemquest levels            - List campaign levels
//	gemquest play [level]      - Play a level or score attack
//	gemquest menu              - Pick levels interactively
//	gemquest serve             - Start SSH server for remote play
//	gemquest scores [mode]     - Show high scores
//	gemquest sim [level]       - Play a level headless and print each move
//	gemquest config            - Print the default configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.gemquest/scores.db)
//	--log-level <lvl>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gem-quest/internal/config"
	"github.com/vovakirdan/gem-quest/internal/core"
	"github.com/vovakirdan/gem-quest/internal/games/gemquest"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	flagConfig     string
	flagDifficulty string
	flagLevels     string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gemquest",
	Short: "Gem Quest - match-3 puzzles in your terminal",
	Long: `Gem Quest is a match-3 puzzle game for the terminal. Swap adjacent
gems to line up three or more of a kind, chain cascades for combos and
collect the gems each level asks for before the moves run out.

Available commands:
  levels   - List campaign levels
  play     - Play a level or score attack directly
  menu     - Interactive level picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  sim      - Play a level headless
  config   - Print the default configuration

Examples:
  gemquest menu
  gemquest play 2
  gemquest play --mode attack --difficulty hard
  gemquest serve --ssh :2222
  gemquest scores attack`,
	SilenceUsage:      true,
	PersistentPreRunE: applySettings,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gemquest/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to a YAML level pack replacing the built-in campaign")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// applySettings hands the game flags to the gemquest package before any
// game is created.
func applySettings(_ *cobra.Command, _ []string) error {
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}
	gemquest.SetConfigPath(flagConfig)
	gemquest.SetDifficultyPreset(flagDifficulty)

	if flagLevels != "" {
		levels, err := gemquest.LoadLevelPack(flagLevels)
		if err != nil {
			return fmt.Errorf("loading level pack: %w", err)
		}
		gemquest.SetLevels(levels)
	}
	return nil
}

// openLogger returns a logger writing to ~/.gemquest/gemquest.log, since
// the terminal belongs to the game while it runs. It falls back to a
// discarding logger when the file cannot be opened.
func openLogger() (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}

	var out io.Writer = io.Discard
	closer := func() {}
	if dir := config.UserDir(); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err == nil {
			f, err := os.OpenFile(filepath.Join(dir, "gemquest.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				out = f
				closer = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "gemquest",
		Level:           level,
	})
	gemquest.SetLogger(logger)
	return logger, closer
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
