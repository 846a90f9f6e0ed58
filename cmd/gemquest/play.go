package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gem-quest/internal/audio"
	"github.com/vovakirdan/gem-quest/internal/config"
	"github.com/vovakirdan/gem-quest/internal/games/gemquest"
	"github.com/vovakirdan/gem-quest/internal/platform/tui"
	"github.com/vovakirdan/gem-quest/internal/registry"
	"github.com/vovakirdan/gem-quest/internal/storage"
)

var (
	flagMode string
	flagMute bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level or score attack",
	Long: `Start playing Gem Quest directly, without the menu.

Controls:
  Arrows/WASD/HJKL  - Move cursor
  Space             - Select gem / swap with selection
  Mouse click       - Select gem
  X                 - Clear selection
  Enter/N           - Next level (after a win)
  P                 - Pause
  R                 - Restart
  M                 - Toggle sound
  Esc               - Pause / leave
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Larger move budgets, fewer gem kinds
  normal - Default settings
  hard   - Tighter move budgets, more gem kinds
  fixed  - No progression during score attack

Examples:
  gemquest play
  gemquest play 3
  gemquest play --mode attack
  gemquest play 2 --difficulty hard --mute
  gemquest play --config ./my-gemquest.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", string(gemquest.ModeCampaign), "Game mode: campaign or attack")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound cues")
}

// gameIDForMode maps a --mode value to a registry ID.
func gameIDForMode(mode string) (string, error) {
	switch gemquest.Mode(mode) {
	case gemquest.ModeCampaign, "":
		return gemquest.CampaignID, nil
	case gemquest.ModeAttack:
		return gemquest.AttackID, nil
	default:
		return "", fmt.Errorf("unknown mode %q (use campaign or attack)", mode)
	}
}

// parseLevel parses a 1-based level argument.
func parseLevel(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	level, err := strconv.Atoi(args[0])
	if err != nil || level < 1 || level > gemquest.LevelCount() {
		return 0, fmt.Errorf("level must be a number from 1 to %d, got %q", gemquest.LevelCount(), args[0])
	}
	return level, nil
}

// newAudio creates the sound player from the game config and opens the
// audio device. Failures leave a silent player.
func newAudio(logger *log.Logger, mute bool) *audio.Player {
	cfg, err := config.LoadGemQuest(flagConfig)
	if err != nil {
		logger.Warn("audio settings unavailable", "error", err)
		cfg = config.DefaultGemQuestConfig()
	}
	player := audio.NewPlayer(cfg.Audio.Enabled && !mute, cfg.Audio.Volume, logger)
	// Opened even when muted so the m key can turn sound on.
	if cfg.Audio.Enabled {
		_ = player.Init() // logged by Init
	}
	return player
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID, err := gameIDForMode(flagMode)
	if err != nil {
		return err
	}
	level, err := parseLevel(args)
	if err != nil {
		return err
	}

	logger, closeLog := openLogger()
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	if g, ok := game.(*gemquest.Game); ok {
		g.StartAt(level)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
		if gameID == gemquest.CampaignID {
			unlocked, _ := store.Unlocked(storage.LocalPlayer)
			if level > unlocked {
				return fmt.Errorf("level %d is locked, clear level %d first", level, unlocked)
			}
		}
	}

	sound := newAudio(logger, flagMute)
	defer sound.Close()

	_, err = tui.Run(game, runtimeConfig(), tui.Options{
		Store:  store,
		Audio:  sound,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
