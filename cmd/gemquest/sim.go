package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gem-quest/internal/games/gemquest"
)

var (
	flagSimMoves   int
	flagSimVerbose bool
)

var simCmd = &cobra.Command{
	Use:   "sim [level]",
	Short: "Play a level headless",
	Long: `Play a level without a screen, always taking the first legal swap,
and print what every move scored. Useful for checking level packs and
config changes.

Examples:
  gemquest sim 3 --seed 42
  gemquest sim --mode attack --moves 50
  gemquest sim 2 --levels ./pack.yaml -v`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagMode, "mode", string(gemquest.ModeCampaign), "Game mode: campaign or attack")
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 0, "Stop after this many moves (0 = until the level ends)")
	simCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Print every move")
}

func runSim(_ *cobra.Command, args []string) error {
	if _, err := gameIDForMode(flagMode); err != nil {
		return err
	}
	level, err := parseLevel(args)
	if err != nil {
		return err
	}

	_, closeLog := openLogger()
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	game := gemquest.NewHeadless(gemquest.Mode(flagMode), level, seed)
	res, err := game.Autoplay(flagSimMoves)
	if err != nil && !errors.Is(err, gemquest.ErrNoMove) {
		return err
	}

	if flagSimVerbose {
		fmt.Printf("  %-4s  %-13s  %-7s  %-5s  %s\n", "Move", "Swap", "Removed", "Combo", "Score")
		for i, m := range res.Moves {
			swap := fmt.Sprintf("%d,%d-%d,%d", m.Move.A.Row, m.Move.A.Col, m.Move.B.Row, m.Move.B.Col)
			note := ""
			if m.Reshuffled {
				note = "  (reshuffled)"
			}
			fmt.Printf("  %-4d  %-13s  %-7d  %-5d  +%d%s\n", i+1, swap, m.Removed, m.Combo, m.ScoreDelta, note)
		}
		fmt.Println()
	}

	what := "Score attack"
	if res.Level > 0 {
		what = fmt.Sprintf("Level %d (%s)", res.Level, game.Level().Name)
	}
	result := "lost"
	switch {
	case res.Won:
		result = "won"
	case game.Outcome() == gemquest.OutcomePlaying:
		result = "stopped"
	}
	fmt.Printf("%s, seed %d: %s with %d points in %d moves, %d left\n",
		what, seed, result, res.Score, len(res.Moves), res.MovesLeft)
	if res.Reshuffles > 0 {
		fmt.Printf("Board reshuffled %d times\n", res.Reshuffles)
	}
	if errors.Is(err, gemquest.ErrNoMove) {
		fmt.Println("Stopped: no legal move left")
	}
	return nil
}
