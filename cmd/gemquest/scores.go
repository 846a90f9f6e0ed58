package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gem-quest/internal/games/gemquest"
	"github.com/vovakirdan/gem-quest/internal/registry"
	"github.com/vovakirdan/gem-quest/internal/storage"
)

var (
	flagScoresLevel int
	flagScoresClear bool
	flagScoresAll   bool
	flagScoresRun   string
	flagScoresReset bool
	flagScoresHist  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [campaign|attack]",
	Short: "Show high scores",
	Long: `Display the top 10 runs and overall statistics for a mode.

Examples:
  gemquest scores
  gemquest scores attack
  gemquest scores --level 2
  gemquest scores attack --clear
  gemquest scores --all
  gemquest scores --history
  gemquest scores --run 5f0c...
  gemquest scores --reset-progress`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLevel, "level", 0, "Only show runs of this campaign level")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run of the mode")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show statistics for every mode")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show one run by its ID")
	scoresCmd.Flags().BoolVar(&flagScoresReset, "reset-progress", false, "Lock every campaign level but the first again")
	scoresCmd.Flags().BoolVar(&flagScoresHist, "history", false, "List every recorded run of the mode, best first")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := string(gemquest.ModeCampaign)
	if len(args) == 1 {
		mode = args[0]
	}
	gameID, err := gameIDForMode(mode)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresAll:
		return printAllStats(store)
	case flagScoresRun != "":
		return printRun(store, flagScoresRun)
	case flagScoresReset:
		if err := store.ResetProgress(storage.LocalPlayer); err != nil {
			return err
		}
		fmt.Println("Campaign progress reset; only level 1 is unlocked.")
		return nil
	case flagScoresHist:
		return printHistory(store, gameID)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared %s scores.\n", mode)
		return nil
	}

	var scores []storage.ScoreEntry
	title := registry.Title(gameID)
	if flagScoresLevel > 0 {
		scores, err = store.TopLevelScores(gameID, flagScoresLevel, 10)
		title = fmt.Sprintf("%s, level %d", title, flagScoresLevel)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'gemquest menu' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-3s  %-8s  %-6s  %s\n", "Rank", "Player", "Lvl", "Score", "Result", "Date")
	fmt.Printf("  %-4s  %-12s  %-3s  %-8s  %-6s  %s\n", "----", "------", "---", "-----", "------", "----")
	for i, entry := range scores {
		level := "-"
		if entry.Level > 0 {
			level = fmt.Sprint(entry.Level)
		}
		result := "lost"
		if entry.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-12s  %-3s  %-8d  %-6s  %s\n",
			i+1, entry.Player, level, entry.Score, result, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Wins: %d  Average: %.0f\n",
			stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	}
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving statistics: %w", err)
	}
	if len(all) == 0 {
		fmt.Println("No games played yet.")
		return nil
	}

	fmt.Printf("  %-24s  %-5s  %-5s  %-8s  %-8s  %s\n", "Mode", "Runs", "Wins", "Best", "Average", "Last played")
	fmt.Printf("  %-24s  %-5s  %-5s  %-8s  %-8s  %s\n", "----", "----", "----", "----", "-------", "-----------")
	for _, mode := range registry.Modes() {
		id := mode.ID
		st, ok := all[id]
		if !ok {
			continue
		}
		fmt.Printf("  %-24s  %-5d  %-5d  %-8d  %-8.0f  %s\n",
			registry.Title(id), st.GamesCount, st.Wins, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRun(store *storage.Store, runID string) error {
	run, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with ID %q", runID)
	}
	result := "lost"
	if run.Won {
		result = "won"
	}
	fmt.Printf("Run %s\n", run.RunID)
	fmt.Printf("  Mode:       %s\n", registry.Title(run.GameID))
	fmt.Printf("  Player:     %s\n", run.Player)
	if run.Level > 0 {
		fmt.Printf("  Level:      %d\n", run.Level)
	}
	fmt.Printf("  Score:      %d (%s, %d moves left)\n", run.Score, result, run.MovesLeft)
	fmt.Printf("  Played:     %s\n", run.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func printHistory(store *storage.Store, gameID string) error {
	runs, err := store.AllScores(gameID)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	best, err := store.HighScore(gameID)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d runs, best %d\n\n", registry.Title(gameID), len(runs), best)
	for _, r := range runs {
		marker := ""
		if r.Score == best && best > 0 {
			marker = " *"
		}
		fmt.Printf("  %s  %-36s  %-12s  %8d%s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.RunID, r.Player, r.Score, marker)
	}
	return nil
}
