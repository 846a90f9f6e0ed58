package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gem-quest/internal/games/gemquest"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List campaign levels",
	Long: `Shows the campaign levels with their move budgets and goals.

Use --levels to list a level pack instead of the built-in campaign.`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	if gemquest.LevelCount() == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Campaign levels:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, name := range gemquest.LevelNames() {
		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}

	fmt.Printf("  %-3s  %-*s  %-5s  %-4s  %s\n", "#", maxNameLen, "Name", "Moves", "Gems", "Goals")
	fmt.Printf("  %-3s  %-*s  %-5s  %-4s  %s\n", "-", maxNameLen, "----", "-----", "----", "-----")

	for i := range gemquest.LevelCount() {
		lvl := gemquest.GetLevel(i)
		goals := make([]string, len(lvl.Goals))
		for j, g := range lvl.Goals {
			goals[j] = fmt.Sprintf("%d %s", g.Target, g.Kind)
		}
		fmt.Printf("  %-3d  %-*s  %-5d  %-4d  %s\n", i+1, maxNameLen, lvl.Name, lvl.Moves, lvl.PaletteSize, strings.Join(goals, ", "))
	}

	fmt.Println()
	fmt.Println("Run 'gemquest play <level>' to play a level.")
}
