package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilejump/internal/level"
	"github.com/vovakirdan/tilejump/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show the best runs of a level",
	Long: `Display the best runs recorded for a level, or a summary of every
level that has runs when no level is given.

Examples:
  tilejump scores
  tilejump scores 01-meadow
  tilejump scores 01-meadow --limit 25
  tilejump scores 01-meadow --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs of the level")
}

func runScores(_ *cobra.Command, args []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal(logger, "cannot open runs database", "path", flagDBPath, "error", err)
	}
	defer store.Close()

	if len(args) == 0 {
		printSummary(store)
		return
	}

	levelID := args[0]
	if flagScoresClear {
		if err := store.ClearRuns(levelID); err != nil {
			fatal(logger, "cannot clear runs", "level", levelID, "error", err)
		}
		logger.Info("runs cleared", "level", levelID)
		return
	}

	runs, err := store.TopRuns(levelID, flagScoresLimit)
	if err != nil {
		fatal(logger, "cannot read runs", "level", levelID, "error", err)
	}

	title := levelID
	if lvl, err := level.Builtin(levelID); err == nil {
		title = lvl.Title()
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tilejump play %s' to set the first high score!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %-6s  %s\n", "Rank", "Score", "Kills", "Outcome", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %-6s  %s\n", "----", "-----", "-----", "-------", "----", "----")
	for i, r := range runs {
		secs := float64(r.Ticks) / float64(max(flagFPS, 1))
		fmt.Printf("  %-4d  %-8d  %-5d  %-8s  %5.1fs  %s\n",
			i+1, r.Score, r.Kills, r.Outcome, secs, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.LevelStats(levelID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d   Runs: %d   Clears: %d   Average: %.0f\n",
			stats.BestScore, stats.Runs, stats.Clears, stats.AvgScore)
	}
}

func printSummary(store *storage.Store) {
	all, err := store.AllLevelStats()
	if err != nil || len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	levels, _ := level.Catalog()
	order := make([]string, 0, len(all))
	for _, l := range levels {
		if _, ok := all[l.ID]; ok {
			order = append(order, l.ID)
		}
	}
	for id := range all {
		if _, err := level.Builtin(id); err != nil {
			order = append(order, id)
		}
	}

	fmt.Printf("  %-16s  %-6s  %-6s  %-6s  %-6s  %s\n", "Level", "Best", "Runs", "Clears", "Kills", "Last played")
	for _, id := range order {
		s := all[id]
		fmt.Printf("  %-16s  %-6d  %-6d  %-6d  %-6d  %s\n",
			id, s.BestScore, s.Runs, s.Clears, s.TotalKills, s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
