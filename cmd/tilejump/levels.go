package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilejump/internal/level"
)

var flagListDir string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the built-in levels and the levels found under --dir.
Levels under --dir whose ID matches a built-in level are not listed.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagListDir, "dir", "", "Directory with extra .tmx/.yaml levels")
}

func runLevels(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	levels, err := level.Available(flagListDir)
	if err != nil {
		fatal(logger, "cannot list levels", "dir", flagListDir, "error", err)
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5 // "ID", "Title" headers
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
		maxTitleLen = max(maxTitleLen, len(l.Title()))
	}

	fmt.Printf("  %-*s  %-*s  %-7s  %-7s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Size", "Enemies", "Source")
	fmt.Printf("  %-*s  %-*s  %-7s  %-7s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----", "-------", "------")

	for _, l := range levels {
		size := fmt.Sprintf("%dx%d", l.Map.Cols, l.Map.Rows)
		source := l.FilePath
		if strings.HasPrefix(source, "builtin:") {
			source = "built-in"
		}
		fmt.Printf("  %-*s  %-*s  %-7s  %-7d  %s\n", maxIDLen, l.ID, maxTitleLen, l.Title(), size, l.EnemyCount(), source)
	}

	fmt.Println()
	fmt.Println("Run 'tilejump play <id>' to play a level.")
}
