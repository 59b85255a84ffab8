package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilejump/internal/config"
	"github.com/vovakirdan/tilejump/internal/games/platformer"
	"github.com/vovakirdan/tilejump/internal/level"
	"github.com/vovakirdan/tilejump/internal/platform/tui"
)

// Game flags shared by play, menu and window.
var (
	flagConfig     string
	flagDifficulty string
	flagMap        string
	flagLevelDir   string
	flagHoldMs     int
)

func addGameFlags(cmd *cobra.Command, withMap bool) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagLevelDir, "levels-dir", "", "Directory with extra .tmx/.yaml levels")
	if withMap {
		cmd.Flags().StringVar(&flagMap, "map", "", "Path to a .tmx or .yaml level file (overrides the level argument)")
	}
}

func addHoldFlag(cmd *cobra.Command) {
	cmd.Flags().IntVar(&flagHoldMs, "hold-ms", int(tui.DefaultHoldWindow.Milliseconds()),
		"How long a key counts as held after its last repeat, in milliseconds")
}

// configureGame applies the game flags to the platformer package and returns
// the selected level, which must load.
func configureGame(args []string) (level.Level, error) {
	if _, ok := config.ParsePreset(flagDifficulty); !ok {
		return level.Level{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}

	ref := ""
	if len(args) > 0 {
		ref = args[0]
	}
	if flagMap != "" {
		ref = flagMap
	}
	lvl, err := level.Resolve(ref, flagLevelDir)
	if err != nil {
		return level.Level{}, err
	}

	platformer.SetConfigPath(flagConfig)
	platformer.SetDifficultyPreset(flagDifficulty)
	platformer.SetLevelSource(flagLevelDir)
	platformer.SetLevel(ref)
	return lvl, nil
}

func holdWindow() time.Duration {
	return time.Duration(flagHoldMs) * time.Millisecond
}
