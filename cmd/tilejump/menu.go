package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilejump/internal/games/platformer"
	"github.com/vovakirdan/tilejump/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick levels from a menu in the terminal",
	Long: `Start in interactive menu mode.

The menu lists the built-in levels and the levels under --levels-dir with
their best scores. After a run ends, quitting the game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play level
  Tab          - Scoreboard
  Q            - Quit

Examples:
  tilejump menu
  tilejump menu --levels-dir ./levels
  tilejump menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	addGameFlags(menuCmd, false)
	addHoldFlag(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	if _, err := configureGame(nil); err != nil {
		closeLog()
		fatal(stderrLogger(), "invalid game flags", "error", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg, flagLevelDir)
		if err != nil {
			logger.Error("menu failed", "error", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH, flagLevelDir)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.LevelID == "" {
			break
		}

		game := platformer.New()
		game.SelectLevel(menuResult.LevelID)

		cfg.Seed = time.Now().UnixNano()
		err = tui.Run(game, store, cfg, tui.Options{
			HoldWindow: holdWindow(),
			Logger:     logger,
		})
		if err != nil {
			logger.Error("game stopped", "error", err)
		}
		if game.Err() != nil {
			logger.Warn("level fell back to the default", "level", menuResult.LevelID, "error", game.Err())
		}
	}
}
