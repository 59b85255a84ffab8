package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tilejump/internal/core"
	"github.com/vovakirdan/tilejump/internal/games/platformer"
	"github.com/vovakirdan/tilejump/internal/platform/tui"
	"github.com/vovakirdan/tilejump/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level in the terminal",
	Long: `Start playing a level in the terminal. Without a level argument the
first built-in level is played. The level may be a built-in ID, the ID of
a level under --levels-dir, or a path to a .tmx/.yaml file.

Controls:
  Left/Right, A/D  - Run
  Space/Up/W       - Jump
  X/F              - Shoot
  P/Esc            - Pause
  R                - Restart
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Terminals report key presses but not releases, so a key counts as held
until no repeat arrives for --hold-ms milliseconds.

Difficulty options:
  easy   - Slower enemies, faster gun
  normal - Default speeds, enemies speed up over time
  hard   - Faster enemies, slower gun
  fixed  - No speed-up, stays at config's initial level

Examples:
  tilejump play
  tilejump play 02-tower --difficulty hard
  tilejump play --map ./levels/castle.tmx
  tilejump play --config ./my-platformer.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd, true)
	addHoldFlag(playCmd)
}

// terminalConfig sizes the runtime config to the terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) {
	logger, closeLog := newLogger(true)
	defer closeLog()

	lvl, err := configureGame(args)
	if err != nil {
		closeLog()
		fatal(stderrLogger(), "cannot load level", "error", err)
	}
	logLevelLoaded(logger, lvl)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	game, err := registry.Create(platformer.GameID)
	if err != nil {
		closeLog()
		fatal(stderrLogger(), "cannot create game", "error", err)
	}

	err = tui.Run(game, store, terminalConfig(), tui.Options{
		HoldWindow: holdWindow(),
		Logger:     logger,
	})
	if err != nil {
		logger.Error("game stopped", "error", err)
		closeLog()
		fatal(stderrLogger(), "error running game", "error", err)
	}
}
