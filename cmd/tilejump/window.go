package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilejump/internal/games/platformer"
	"github.com/vovakirdan/tilejump/internal/platform/window"
)

var (
	flagAssets string
	flagScale  float64
	flagMute   bool
)

var windowCmd = &cobra.Command{
	Use:   "window [level]",
	Short: "Play a level in a desktop window",
	Long: `Start playing a level in a 640x480 desktop window.

Sprites and sounds are read from --assets: background.png, player_right.png,
player_left.png, enemy.png, bullet.png and jump.wav, land.wav, shoot.wav.
Missing files are replaced by coloured rectangles and generated beeps.

Controls:
  Left/Right, A/D      - Run
  Space/Up/W           - Jump
  Left Shift/X         - Shoot
  P                    - Pause
  R                    - Restart (paused or after the run)
  Esc/Q                - Quit

After a death the window closes on its own.

Examples:
  tilejump window
  tilejump window 02-tower --assets ./assets --scale 2
  tilejump window --map ./levels/castle.tmx --mute`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func init() {
	addGameFlags(windowCmd, true)
	windowCmd.Flags().StringVar(&flagAssets, "assets", "", "Directory with png sprites and wav sounds")
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size multiplier")
	windowCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runWindow(_ *cobra.Command, args []string) {
	logger, closeLog := newLogger(false)
	defer closeLog()

	lvl, err := configureGame(args)
	if err != nil {
		fatal(logger, "cannot load level", "error", err)
	}
	logLevelLoaded(logger, lvl)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	err = window.Run(platformer.New(), window.Options{
		Scale:    flagScale,
		TickRate: flagFPS,
		AssetDir: flagAssets,
		Muted:    flagMute,
		Store:    store,
		Logger:   logger,
	})
	if err != nil {
		fatal(logger, "error running game", "error", err)
	}
}
