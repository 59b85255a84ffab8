// tilejump is a side-scrolling tile platformer for the terminal and the desktop.
//
// Usage:
//
//	tilejump play [level]     - Play a level in the terminal
//	tilejump menu             - Pick levels from a menu in the terminal
//	tilejump window [level]   - Play a level in a desktop window
//	tilejump levels           - List available levels
//	tilejump scores [level]   - Show the best runs of a level
//	tilejump serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed
//	--db <path>          - Set database path (default: ~/.tilejump/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tilejump/internal/config"
	"github.com/vovakirdan/tilejump/internal/level"
	"github.com/vovakirdan/tilejump/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilejump",
	Short: "Tile Jump - a tile platformer for the terminal and the desktop",
	Long: `Tile Jump is a side-scrolling platformer. Run and jump across tile maps,
shoot the patrolling enemies and clear the level without touching them
or falling off the map.

Available commands:
  play     - Play a level in the terminal
  menu     - Interactive level picker in the terminal
  window   - Play a level in a desktop window
  levels   - Show all available levels
  scores   - View the best runs of a level
  serve    - Start SSH server for remote play

Examples:
  tilejump play
  tilejump play 02-tower --difficulty hard
  tilejump window --map ./my-level.tmx --scale 2
  tilejump serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tilejump/scores.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// newLogger creates the command logger. Terminal UIs own stdout and stderr,
// so they log to ~/.tilejump/tilejump.log instead.
func newLogger(toFile bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "tilejump",
		Level:           level,
	}

	if toFile {
		if dir := config.UserDir(); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err == nil {
				path := filepath.Join(dir, "tilejump.log")
				f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err == nil {
					return log.NewWithOptions(f, opts), func() { f.Close() }
				}
			}
		}
	}
	return log.NewWithOptions(os.Stderr, opts), func() {}
}

// openStore opens the runs database. Games still work without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// stderrLogger is used for errors that must reach the user after a
// terminal UI has closed.
func stderrLogger() *log.Logger {
	logger, _ := newLogger(false)
	return logger
}

func logLevelLoaded(logger *log.Logger, lvl level.Level) {
	logger.Info("level loaded",
		"level", lvl.ID,
		"cols", lvl.Map.Cols,
		"rows", lvl.Map.Rows,
		"enemies", lvl.EnemyCount(),
		"file", lvl.FilePath,
	)
}

func fatal(logger *log.Logger, msg string, keyvals ...any) {
	logger.Error(msg, keyvals...)
	os.Exit(1)
}
