// glorp is a tile-grid puzzle platformer for the terminal.
//
// Usage:
//
//	glorp list                    - List game modes
//	glorp levels                  - List campaign levels
//	glorp play [game]             - Play a mode directly
//	glorp menu                    - Pick mode, difficulty and level interactively
//	glorp scores [game|level]     - Show high scores
//	glorp serve                   - Start SSH server for remote play
//	glorp replay <level> <script> - Run a command script headlessly
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible explosions
//	--db <path>         - Set database path (default: ~/.glorp/scores.db)
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-glorp/internal/config"
	"github.com/vovakirdan/tui-glorp/internal/levels"
	"github.com/vovakirdan/tui-glorp/internal/storage"

	// Register game modes
	_ "github.com/vovakirdan/tui-glorp/internal/games/glorp"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

// logOut is the log destination opened by the root command.
var logOut io.WriteCloser

func main() {
	err := rootCmd.Execute()
	if logOut != nil {
		logOut.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "glorp",
	Short: "Glorp - a tile puzzle platformer in your terminal",
	Long: `Glorp is a turn-by-command puzzle platformer. Walk, turn, jump and
blow up crumbling blocks to reach the exit of each level before your power
runs out.

Available commands:
  list     - Show game modes
  levels   - Show campaign levels
  play     - Play a mode directly
  menu     - Interactive mode, difficulty and level picker
  scores   - View high scores
  serve    - Start SSH server for remote play
  replay   - Run a command script without a terminal UI

Examples:
  glorp menu
  glorp play --level lift --difficulty easy
  glorp play glorp_zen
  glorp replay first-steps forward,forward,jumpup
  glorp serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		if flagLogFile != "" {
			f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("cannot open log file: %w", err)
			}
			logOut = f
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.glorp/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replayCmd)
}

// newLogger builds the shared logger. Full-screen commands pass
// fullscreen=true so stray stderr output cannot tear the UI; they only
// log when --log-file is set.
func newLogger(fullscreen bool) *log.Logger {
	var w io.Writer = os.Stderr
	switch {
	case logOut != nil:
		w = logOut
	case fullscreen:
		w = io.Discard
	}
	level, _ := log.ParseLevel(flagLogLevel)
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

// loadGameConfig loads the YAML config and applies a difficulty preset on top.
func loadGameConfig(path, difficulty string) (config.GlorpConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.GlorpConfig{}, err
	}
	if difficulty != "" {
		preset, err := config.ParsePreset(difficulty)
		if err != nil {
			return config.GlorpConfig{}, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// loadLevels reads levels from dir, or the built-in campaign when dir is empty.
func loadLevels(dir string) ([]levels.Level, error) {
	lvls, err := levels.Open(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(lvls) == 0 {
		return nil, fmt.Errorf("no levels found in %q", dir)
	}
	return lvls, nil
}

// openStore opens the scores database, continuing without one on failure.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
