package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-glorp/internal/core"
	"github.com/vovakirdan/tui-glorp/internal/levels"
	"github.com/vovakirdan/tui-glorp/internal/platform/tui"
	"github.com/vovakirdan/tui-glorp/internal/registry"
	"github.com/vovakirdan/tui-glorp/internal/sfx"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagPlayLevels string
	flagSound      bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game mode",
	Long: `Start playing. The mode defaults to the campaign ("glorp").

Controls:
  F/Space/Right  - Walk forward
  T/Tab/Left     - Turn around
  W/Up           - Jump up (then one step forward)
  E              - Leap forward
  X              - Explode the block ahead
  Z              - Ride the platform underfoot
  P              - Pause
  R              - Restart level
  M              - Mute sound
  Ctrl+Y         - Copy frame to clipboard
  Ctrl+S         - Save screenshot
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - More power, more glorps from explosions
  normal - Power budget shrinks slowly through the campaign
  hard   - Tight power budget, pricier explosions
  zen    - Unlimited power

Examples:
  glorp play
  glorp play glorp_zen
  glorp play --level boom --difficulty hard
  glorp play --levels-dir ./my-levels --sound
  glorp play --config ./my-glorp.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Start at this level ID")
}

// addGameFlags registers the flags shared by play and menu.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, zen")
	cmd.Flags().StringVar(&flagPlayLevels, "levels-dir", "", "Directory of level YAML files")
	cmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

// terminalConfig sizes the runtime config from the controlling terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openSound starts the audio device when --sound is set.
func openSound(logger *log.Logger) *sfx.Player {
	if !flagSound {
		return nil
	}
	p := sfx.NewPlayer()
	if err := p.Initialize(); err != nil {
		logger.Warn("sound disabled", "err", err)
		return nil
	}
	return p
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "glorp"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'glorp list' to see available modes", gameID)
	}

	logger := newLogger(true)

	cfg, err := loadGameConfig(flagConfig, flagDifficulty)
	if err != nil {
		return err
	}
	lvls, err := loadLevels(flagPlayLevels)
	if err != nil {
		return err
	}
	if flagLevel != "" && levels.Index(lvls, flagLevel) < 0 {
		return fmt.Errorf("%w: %q, run 'glorp levels' to see level IDs", levels.ErrLevelNotFound, flagLevel)
	}

	game, err := registry.Create(gameID, registry.Options{
		Config:     &cfg,
		Levels:     lvls,
		StartLevel: flagLevel,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	svc := tui.Services{
		Store:  openStore(logger),
		Sound:  openSound(logger),
		Logger: logger,
	}
	defer func() {
		if svc.Store != nil {
			svc.Store.Close()
		}
		if svc.Sound != nil {
			svc.Sound.Close()
		}
	}()

	if _, err := tui.Run(game, svc, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
