package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-glorp/internal/config"
	"github.com/vovakirdan/tui-glorp/internal/platform/tui"
	"github.com/vovakirdan/tui-glorp/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode and level picker",
	Long: `Start in interactive menu mode.

Pick a mode with Up/Down, change difficulty with Left/Right and press
Enter to choose a starting level. Finishing or leaving a game returns
to the menu. Tab opens the scoreboard.

Examples:
  glorp menu
  glorp menu --fps 30 --sound
  glorp menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger := newLogger(true)

	cfg, err := loadGameConfig(flagConfig, "")
	if err != nil {
		return err
	}
	lvls, err := loadLevels(flagPlayLevels)
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

	base := registry.Options{Config: &cfg, Levels: lvls, Logger: logger}
	rt := terminalConfig()

	for {
		sel, err := tui.RunMenu(svc.Store, lvls, rt)
		if err != nil {
			return err
		}
		rt = sel.Config

		if sel.Quit {
			return nil
		}

		if sel.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(svc.Store, lvls, rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		// --difficulty overrides whatever the menu cycled to
		if flagDifficulty != "" {
			if sel.Difficulty, err = config.ParsePreset(flagDifficulty); err != nil {
				return err
			}
		}

		game, err := tui.Launch(sel, base)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if flagSeed == 0 {
			rt.Seed = time.Now().UnixNano()
		}
		back, err := tui.Run(game, svc, rt)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}
	}
}
