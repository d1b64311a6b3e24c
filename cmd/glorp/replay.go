package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-glorp/internal/core"
	"github.com/vovakirdan/tui-glorp/internal/games/glorp"
	"github.com/vovakirdan/tui-glorp/internal/levels"
	"github.com/vovakirdan/tui-glorp/internal/platform/tui"
	"github.com/vovakirdan/tui-glorp/internal/registry"
)

var (
	flagReplayLevels string
	flagReplayConfig string
	flagReplayEvents bool
	flagReplayZen    bool
	flagReplayColor  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <level> <script>",
	Short: "Run a command script against a level without a UI",
	Long: `Load a level, feed it a script of actions and print where the player
ended up. Each action waits for the world to come to rest first, so the
result does not depend on timing.

Actions: forward, turn, jumpup, jumpforward, explode, zap, restart.
Separate them with commas or spaces.

Examples:
  glorp replay first-steps forward,forward,forward,forward,jumpup
  glorp replay boom "explode forward forward" --events
  glorp replay my-level turn,forward --levels-dir ./my-levels`,
	Args: cobra.ExactArgs(2),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayLevels, "levels-dir", "", "Directory of level YAML files")
	replayCmd.Flags().StringVar(&flagReplayConfig, "config", "", "Path to custom game config YAML")
	replayCmd.Flags().BoolVar(&flagReplayEvents, "events", false, "Print every event")
	replayCmd.Flags().BoolVar(&flagReplayZen, "zen", false, "Unlimited power")
	replayCmd.Flags().BoolVar(&flagReplayColor, "color", false, "Print the final frame in color")
}

func runReplay(_ *cobra.Command, args []string) error {
	levelID, script := args[0], args[1]
	logger := newLogger(false)

	actions, err := glorp.ParseScript(script)
	if err != nil {
		return err
	}
	cfg, err := loadGameConfig(flagReplayConfig, "")
	if err != nil {
		return err
	}
	lvls, err := loadLevels(flagReplayLevels)
	if err != nil {
		return err
	}
	idx := levels.Index(lvls, levelID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", levels.ErrLevelNotFound, levelID)
	}

	opts := registry.Options{
		Config:     &cfg,
		Levels:     lvls[idx : idx+1],
		StartLevel: levelID,
		Logger:     logger,
	}
	g := glorp.New(opts)
	if flagReplayZen {
		g = glorp.NewZen(opts)
	}
	rt := core.DefaultConfig()
	rt.TickRate = flagFPS
	rt.Seed = flagSeed
	g.Reset(rt)

	lvl := lvls[idx]
	screen := core.NewScreen(max(lvl.Width*2+4, 72), lvl.Height+6)

	events := g.RunScript(actions, glorp.DefaultSettleTicks)

	if flagReplayEvents {
		for _, e := range events {
			fmt.Printf("  %-16s %s %d\n", e.Kind, e.Level, e.Value)
		}
		fmt.Println()
	}

	st := g.State()
	var result string
	switch {
	case st.GameOver && st.Won:
		result = fmt.Sprintf("cleared, score %d", st.Score)
	case countEvents(events, core.EventLevelFailed) > 0:
		result = fmt.Sprintf("failed %d time(s)", countEvents(events, core.EventLevelFailed))
	default:
		result = "in progress"
	}

	fmt.Printf("Level:   %s (%s)\n", lvl.ID, lvl.Name)
	fmt.Printf("Actions: %d\n", len(actions))
	fmt.Printf("Result:  %s\n", result)
	if w := g.World(); w != nil && !st.GameOver {
		fmt.Printf("Cell:    %s\n", w.PlayerCell())
		fmt.Printf("Facing:  %s\n", w.Player().Facing())
	}
	if p := g.Power(); p.Unlimited() {
		fmt.Println("Power:   unlimited")
	} else {
		fmt.Printf("Power:   %d/%d\n", p.Left(), p.Initial())
	}
	fmt.Printf("Glorps:  %d\n", g.Glorps())
	fmt.Println()

	g.Render(screen)
	if flagReplayColor {
		fmt.Println(tui.RenderScreen(screen))
		return nil
	}
	fmt.Println(strings.TrimRight(screen.String(), "\n "))
	return nil
}

func countEvents(events []core.Event, kind core.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
