// Package glorp implements the playable puzzle platformer on top of the
// world engine: command input gated by a power pool, tile overlap rules,
// level progression and scoring.
package glorp

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-glorp/internal/config"
	"github.com/vovakirdan/tui-glorp/internal/core"
	"github.com/vovakirdan/tui-glorp/internal/explosion"
	"github.com/vovakirdan/tui-glorp/internal/grid"
	"github.com/vovakirdan/tui-glorp/internal/levels"
	"github.com/vovakirdan/tui-glorp/internal/movement"
	"github.com/vovakirdan/tui-glorp/internal/registry"
	"github.com/vovakirdan/tui-glorp/internal/tilemap"
	"github.com/vovakirdan/tui-glorp/internal/world"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeZen      Mode = "zen"
)

// Seconds a level banner stays on screen.
const bannerDuration = 2.0

// Game is one run through the level list.
type Game struct {
	mode       Mode
	cfg        config.GlorpConfig
	levels     []levels.Level
	startLevel string
	log        *log.Logger
	difficulty *config.DifficultyManager
	rng        *rand.Rand

	world      *world.World
	levelIndex int
	power      Power
	glorps     int
	elapsed    float64
	score      int

	// Set by engine callbacks during a tick, resolved after the world update.
	completed bool
	failed    string

	events []core.Event
	tick   float64
	frame  uint64

	screenW    int
	screenH    int
	gameOver   bool
	won        bool
	paused     bool
	banner     string
	bannerLeft float64
}

// New creates a campaign game.
func New(opts registry.Options) *Game {
	return newGame(ModeCampaign, opts)
}

// NewZen creates a game with unlimited power.
func NewZen(opts registry.Options) *Game {
	return newGame(ModeZen, opts)
}

func newGame(mode Mode, opts registry.Options) *Game {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if mode == ModeZen {
		cfg.Power.Unlimited = true
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	lvls := opts.Levels
	if len(lvls) == 0 {
		var err error
		lvls, err = levels.Campaign().LoadAll()
		if err != nil {
			logger.Warn("cannot load campaign", "err", err)
		}
	}

	return &Game{
		mode:       mode,
		cfg:        cfg,
		levels:     lvls,
		startLevel: opts.StartLevel,
		log:        logger,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

func init() {
	registry.Register("glorp", "Glorp", func(opts registry.Options) registry.Game {
		return New(opts)
	})
	registry.Register("glorp_zen", "Glorp (Zen)", func(opts registry.Options) registry.Game {
		return NewZen(opts)
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeZen {
		return "glorp_zen"
	}
	return "glorp"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Glorp (Zen)"
	}
	return "Glorp"
}

// Reset starts the run over from the start level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = cfg.TickSeconds()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.score = 0
	g.frame = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.banner = ""
	g.bannerLeft = 0
	g.events = nil

	g.levelIndex = 0
	if g.startLevel != "" {
		if i := levels.Index(g.levels, g.startLevel); i >= 0 {
			g.levelIndex = i
		} else {
			g.log.Warn("unknown start level", "level", g.startLevel)
		}
	}
	g.loadLevel()
}

// loadLevel builds a fresh world for the current level index.
func (g *Game) loadLevel() {
	if g.world != nil {
		g.world.Destroy()
		g.world = nil
	}
	g.completed = false
	g.failed = ""
	g.glorps = 0
	g.elapsed = 0

	if g.levelIndex >= len(g.levels) {
		g.log.Warn("no level to load", "index", g.levelIndex, "levels", len(g.levels))
		g.gameOver = true
		return
	}
	lvl := g.levels[g.levelIndex]

	base := g.cfg.Power.Initial
	if lvl.Power > 0 {
		base = lvl.Power
	}
	g.power = NewPower(g.difficulty.Power(base, g.levelIndex), g.cfg.Power.Unlimited)

	g.world = world.New(lvl, world.Options{
		Movement:  g.cfg.Movement,
		Explosion: g.cfg.Explosion,
		Logger:    g.log,
		Rand:      g.rng,
	})
	player := g.world.Player()
	player.OnCellChanged(g.onPlayerCell)
	player.OnFinished(g.onPlayerFinished)
	g.world.Explosions().OnDetonate(g.onDetonate)

	g.log.Info("level start", "level", lvl.ID, "power", g.power.Left())
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil
	g.frame++

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver || g.world == nil {
		return g.result()
	}

	if in.Has(core.ActionRestart) {
		g.failLevel("restart")
		return g.result()
	}

	g.handleCommand(in)
	g.world.Update(g.tick)
	g.elapsed += g.tick
	if g.bannerLeft > 0 {
		g.bannerLeft -= g.tick
	}

	switch {
	case g.completed:
		g.completeLevel()
	case g.failed != "":
		g.failLevel(g.failed)
	}
	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// handleCommand issues at most one player command per tick.
func (g *Game) handleCommand(in core.InputFrame) {
	costs := g.cfg.Power.Costs
	w := g.world

	switch {
	case in.Has(core.ActionForward):
		g.try(costs.Forward, func() bool { return w.Forward(g.cfg.Movement.ForwardDistance) })
	case in.Has(core.ActionTurn):
		if g.try(costs.Turn, w.Turn) {
			g.emit(core.EventTurn, 0)
		}
	case in.Has(core.ActionJumpUp):
		if g.try(costs.JumpUp, w.JumpUp) {
			g.emit(core.EventJump, 0)
		}
	case in.Has(core.ActionJumpForward):
		if g.try(costs.JumpForward, w.JumpForward) {
			g.emit(core.EventJump, 0)
		}
	case in.Has(core.ActionExplode):
		g.try(costs.Explode, w.Explode)
	case in.Has(core.ActionZap):
		if g.try(costs.Zap, w.Zap) {
			g.emit(core.EventZap, 0)
		}
	}
}

// try runs a command if the pool can pay for it and charges only when the
// engine accepts it.
func (g *Game) try(cost int, run func() bool) bool {
	if !g.power.HasEnoughPower(cost) || !run() {
		g.emit(core.EventRejected, cost)
		return false
	}
	g.power.DecreasePower(cost)
	return true
}

func (g *Game) onPlayerCell(c grid.Cell) {
	g.emit(core.EventStep, 0)
	if g.world.OutOfBounds(c) {
		g.failed = "fell out of the level"
		return
	}
	switch g.world.TileAt(c) {
	case tilemap.Winning:
		g.completed = true
	case tilemap.Damage:
		g.failed = "touched a hazard"
	case tilemap.Glorp:
		g.glorps++
		g.world.Tiles().Clear(c)
		g.emit(core.EventGlorp, g.glorps)
	}
}

func (g *Game) onPlayerFinished(o movement.Outcome) {
	if o.Blocked {
		g.emit(core.EventBlocked, 0)
	}
	if o.FallCapped {
		g.failed = "fell out of the level"
	}
}

func (g *Game) onDetonate(d explosion.Detonation) {
	g.emit(core.EventExplosion, d.Depth)
}

func (g *Game) completeLevel() {
	lvl := g.world.Level()
	powerLeft := g.power.Left()
	if g.power.Unlimited() {
		powerLeft = 0
	}
	s := LevelScore(g.cfg.Scoring.BaseTimePoints, g.elapsed, powerLeft, g.glorps, g.cfg.Scoring.PointsPerGlorp)
	g.score += s

	g.events = append(g.events, core.Event{
		Kind:  core.EventLevelComplete,
		Level: lvl.ID,
		Value: s,
		Run: &core.RunStats{
			Completed: true,
			Seconds:   g.elapsed,
			PowerLeft: g.power.Left(),
			Glorps:    g.glorps,
			Score:     s,
		},
	})
	g.log.Info("level complete", "level", lvl.ID, "score", s, "seconds", g.elapsed, "glorps", g.glorps)

	g.levelIndex++
	if g.levelIndex >= len(g.levels) {
		g.gameOver = true
		g.won = true
		g.completed = false
		g.emit(core.EventCampaignComplete, g.score)
		g.setBanner(fmt.Sprintf("All levels cleared! Score %d", g.score))
		return
	}
	g.loadLevel()
	g.setBanner(fmt.Sprintf("%s cleared  +%d", lvl.Name, s))
}

func (g *Game) failLevel(reason string) {
	lvl := g.world.Level()
	g.events = append(g.events, core.Event{
		Kind:  core.EventLevelFailed,
		Level: lvl.ID,
		Run: &core.RunStats{
			Seconds:   g.elapsed,
			PowerLeft: g.power.Left(),
			Glorps:    g.glorps,
		},
	})
	g.log.Info("level failed", "level", lvl.ID, "reason", reason)
	g.loadLevel()
	g.setBanner("Try again: " + reason)
}

func (g *Game) setBanner(s string) {
	g.banner = s
	g.bannerLeft = bannerDuration
}

func (g *Game) emit(kind core.EventKind, value int) {
	e := core.Event{Kind: kind, Value: value}
	if g.world != nil {
		e.Level = g.world.Level().ID
	}
	g.events = append(g.events, e)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
	if g.world != nil {
		st.Level = g.world.Level().ID
	}
	return st
}

// Busy reports whether the player or an explosion is still resolving.
func (g *Game) Busy() bool {
	return g.world != nil && g.world.Busy()
}

// World returns the running level, or nil before Reset.
func (g *Game) World() *world.World { return g.world }

// Power returns the current level's power pool.
func (g *Game) Power() Power { return g.power }

// Glorps returns the glorps collected in the current level.
func (g *Game) Glorps() int { return g.glorps }

// LevelIndex returns the zero-based index of the current level.
func (g *Game) LevelIndex() int { return g.levelIndex }

// Levels returns the level list of the run.
func (g *Game) Levels() []levels.Level { return g.levels }
