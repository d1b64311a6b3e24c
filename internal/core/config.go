package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// TickSeconds returns the simulated duration of one tick.
func (c RuntimeConfig) TickSeconds() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(c.TickRate)
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the run has ended
	Won      bool   // Whether the run ended by finishing every level
	Paused   bool   // Whether the game is paused
	Level    string // Current level ID
}

// EventKind classifies something that happened during a tick.
type EventKind int

const (
	EventStep EventKind = iota
	EventBlocked
	EventRejected
	EventTurn
	EventJump
	EventExplosion
	EventGlorp
	EventZap
	EventLevelComplete
	EventLevelFailed
	EventCampaignComplete
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventStep:
		return "step"
	case EventBlocked:
		return "blocked"
	case EventRejected:
		return "rejected"
	case EventTurn:
		return "turn"
	case EventJump:
		return "jump"
	case EventExplosion:
		return "explosion"
	case EventGlorp:
		return "glorp"
	case EventZap:
		return "zap"
	case EventLevelComplete:
		return "level_complete"
	case EventLevelFailed:
		return "level_failed"
	case EventCampaignComplete:
		return "campaign_complete"
	default:
		return "unknown"
	}
}

// Event is emitted by Game.Step for sound and persistence. Value carries a
// kind-specific number such as the score of a finished level.
type Event struct {
	Kind  EventKind
	Level string
	Value int
	Run   *RunStats // set on level complete and level failed
}

// RunStats summarizes one attempt at a level.
type RunStats struct {
	Completed bool
	Seconds   float64
	PowerLeft int
	Glorps    int
	Score     int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the result contains an event of the given kind.
func (r StepResult) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
