// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// GlorpConfig contains all tunables of the game.
type GlorpConfig struct {
	Movement   MovementConfig   `yaml:"movement"`
	Explosion  ExplosionConfig  `yaml:"explosion"`
	Power      PowerConfig      `yaml:"power"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MovementConfig defines step timing and command distances.
type MovementConfig struct {
	StepTime            float64 `yaml:"step_time"`
	PlatformStepTime    float64 `yaml:"platform_step_time"`
	ForwardDistance     int     `yaml:"forward_distance"`
	JumpUpHeight        int     `yaml:"jump_up_height"`
	JumpUpForward       int     `yaml:"jump_up_forward"`
	JumpForwardDistance int     `yaml:"jump_forward_distance"`
	ArcHeight           float64 `yaml:"arc_height"`
	MaxFall             int     `yaml:"max_fall"`
}

// ExplosionConfig defines chain reaction timing.
type ExplosionConfig struct {
	AnimationDuration float64 `yaml:"animation_duration"`
	Delay             float64 `yaml:"delay"`
	GlorpChance       float64 `yaml:"glorp_chance"`
	LockMovement      bool    `yaml:"lock_movement"`
}

// PowerConfig defines the energy pool.
type PowerConfig struct {
	Initial   int        `yaml:"initial"`
	Unlimited bool       `yaml:"unlimited"`
	Costs     CostConfig `yaml:"costs"`
}

// CostConfig is the power price of each command.
type CostConfig struct {
	Forward     int `yaml:"forward"`
	Turn        int `yaml:"turn"`
	JumpUp      int `yaml:"jump_up"`
	JumpForward int `yaml:"jump_forward"`
	Explode     int `yaml:"explode"`
	Zap         int `yaml:"zap"`
}

// ScoringConfig defines level score parameters.
type ScoringConfig struct {
	BaseTimePoints int `yaml:"base_time_points"`
	PointsPerGlorp int `yaml:"points_per_glorp"`
}

// DifficultyConfig scales the power pool as the campaign advances.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines when difficulty peaks.
type ProgressionConfig struct {
	MaxAt int `yaml:"max_at"` // Level index at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	PowerReduction int `yaml:"power_reduction"` // Power removed at max difficulty
}

// Validate checks ranges and returns an error wrapping ErrInvalid.
func (c GlorpConfig) Validate() error {
	m, e, p := c.Movement, c.Explosion, c.Power
	switch {
	case m.StepTime < 0 || m.PlatformStepTime < 0:
		return fmt.Errorf("%w: movement step times must not be negative", ErrInvalid)
	case m.ForwardDistance < 1:
		return fmt.Errorf("%w: movement.forward_distance must be at least 1", ErrInvalid)
	case m.JumpUpHeight < 1:
		return fmt.Errorf("%w: movement.jump_up_height must be at least 1", ErrInvalid)
	case m.JumpUpForward < 0:
		return fmt.Errorf("%w: movement.jump_up_forward must not be negative", ErrInvalid)
	case m.JumpForwardDistance < 3:
		return fmt.Errorf("%w: movement.jump_forward_distance must be at least 3, got %d", ErrInvalid, m.JumpForwardDistance)
	case m.ArcHeight < 0:
		return fmt.Errorf("%w: movement.arc_height must not be negative", ErrInvalid)
	case m.MaxFall < 1:
		return fmt.Errorf("%w: movement.max_fall must be at least 1", ErrInvalid)
	case e.AnimationDuration < 0 || e.Delay < 0:
		return fmt.Errorf("%w: explosion timings must not be negative", ErrInvalid)
	case e.GlorpChance < 0 || e.GlorpChance > 1:
		return fmt.Errorf("%w: explosion.glorp_chance must be within [0, 1], got %v", ErrInvalid, e.GlorpChance)
	case p.Initial < 0:
		return fmt.Errorf("%w: power.initial must not be negative", ErrInvalid)
	case p.Costs.Forward < 0 || p.Costs.Turn < 0 || p.Costs.JumpUp < 0 ||
		p.Costs.JumpForward < 0 || p.Costs.Explode < 0 || p.Costs.Zap < 0:
		return fmt.Errorf("%w: power costs must not be negative", ErrInvalid)
	case c.Scoring.BaseTimePoints < 0 || c.Scoring.PointsPerGlorp < 0:
		return fmt.Errorf("%w: scoring values must not be negative", ErrInvalid)
	case c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1:
		return fmt.Errorf("%w: difficulty.initial_level must be within [0, 1]", ErrInvalid)
	}
	return nil
}
