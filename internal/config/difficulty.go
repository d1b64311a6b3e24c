package config

import (
	"fmt"
	"math"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyZen    DifficultyPreset = "zen"
)

// Presets lists the presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyZen}

// ParsePreset resolves a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalid, s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GlorpConfig, preset DifficultyPreset) {
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	switch preset {
	case DifficultyEasy:
		cfg.Power.Initial = 150
		cfg.Explosion.GlorpChance = math.Min(1, cfg.Explosion.GlorpChance*2)
		cfg.Difficulty.Enabled = false
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
	case DifficultyHard:
		cfg.Power.Initial = 70
		cfg.Power.Costs.Explode += 5
		cfg.Difficulty.Enabled = true
	case DifficultyZen:
		cfg.Power.Unlimited = true
		cfg.Difficulty.Enabled = false
	}
}

// DifficultyManager scales the power budget with campaign progress.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// Level returns the difficulty (0.0 to 1.0) for a zero-based level index.
func (d *DifficultyManager) Level(levelIndex int) float64 {
	initial := clampF(d.cfg.InitialLevel, 0, 1)
	if !d.cfg.Enabled {
		return initial
	}
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(float64(levelIndex)/maxAt, 0, 1)
	return initial + progress*(1-initial)
}

// Power returns the starting power for a level.
func (d *DifficultyManager) Power(base, levelIndex int) int {
	if !d.cfg.Enabled {
		return base
	}
	reduction := int(d.Level(levelIndex) * float64(d.cfg.Scaling.PowerReduction))
	// Never below a quarter of the base budget.
	return max(base-reduction, base/4)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
