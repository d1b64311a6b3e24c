package config

import (
	_ "embed"
)

//go:embed defaults/glorp.yaml
var defaultGlorpYAML []byte

// Default returns the hard-coded configuration, identical to the embedded
// defaults/glorp.yaml.
func Default() GlorpConfig {
	return GlorpConfig{
		Movement: MovementConfig{
			StepTime:            0.12,
			PlatformStepTime:    0.2,
			ForwardDistance:     1,
			JumpUpHeight:        3,
			JumpUpForward:       1,
			JumpForwardDistance: 3,
			ArcHeight:           0.5,
			MaxFall:             64,
		},
		Explosion: ExplosionConfig{
			AnimationDuration: 1.8,
			Delay:             0.2,
			GlorpChance:       0.1,
			LockMovement:      true,
		},
		Power: PowerConfig{
			Initial: 100,
			Costs: CostConfig{
				Forward:     1,
				Turn:        0,
				JumpUp:      3,
				JumpForward: 4,
				Explode:     10,
				Zap:         5,
			},
		},
		Scoring: ScoringConfig{
			BaseTimePoints: 100,
			PointsPerGlorp: 50,
		},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{MaxAt: 5},
			Scaling:     ScalingConfig{PowerReduction: 40},
		},
	}
}
