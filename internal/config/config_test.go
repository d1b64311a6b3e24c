package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(defaultGlorpYAML)
	if err != nil {
		t.Fatalf("embedded defaults invalid: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults differ from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("explosion:\n  glorp_chance: 0.5\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Explosion.GlorpChance != 0.5 {
		t.Errorf("GlorpChance = %v, expected 0.5", cfg.Explosion.GlorpChance)
	}
	if cfg.Movement.StepTime != 0.12 || cfg.Power.Initial != 100 {
		t.Error("unspecified keys should keep their defaults")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GlorpConfig)
	}{
		{"short jump", func(c *GlorpConfig) { c.Movement.JumpForwardDistance = 2 }},
		{"zero forward", func(c *GlorpConfig) { c.Movement.ForwardDistance = 0 }},
		{"negative step time", func(c *GlorpConfig) { c.Movement.StepTime = -1 }},
		{"chance above one", func(c *GlorpConfig) { c.Explosion.GlorpChance = 1.5 }},
		{"negative cost", func(c *GlorpConfig) { c.Power.Costs.Zap = -1 }},
		{"negative power", func(c *GlorpConfig) { c.Power.Initial = -5 }},
		{"no fall budget", func(c *GlorpConfig) { c.Movement.MaxFall = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glorp.yaml")
	if err := os.WriteFile(path, []byte("power:\n  initial: 42\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Power.Initial != 42 {
		t.Errorf("Initial = %d, expected 42", cfg.Power.Initial)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("movement:\n  jump_forward_distance: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load(bad) = %v, expected ErrInvalid", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg != Default() {
		t.Error("marshalled config did not survive a round trip")
	}
}

func TestPresets(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %v, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrInvalid) {
		t.Errorf("unknown preset error = %v", err)
	}

	cfg := Default()
	ApplyPreset(&cfg, DifficultyZen)
	if !cfg.Power.Unlimited {
		t.Error("zen should make power unlimited")
	}

	cfg = Default()
	ApplyPreset(&cfg, DifficultyHard)
	if cfg.Power.Initial >= Default().Power.Initial || !cfg.Difficulty.Enabled {
		t.Error("hard should shrink the power pool and enable scaling")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("hard preset invalid: %v", err)
	}
}

func TestDifficultyManager(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{MaxAt: 4},
		Scaling:     ScalingConfig{PowerReduction: 40},
	})

	if got := d.Level(0); got != 0 {
		t.Errorf("Level(0) = %v, expected 0", got)
	}
	if got := d.Level(2); got != 0.5 {
		t.Errorf("Level(2) = %v, expected 0.5", got)
	}
	if got := d.Level(10); got != 1 {
		t.Errorf("Level(10) = %v, expected 1", got)
	}
	if got := d.Power(100, 2); got != 80 {
		t.Errorf("Power(100, 2) = %d, expected 80", got)
	}
	if got := d.Power(40, 4); got != 10 {
		t.Errorf("Power(40, 4) = %d, expected floor of 10", got)
	}

	off := NewDifficultyManager(DifficultyConfig{Scaling: ScalingConfig{PowerReduction: 40}})
	if got := off.Power(100, 9); got != 100 {
		t.Errorf("disabled Power = %d, expected 100", got)
	}
}
