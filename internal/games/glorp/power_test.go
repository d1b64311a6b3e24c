package glorp

import "testing"

func TestPowerPool(t *testing.T) {
	p := NewPower(10, false)

	if !p.HasEnoughPower(10) {
		t.Error("HasEnoughPower(10) = false, expected true")
	}
	if p.HasEnoughPower(11) {
		t.Error("HasEnoughPower(11) = true, expected false")
	}

	p.DecreasePower(4)
	if p.Left() != 6 {
		t.Errorf("Left() = %d, expected 6", p.Left())
	}
	p.DecreasePower(100)
	if p.Left() != 0 {
		t.Errorf("Left() = %d, expected 0", p.Left())
	}
	if p.Initial() != 10 {
		t.Errorf("Initial() = %d, expected 10", p.Initial())
	}
}

func TestPowerUnlimited(t *testing.T) {
	p := NewPower(0, true)
	if !p.HasEnoughPower(1000) {
		t.Error("unlimited pool refused a cost")
	}
	p.DecreasePower(5)
	if p.Left() != 0 {
		t.Errorf("Left() = %d, expected 0", p.Left())
	}
}

func TestLevelScore(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		power   int
		glorps  int
		want    int
	}{
		{"fast", 0.2, 0, 0, 100},
		{"ten seconds", 10, 80, 0, 90},
		{"with glorps", 4, 50, 2, 25 + 50 + 100},
		{"rounds", 3, 0, 0, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LevelScore(100, tt.seconds, tt.power, tt.glorps, 50)
			if got != tt.want {
				t.Errorf("LevelScore() = %d, expected %d", got, tt.want)
			}
		})
	}
}
