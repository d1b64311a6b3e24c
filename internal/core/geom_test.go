package core

import "testing"

func TestRect(t *testing.T) {
	r := NewRect(10, 20, 30, 40)
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("edges = (%d, %d), expected (40, 60)", r.Right(), r.Bottom())
	}

	tests := []struct {
		x, y int
		want bool
	}{
		{10, 20, true},
		{39, 59, true},
		{40, 30, false},
		{15, 60, false},
		{9, 25, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestParseAction(t *testing.T) {
	for a := ActionUp; a <= ActionPause; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if got, ok := ParseAction("jumpforward"); !ok || got != ActionJumpForward {
		t.Errorf("ParseAction should ignore case, got %v", got)
	}
	if _, ok := ParseAction("dance"); ok {
		t.Error("unknown action parsed")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionForward)
	c := f.Clone()
	f.Clear()
	if f.Has(ActionForward) {
		t.Error("Clear should drop actions")
	}
	if !c.Has(ActionForward) {
		t.Error("Clone should be independent")
	}
	var zero InputFrame
	if zero.Has(ActionTurn) {
		t.Error("zero frame should have no actions")
	}
}

func TestStepResultHas(t *testing.T) {
	r := StepResult{Events: []Event{{Kind: EventStep}, {Kind: EventGlorp}}}
	if !r.Has(EventGlorp) || r.Has(EventZap) {
		t.Error("Has mismatch")
	}
}

func TestTickSeconds(t *testing.T) {
	if got := (RuntimeConfig{TickRate: 50}).TickSeconds(); got != 0.02 {
		t.Errorf("TickSeconds = %v, expected 0.02", got)
	}
	if got := (RuntimeConfig{}).TickSeconds(); got != 1.0/60 {
		t.Errorf("TickSeconds default = %v", got)
	}
}
