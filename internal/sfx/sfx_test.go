package sfx

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-glorp/internal/core"
)

func TestPlayerWithoutDevice(t *testing.T) {
	p := NewPlayer()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("sound operations panicked without initialization: %v", r)
		}
	}()

	p.Play(core.EventExplosion)
	p.PlayEvents([]core.Event{{Kind: core.EventStep}, {Kind: core.EventStep}, {Kind: core.EventGlorp}})
	p.SetMuted(true)
	if !p.Muted() {
		t.Error("Muted() = false, expected true")
	}
	p.Close()
}

func TestSoundStreamerLength(t *testing.T) {
	s := Sound{From: 440, To: 880, Duration: 100 * time.Millisecond, Volume: 0.2, Noise: 0.5}
	st := s.Streamer(sampleRate)

	want := sampleRate.N(100 * time.Millisecond)
	buf := make([][2]float64, 512)
	got := 0
	for {
		n, ok := st.Stream(buf)
		for i := 0; i < n; i++ {
			v := buf[i][0]
			if math.IsNaN(v) || math.Abs(v) > s.Volume+1e-9 {
				t.Fatalf("sample %d = %v out of range", got+i, v)
			}
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d not mono", got+i)
			}
		}
		got += n
		if !ok || n == 0 {
			break
		}
	}
	if got != want {
		t.Errorf("streamed %d samples, expected %d", got, want)
	}
}

func TestEverySoundIsAudible(t *testing.T) {
	for kind, s := range Sounds {
		if s.Duration <= 0 || s.Volume <= 0 {
			t.Errorf("%v: silent sound %+v", kind, s)
		}
		if s.Noise < 0 || s.Noise > 1 {
			t.Errorf("%v: noise %v outside [0,1]", kind, s.Noise)
		}
	}
	if _, ok := Sounds[core.EventTurn]; ok {
		t.Error("turning should stay silent")
	}
}
