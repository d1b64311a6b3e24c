// Package sfx plays short synthesized sound effects for game events.
// Every method is a no-op until Initialize succeeds, so the game runs the
// same without an audio device.
package sfx

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-glorp/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Sound describes one effect: a tone that slides from From to To Hz with an
// exponential decay, optionally mixed with noise.
type Sound struct {
	From     float64
	To       float64
	Duration time.Duration
	Volume   float64
	Noise    float64
}

// Sounds maps game events to effects. Events without an entry are silent.
var Sounds = map[core.EventKind]Sound{
	core.EventStep:             {From: 220, To: 180, Duration: 40 * time.Millisecond, Volume: 0.08},
	core.EventBlocked:          {From: 110, To: 90, Duration: 120 * time.Millisecond, Volume: 0.15},
	core.EventRejected:         {From: 90, To: 90, Duration: 90 * time.Millisecond, Volume: 0.12},
	core.EventJump:             {From: 300, To: 660, Duration: 150 * time.Millisecond, Volume: 0.12},
	core.EventExplosion:        {From: 80, To: 40, Duration: 350 * time.Millisecond, Volume: 0.3, Noise: 0.6},
	core.EventGlorp:            {From: 880, To: 1320, Duration: 120 * time.Millisecond, Volume: 0.15},
	core.EventZap:              {From: 1200, To: 400, Duration: 200 * time.Millisecond, Volume: 0.12, Noise: 0.2},
	core.EventLevelComplete:    {From: 523, To: 1046, Duration: 400 * time.Millisecond, Volume: 0.2},
	core.EventLevelFailed:      {From: 400, To: 100, Duration: 400 * time.Millisecond, Volume: 0.2},
	core.EventCampaignComplete: {From: 523, To: 1568, Duration: 800 * time.Millisecond, Volume: 0.2},
}

// Player owns the speaker mixer.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewPlayer creates a player. Call Initialize to enable output.
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences everything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// SetMuted toggles output without releasing the device.
func (p *Player) SetMuted(m bool) {
	p.mu.Lock()
	p.muted = m
	p.mu.Unlock()
}

// Muted reports whether output is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Play queues the effect for kind.
func (p *Player) Play(kind core.EventKind) {
	s, ok := Sounds[kind]
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	speaker.Lock()
	p.mixer.Add(s.Streamer(sampleRate))
	speaker.Unlock()
}

// PlayEvents plays each distinct event kind of a tick once.
func (p *Player) PlayEvents(events []core.Event) {
	seen := make(map[core.EventKind]bool, len(events))
	for _, e := range events {
		if seen[e.Kind] {
			continue
		}
		seen[e.Kind] = true
		p.Play(e.Kind)
	}
}

// Streamer renders the sound at sr.
func (s Sound) Streamer(sr beep.SampleRate) beep.Streamer {
	return beep.Take(sr.N(s.Duration), &toneGenerator{sound: s, sr: sr, seed: 1})
}

type toneGenerator struct {
	sound Sound
	sr    beep.SampleRate
	pos   int
	phase float64
	seed  int64
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	total := float64(g.sr.N(g.sound.Duration))
	if total <= 0 {
		return 0, false
	}
	for i := range samples {
		progress := math.Min(float64(g.pos)/total, 1)
		freq := g.sound.From + (g.sound.To-g.sound.From)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		tone := math.Sin(g.phase)
		if g.sound.Noise > 0 {
			g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
			noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
			tone = tone*(1-g.sound.Noise) + noise*g.sound.Noise
		}

		sample := g.sound.Volume * math.Exp(-4*progress) * tone
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}
