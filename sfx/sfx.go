// Package sfx synthesizes the shooter's sound effects and plays them for game events.
package sfx

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/spaceshooter/game"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes effect sounds onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewPlayer creates a player. volume is linear, 1 is full scale.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the audio device.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
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

// Handle plays the sound for each event that has one. It is a no-op before Init.
func (p *Player) Handle(events []game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	for _, e := range events {
		s := Sound(e.Kind)
		if s == nil {
			continue
		}
		speaker.Lock()
		p.mixer.Add(withVolume(s, p.volume))
		speaker.Unlock()
	}
}

// Sound builds a fresh streamer for kind, or nil if the event is silent.
func Sound(kind game.EventKind) beep.Streamer {
	switch kind {
	case game.EventShot:
		return withVolume(decay(newSweep(1400, 500, 90*time.Millisecond, squareWave), 90*time.Millisecond), 0.25)

	case game.EventEnemyKilled:
		return withVolume(decay(newNoise(220*time.Millisecond, 7), 220*time.Millisecond), 0.5)

	case game.EventPlayerKilled:
		return beep.Mix(
			withVolume(decay(newSweep(420, 50, 700*time.Millisecond, sineWave), 700*time.Millisecond), 0.6),
			withVolume(decay(newNoise(500*time.Millisecond, 13), 500*time.Millisecond), 0.4),
		)

	case game.EventPhaseChanged:
		return beep.Seq(blip(660, 60*time.Millisecond), blip(880, 90*time.Millisecond))

	default:
		return nil
	}
}

func blip(freq float64, d time.Duration) beep.Streamer {
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(sampleRate.N(d))
	}
	return withVolume(decay(beep.Take(sampleRate.N(d), tone), d), 0.3)
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
