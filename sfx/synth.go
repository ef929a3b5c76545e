package sfx

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

type waveform func(phase float64) float64

func sineWave(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

func squareWave(phase float64) float64 {
	if phase < 0.5 {
		return 1
	}
	return -1
}

// sweep glides linearly from one frequency to another.
type sweep struct {
	from, to float64
	wave     waveform
	total    int
	pos      int
	phase    float64
}

func newSweep(from, to float64, d time.Duration, wave waveform) *sweep {
	return &sweep{from: from, to: to, wave: wave, total: sampleRate.N(d)}
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if s.pos >= s.total {
			break
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*progress
		v := s.wave(s.phase)
		samples[i][0], samples[i][1] = v, v

		s.phase += freq / float64(sampleRate)
		s.phase -= math.Floor(s.phase)
		s.pos++
		n++
	}
	return n, true
}

func (s *sweep) Err() error { return nil }

// noise is white noise from a seeded source, so effects are reproducible.
type noise struct {
	rng   *rand.Rand
	total int
	pos   int
}

func newNoise(d time.Duration, seed uint64) *noise {
	return &noise{rng: rand.New(rand.NewPCG(seed, seed+1)), total: sampleRate.N(d)}
}

func (s *noise) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.total {
		return 0, false
	}
	n := 0
	for i := range samples {
		if s.pos >= s.total {
			break
		}
		v := s.rng.Float64()*2 - 1
		samples[i][0], samples[i][1] = v, v
		s.pos++
		n++
	}
	return n, true
}

func (s *noise) Err() error { return nil }

// decayEnvelope fades its source linearly to silence over its length.
type decayEnvelope struct {
	src   beep.Streamer
	total int
	pos   int
}

func decay(src beep.Streamer, d time.Duration) beep.Streamer {
	return &decayEnvelope{src: src, total: sampleRate.N(d)}
}

func (e *decayEnvelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.src.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1 - float64(e.pos)/float64(e.total)
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *decayEnvelope) Err() error { return e.src.Err() }
