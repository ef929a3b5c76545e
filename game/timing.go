package game

import (
	"time"

	"github.com/plus3/spaceshooter/ecs"
)

// timerUnits is how far frame-counted timers advance this tick.
func timerUnits(cfg *Config, frame *ecs.UpdateFrame) float64 {
	if cfg.Timing == TimingDelta {
		return frame.DeltaTime * cfg.TickRate
	}
	return 1
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func clamp(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}

// sign returns -1, 0 or 1.
func sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
