// Command shooter-sim runs the shooter headless with a scripted pilot and prints a
// report of the gameplay and registry statistics.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/spaceshooter/game"
)

// simClock advances by exactly one tick per step so the weapon cooldown sees simulated
// time rather than wall time.
type simClock struct {
	now time.Time
}

func (c *simClock) Now() time.Time { return c.now }

func simulate(cfg game.Config, ticks, tickRate int, logger *log.Logger) (*Report, error) {
	clock := &simClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	g, err := game.New(cfg,
		game.WithClock(clock),
		game.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	report := &Report{
		SimulatedTime: time.Duration(ticks) * time.Second / time.Duration(tickRate),
		TickRate:      tickRate,
		Seed:          cfg.Seed,
		Timing:        cfg.Timing,
		Ticks:         ticks,
		StepTime:      Stats{Samples: make([]time.Duration, 0, ticks)},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	dt := 1 / float64(tickRate)
	step := time.Second / time.Duration(tickRate)
	p := &pilot{}
	start := time.Now()

	for i := 0; i < ticks; i++ {
		clock.now = clock.now.Add(step)
		in := p.input(g.Phase(), g.Scene())

		stepStart := time.Now()
		g.Step(dt, in)
		report.StepTime.Samples = append(report.StepTime.Samples, time.Since(stepStart))

		report.record(g.Events())
	}

	report.WallTime = time.Since(start)
	report.StepTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.GamesPlayed = g.GamesPlayed()
	report.FinalPhase = g.Phase()
	report.Storage = g.Storage().CollectStats()
	report.Scheduler = g.Scheduler().GetStats()
	return report, nil
}

func main() {
	duration := flag.Duration("duration", 2*time.Minute, "simulated play time")
	tickRate := flag.Int("fps", 60, "simulated ticks per second")
	configPath := flag.String("config", "", "YAML config file overlaid on the defaults")
	seed := flag.Uint64("seed", 1, "enemy spawn seed")
	timing := flag.String("timing", "", `timer mode, "tick" or "delta"`)
	verbose := flag.Bool("v", false, "log game diagnostics")
	flag.Parse()

	cfg := game.DefaultConfig()
	if *configPath != "" {
		loaded, err := game.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}
	cfg.Seed = *seed
	if *timing != "" {
		mode, err := game.ParseTimingMode(*timing)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg.Timing = mode
	}
	if *tickRate <= 0 {
		log.Fatalf("fps must be positive, got %d", *tickRate)
	}

	logger := log.New(io.Discard, "", 0)
	if *verbose {
		logger = log.Default()
	}

	ticks := int(duration.Seconds() * float64(*tickRate))
	log.Printf("simulating %s (%d ticks)...", *duration, ticks)

	report, err := simulate(cfg, ticks, *tickRate, logger)
	if err != nil {
		log.Fatalf("game: %v", err)
	}

	fmt.Println("\n--- Simulation Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
