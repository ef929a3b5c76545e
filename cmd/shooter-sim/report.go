package main

import (
	"io"
	"runtime"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/game"
)

type Report struct {
	// Configuration
	SimulatedTime time.Duration
	TickRate      int
	Seed          uint64
	Timing        game.TimingMode

	// Gameplay
	Ticks       int
	GamesPlayed int
	Shots       int
	Spawned     int
	Kills       int
	Deaths      int
	BestScore   int
	FinalPhase  game.Phase

	// Registry
	Storage   *ecs.StorageStats
	Scheduler *ecs.SchedulerStats

	// Performance
	WallTime      time.Duration
	StepTime      Stats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// record folds one step's events into the gameplay counters.
func (r *Report) record(events []game.Event) {
	for _, e := range events {
		switch e.Kind {
		case game.EventShot:
			r.Shots++
		case game.EventEnemySpawned:
			r.Spawned++
		case game.EventEnemyKilled:
			r.Kills++
			r.BestScore = max(r.BestScore, e.Score)
		case game.EventPlayerKilled:
			r.Deaths++
		}
	}
}

const reportTemplate = `
# Shooter Simulation Report

## Configuration
- **Simulated Time:** {{.SimulatedTime}} ({{.Ticks}} ticks at {{.TickRate}}/s)
- **Seed:** {{.Seed}}
- **Timing:** {{.Timing}}

## Gameplay
- **Games Played:** {{.GamesPlayed}}
- **Shots Fired:** {{.Shots}}
- **Enemies Spawned:** {{.Spawned}}
- **Enemies Killed:** {{.Kills}} ({{pct .Kills .Spawned}} of spawned)
- **Player Deaths:** {{.Deaths}}
- **Best Score:** {{.BestScore}}
- **Final Phase:** {{.FinalPhase}}

## Registry
- **Entities:** {{.Storage.TotalEntityCount}} in {{.Storage.ArchetypeCount}} archetypes
{{- range .Storage.ArchetypeBreakdown}}
  - {{join .ComponentTypes}}: {{.EntityCount}}
{{- end}}
- **Singletons:** {{join .Storage.SingletonTypes}}

## Systems ({{.Scheduler.Frames}} frames)
| System | Runs | Skips | Avg | Max |
|---|---|---|---|---|
{{- range .Scheduler.Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.SkipCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{- end}}

## Performance
- **Wall Time:** {{.WallTime}}
- **Step Time:** avg {{.StepTime.Avg}}, min {{.StepTime.Min}}, max {{.StepTime.Max}}
- **Heap Alloc:** {{.MemStatsStart.HeapAlloc}} -> {{.MemStatsEnd.HeapAlloc}} (delta {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}})
- **Num GC:** {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

var reportFuncs = template.FuncMap{
	"bsub": func(a, b uint64) int64 {
		return int64(a) - int64(b)
	},
	"usub": func(a, b uint32) uint32 {
		return a - b
	},
	"pct": func(n, of int) string {
		if of == 0 {
			return "n/a"
		}
		return strconv.FormatFloat(100*float64(n)/float64(of), 'f', 1, 64) + "%"
	},
	"join": func(items []string) string {
		return strings.Join(items, ", ")
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
