// Command spaceshooter-term plays the shooter in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/spaceshooter/game"
	"github.com/plus3/spaceshooter/internal/cli"
	"github.com/plus3/spaceshooter/sfx"
)

// pollEvents forwards screen events until the screen is finalized or done is closed.
// The returned channel is closed when forwarding stops.
func pollEvents(screen tcell.Screen, done <-chan struct{}, buffer int) <-chan tcell.Event {
	events := make(chan tcell.Event, buffer)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case <-done:
				return
			default:
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

func run(screen tcell.Screen, g *game.Game, keys *heldKeys, sound *sfx.Player, opts *cli.Options) {
	done := make(chan struct{})
	defer close(done)
	events := pollEvents(screen, done, 64)

	ticker := time.NewTicker(opts.FrameTime())
	defer ticker.Stop()
	dt := opts.DeltaSeconds()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return
				}
				keys.press(actionFor(ev), ev.When())
			case *tcell.EventMouse:
				col, row := ev.Position()
				cols, rows := screen.Size()
				keys.mouse(col, row, cols, rows, ev.Buttons()&tcell.Button1 != 0)
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			g.Step(dt, keys.input(now))
			sound.Handle(g.Events())
			if g.ExitRequested() {
				return
			}
			draw(screen, g.Scene())
		}
	}
}

func main() {
	var opts cli.Options
	opts.Register(flag.CommandLine)
	hold := flag.Duration("hold", 150*time.Millisecond, "how long a key counts as held after its last repeat")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	cfg, err := opts.Config()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// The terminal owns stdout and stderr while the game runs.
	logger := log.New(io.Discard, "", log.LstdFlags)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	g, err := game.New(cfg, game.WithLogger(logger))
	if err != nil {
		log.Fatalf("game: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("terminal: %v", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	sound := sfx.NewPlayer(opts.Volume)
	if opts.Sound {
		if err := sound.Init(); err != nil {
			logger.Printf("sound disabled: %v", err)
		}
	}

	run(screen, g, newHeldKeys(*hold), sound, &opts)

	sound.Close()
	screen.Fini()
	fmt.Printf("games played: %d, last score: %d\n", g.GamesPlayed(), g.Score())
}
