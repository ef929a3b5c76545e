// Command spaceshooter is the windowed shooter, drawn with Ebiten.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/ecs/debugui"
	debugui_ebiten "github.com/plus3/spaceshooter/ecs/debugui/ebiten"
	"github.com/plus3/spaceshooter/game"
	"github.com/plus3/spaceshooter/internal/cli"
	"github.com/plus3/spaceshooter/sfx"
)

const title = "Space Shooter"

type shooter struct {
	game     *game.Game
	renderer *renderer
	sound    *sfx.Player
	dt       float64

	overlay *debugui_ebiten.ImguiBackend
	capture *ecs.Singleton[debugui.ImguiInputState]
}

func (s *shooter) Update() error {
	if quitPressed() || s.game.ExitRequested() {
		return ebiten.Termination
	}

	if s.overlay == nil {
		s.step(readInput(false, false))
		return nil
	}

	s.overlay.Frame(func() {
		state := s.capture.Get()
		s.step(readInput(state.WantCaptureMouse, state.WantCaptureKeyboard))
	})
	return nil
}

func (s *shooter) step(in game.Input) {
	s.game.Step(s.dt, in)
	s.sound.Handle(s.game.Events())
}

func (s *shooter) Draw(screen *ebiten.Image) {
	s.renderer.draw(screen, s.game.Scene())
	if s.overlay != nil {
		s.overlay.Overlay(screen)
	}
}

func (s *shooter) Layout(outsideWidth, outsideHeight int) (int, int) {
	if s.overlay != nil {
		s.overlay.Layout(game.ScreenWidth, game.ScreenHeight)
	}
	return game.ScreenWidth, game.ScreenHeight
}

// sessionWindow shows game state next to the generic debug windows.
func sessionWindow(g *game.Game) debugui.ImguiItem {
	return debugui.ImguiItem{
		Title: "Session",
		Render: func() {
			imgui.SetNextWindowPosV(imgui.NewVec2(980, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
			imgui.SetNextWindowSizeV(imgui.NewVec2(280, 160), imgui.CondOnce)
			if imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
				cfg := g.Config()
				imgui.Text(fmt.Sprintf("Phase: %s", g.Phase()))
				imgui.Text(fmt.Sprintf("Score: %d", g.Score()))
				imgui.Text(fmt.Sprintf("Games: %d", g.GamesPlayed()))
				imgui.Separator()
				imgui.Text(fmt.Sprintf("Timing: %s @ %g", cfg.Timing, cfg.TickRate))
				imgui.Text(fmt.Sprintf("Seed: %d", cfg.Seed))
			}
			imgui.End()
		},
	}
}

func main() {
	var opts cli.Options
	opts.Register(flag.CommandLine)
	debug := flag.Bool("debug", false, "show the ECS debug overlay")
	flag.Parse()

	cfg, err := opts.Config()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	s := &shooter{
		dt:    opts.DeltaSeconds(),
		sound: sfx.NewPlayer(opts.Volume),
	}

	// The ImGui backend creates the window, so it must exist before any image loads.
	var gameOpts []game.Option
	if *debug {
		backend := debugui_ebiten.NewImguiBackend(title, game.ScreenWidth, game.ScreenHeight)
		s.overlay = &backend
		gameOpts = append(gameOpts, game.WithComponents(debugui.RegisterComponents))
	} else {
		ebiten.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
		ebiten.SetWindowTitle(title)
	}

	sheets := newSheetLoader(opts.Assets)
	gameOpts = append(gameOpts, game.WithAssets(sheets))
	g, err := game.New(cfg, gameOpts...)
	if err != nil {
		log.Fatalf("game: %v", err)
	}
	s.game = g
	s.renderer = &renderer{sheets: sheets, fonts: newFonts()}

	if s.overlay != nil {
		g.Storage().Spawn(sessionWindow(g))
		debugui.Install(g.Scheduler())
		s.capture = ecs.NewSingleton[debugui.ImguiInputState](g.Storage())
	}

	if opts.Sound {
		if err := s.sound.Init(); err != nil {
			log.Printf("sound disabled: %v", err)
		}
		defer s.sound.Close()
	}

	ebiten.SetTPS(opts.FPS)
	log.Printf("starting: timing=%s fps=%d debug=%t", cfg.Timing, opts.FPS, *debug)
	if err := ebiten.RunGame(s); err != nil {
		log.Fatalf("run: %v", err)
	}
	log.Printf("exiting after %d games, last score %d", g.GamesPlayed(), g.Score())
}
