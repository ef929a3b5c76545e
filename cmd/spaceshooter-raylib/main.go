// Command spaceshooter-raylib is the windowed shooter, drawn with raylib.
package main

import (
	"flag"
	"log"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/plus3/spaceshooter/game"
	"github.com/plus3/spaceshooter/internal/cli"
	"github.com/plus3/spaceshooter/sfx"
)

type texture struct {
	tex    rl.Texture2D
	layout game.AtlasLayout
}

// textureLoader uploads sheets to the GPU. Missing files become flat placeholders.
type textureLoader struct {
	root     string
	textures map[game.AtlasHandle]texture
}

func (l *textureLoader) LoadAtlas(path string, layout game.AtlasLayout) game.AtlasHandle {
	handle := game.AtlasHandle(len(l.textures) + 1)

	full := filepath.Join(l.root, path)
	var tex rl.Texture2D
	if rl.FileExists(full) {
		tex = rl.LoadTexture(full)
	}
	if tex.ID == 0 {
		log.Printf("asset %s: not loaded, using placeholder", path)
		img := rl.GenImageColor(layout.TileWidth*layout.Columns, layout.TileHeight*layout.Rows, rl.Magenta)
		tex = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
	}
	l.textures[handle] = texture{tex: tex, layout: layout}
	return handle
}

func (l *textureLoader) unload() {
	for _, t := range l.textures {
		rl.UnloadTexture(t.tex)
	}
}

func readInput() game.Input {
	mouse := rl.GetMousePosition()
	return game.Input{
		Left:    rl.IsKeyDown(rl.KeyLeft),
		Right:   rl.IsKeyDown(rl.KeyRight),
		Up:      rl.IsKeyDown(rl.KeyUp),
		Down:    rl.IsKeyDown(rl.KeyDown),
		Shoot:   rl.IsKeyDown(rl.KeySpace),
		Confirm: rl.IsKeyDown(rl.KeyEnter),
		Pointer: game.Pointer{
			X:    float64(mouse.X),
			Y:    float64(mouse.Y),
			Down: rl.IsMouseButtonDown(rl.MouseButtonLeft),
		},
	}
}

func color(c game.Color) rl.Color {
	return rl.NewColor(uint8(c.R*255+0.5), uint8(c.G*255+0.5), uint8(c.B*255+0.5), 255)
}

func draw(scene game.Scene, textures *textureLoader) {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.NewColor(8, 8, 20, 255))

	for _, s := range scene.Sprites {
		t, ok := textures.textures[s.Atlas]
		if !ok {
			continue
		}
		tw, th := float32(t.layout.TileWidth), float32(t.layout.TileHeight)
		frame := s.Frame % max(t.layout.Frames(), 1)
		src := rl.NewRectangle(float32(frame%t.layout.Columns)*tw, float32(frame/t.layout.Columns)*th, tw, th)
		x, y := game.WorldToScreen(s.X, s.Y)
		w, h := tw*float32(s.Scale), th*float32(s.Scale)
		dst := rl.NewRectangle(float32(x)-w/2, float32(y)-h/2, w, h)
		rl.DrawTexturePro(t.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	}
	for _, p := range scene.Panels {
		rl.DrawRectangleRec(rl.NewRectangle(float32(p.X), float32(p.Y), float32(p.W), float32(p.H)), color(p.Color))
	}
	for _, img := range scene.Images {
		t, ok := textures.textures[img.Atlas]
		if !ok {
			continue
		}
		src := rl.NewRectangle(0, 0, float32(t.layout.TileWidth), float32(t.layout.TileHeight))
		dst := rl.NewRectangle(float32(img.X), float32(img.Y), float32(img.W), float32(img.H))
		rl.DrawTexturePro(t.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	}
	for _, b := range scene.Buttons {
		rect := rl.NewRectangle(float32(b.X), float32(b.Y), float32(b.W), float32(b.H))
		rl.DrawRectangleRec(rect, color(b.Color))
		if b.Selected {
			rl.DrawRectangleLinesEx(rect, 2, rl.White)
		}
		const size = 30
		tw := rl.MeasureText(b.Text, size)
		rl.DrawText(b.Text, int32(b.X)+(int32(b.W)-tw)/2, int32(b.Y)+(int32(b.H)-size)/2, size, rl.White)
	}
	for _, l := range scene.Labels {
		rl.DrawText(l.Text, int32(l.X), int32(l.Y), int32(l.Size), color(game.ColorText))
	}
}

func main() {
	var opts cli.Options
	opts.Register(flag.CommandLine)
	flag.Parse()

	cfg, err := opts.Config()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(game.ScreenWidth, game.ScreenHeight, "Space Shooter")
	rl.SetTargetFPS(int32(opts.FPS))
	rl.SetExitKey(rl.KeyEscape)
	defer rl.CloseWindow()

	textures := &textureLoader{root: opts.Assets, textures: map[game.AtlasHandle]texture{}}
	defer textures.unload()

	g, err := game.New(cfg, game.WithAssets(textures))
	if err != nil {
		log.Fatalf("game: %v", err)
	}

	sound := sfx.NewPlayer(opts.Volume)
	if opts.Sound {
		if err := sound.Init(); err != nil {
			log.Printf("sound disabled: %v", err)
		}
		defer sound.Close()
	}

	dt := opts.DeltaSeconds()
	for !rl.WindowShouldClose() && !g.ExitRequested() {
		g.Step(dt, readInput())
		sound.Handle(g.Events())
		draw(g.Scene(), textures)
	}
	log.Printf("exiting after %d games, last score %d", g.GamesPlayed(), g.Score())
}
