package main

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/spaceshooter/game"
)

var spriteGlyphs = map[game.SpriteKind]struct {
	r     rune
	color tcell.Color
}{
	game.KindPlayer:    {'A', tcell.ColorAqua},
	game.KindEnemy:     {'W', tcell.ColorFuchsia},
	game.KindLaser:     {'|', tcell.ColorYellow},
	game.KindExplosion: {'*', tcell.ColorOrangeRed},
}

// cell maps a UI pixel to a terminal cell.
func cell(x, y float64, cols, rows int) (int, int) {
	return int(x * float64(cols) / game.ScreenWidth), int(y * float64(rows) / game.ScreenHeight)
}

func tcellColor(c game.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R*255+0.5), int32(c.G*255+0.5), int32(c.B*255+0.5))
}

func fill(screen tcell.Screen, x, y, w, h float64, style tcell.Style, cols, rows int) {
	x0, y0 := cell(x, y, cols, rows)
	x1, y1 := cell(x+w, y+h, cols, rows)
	for row := max(y0, 0); row < min(y1, rows); row++ {
		for col := max(x0, 0); col < min(x1, cols); col++ {
			screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func put(screen tcell.Screen, col, row int, s string, style tcell.Style, cols, rows int) {
	if row < 0 || row >= rows {
		return
	}
	for i, r := range []rune(s) {
		if c := col + i; c >= 0 && c < cols {
			screen.SetContent(c, row, r, nil, style)
		}
	}
}

// overlay writes s keeping whatever background is already under each cell.
func overlay(screen tcell.Screen, col, row int, s string, style tcell.Style, cols, rows int) {
	if row < 0 || row >= rows {
		return
	}
	for i, r := range []rune(s) {
		c := col + i
		if c < 0 || c >= cols {
			continue
		}
		_, _, under, _ := screen.GetContent(c, row)
		_, bg, _ := under.Decompose()
		screen.SetContent(c, row, r, nil, style.Background(bg))
	}
}

func draw(screen tcell.Screen, scene game.Scene) {
	screen.Clear()
	cols, rows := screen.Size()
	base := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

	for _, s := range scene.Sprites {
		glyph, ok := spriteGlyphs[s.Kind]
		if !ok {
			continue
		}
		x, y := game.WorldToScreen(s.X, s.Y)
		col, row := cell(x, y, cols, rows)
		put(screen, col, row, string(glyph.r), base.Foreground(glyph.color), cols, rows)
	}

	for _, p := range scene.Panels {
		fill(screen, p.X, p.Y, p.W, p.H, base.Background(tcellColor(p.Color)), cols, rows)
	}

	for _, b := range scene.Buttons {
		style := base.Background(tcellColor(b.Color))
		fill(screen, b.X, b.Y, b.W, b.H, style, cols, rows)
		text := b.Text
		if b.Selected {
			text = "> " + text + " <"
		}
		col, row := cell(b.X+b.W/2, b.Y+b.H/2, cols, rows)
		put(screen, col-len([]rune(text))/2, row, text, style.Bold(b.Selected), cols, rows)
	}

	for _, l := range scene.Labels {
		col, row := cell(l.X, l.Y, cols, rows)
		for i, line := range strings.Split(l.Text, "\n") {
			overlay(screen, col, row+i, line, base.Bold(l.Size >= 60), cols, rows)
		}
	}

	screen.Show()
}
