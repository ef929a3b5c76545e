package main

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/plus3/spaceshooter/game"
)

var background = color.RGBA{0x08, 0x08, 0x14, 0xff}

// fonts hands out Go Regular faces by pixel size, falling back to the fixed 7x13 face
// when the TrueType data cannot be parsed.
type fonts struct {
	source *opentype.Font
	faces  map[float64]text.Face
	basic  text.Face
}

func newFonts() *fonts {
	f := &fonts{
		faces: map[float64]text.Face{},
		basic: text.NewGoXFace(basicfont.Face7x13),
	}
	src, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("font: %v, using basic face", err)
		return f
	}
	f.source = src
	return f
}

func (f *fonts) face(size float64) text.Face {
	if f.source == nil || size <= 0 {
		return f.basic
	}
	if face, ok := f.faces[size]; ok {
		return face
	}
	xface, err := opentype.NewFace(f.source, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Printf("font size %g: %v", size, err)
		f.faces[size] = f.basic
		return f.basic
	}
	face := text.NewGoXFace(xface)
	f.faces[size] = face
	return face
}

type renderer struct {
	sheets *sheetLoader
	fonts  *fonts
}

func (r *renderer) draw(screen *ebiten.Image, scene game.Scene) {
	screen.Fill(background)

	for _, s := range scene.Sprites {
		r.drawSprite(screen, s)
	}
	for _, p := range scene.Panels {
		vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), rgba(p.Color), false)
	}
	for _, img := range scene.Images {
		r.drawImage(screen, img)
	}
	for _, b := range scene.Buttons {
		r.drawButton(screen, b)
	}
	for _, l := range scene.Labels {
		r.drawText(screen, l.Text, l.X, l.Y, l.Size, rgba(game.ColorText))
	}
}

// drawSprite centres the frame on the sprite's arena position.
func (r *renderer) drawSprite(screen *ebiten.Image, s game.SpriteInstance) {
	sh, ok := r.sheets.sheet(s.Atlas)
	if !ok {
		return
	}
	x, y := game.WorldToScreen(s.X, s.Y)
	w, h := float64(sh.layout.TileWidth)*s.Scale, float64(sh.layout.TileHeight)*s.Scale

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s.Scale, s.Scale)
	op.GeoM.Translate(x-w/2, y-h/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(sh.frame(s.Frame), op)
}

func (r *renderer) drawImage(screen *ebiten.Image, img game.ImageInstance) {
	sh, ok := r.sheets.sheet(img.Atlas)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(img.W/float64(sh.layout.TileWidth), img.H/float64(sh.layout.TileHeight))
	op.GeoM.Translate(img.X, img.Y)
	screen.DrawImage(sh.frame(0), op)
}

func (r *renderer) drawButton(screen *ebiten.Image, b game.ButtonInstance) {
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), rgba(b.Color), false)
	if b.Selected {
		vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, rgba(game.ColorText), false)
	}

	const size = 40
	face := r.fonts.face(size)
	tw, th := text.Measure(b.Text, face, 0)
	r.drawText(screen, b.Text, b.X+(b.W-tw)/2, b.Y+(b.H-th)/2, size, rgba(game.ColorText))
}

func (r *renderer) drawText(screen *ebiten.Image, s string, x, y, size float64, c color.Color) {
	face := r.fonts.face(size)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.LineSpacing = face.Metrics().HAscent + face.Metrics().HDescent + face.Metrics().HLineGap
	text.Draw(screen, s, face, op)
}

func rgba(c game.Color) color.RGBA {
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: 0xff,
	}
}
