package main

import (
	"image"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/spaceshooter/game"
)

type sheet struct {
	image  *ebiten.Image
	layout game.AtlasLayout
}

// frame cuts tile i out of the sheet, row-major.
func (s sheet) frame(i int) *ebiten.Image {
	if n := s.layout.Frames(); n > 0 {
		i %= n
	}
	col := i % s.layout.Columns
	row := i / s.layout.Columns
	x, y := col*s.layout.TileWidth, row*s.layout.TileHeight
	return s.image.SubImage(image.Rect(x, y, x+s.layout.TileWidth, y+s.layout.TileHeight)).(*ebiten.Image)
}

// sheetLoader loads sprite sheets from disk. A missing file becomes a flat placeholder
// so the game still runs without the art.
type sheetLoader struct {
	root   string
	sheets map[game.AtlasHandle]sheet
}

func newSheetLoader(root string) *sheetLoader {
	return &sheetLoader{root: root, sheets: map[game.AtlasHandle]sheet{}}
}

func (l *sheetLoader) LoadAtlas(path string, layout game.AtlasLayout) game.AtlasHandle {
	handle := game.AtlasHandle(len(l.sheets) + 1)

	img, _, err := ebitenutil.NewImageFromFile(filepath.Join(l.root, path))
	if err != nil {
		log.Printf("asset %s: %v, using placeholder", path, err)
		img = placeholder(path, layout)
	}
	l.sheets[handle] = sheet{image: img, layout: layout}
	return handle
}

func (l *sheetLoader) sheet(handle game.AtlasHandle) (sheet, bool) {
	s, ok := l.sheets[handle]
	return s, ok
}

var placeholderColors = map[string]color.RGBA{
	game.ShipSheet:      {0x4f, 0xc3, 0xf7, 0xff},
	game.LaserSheet:     {0xff, 0xee, 0x58, 0xff},
	game.ExplosionSheet: {0xff, 0x70, 0x43, 0xff},
	game.EnemySheet:     {0xab, 0x47, 0xbc, 0xff},
	game.IconImage:      {0xdc, 0x14, 0x3c, 0xff},
}

func placeholder(path string, layout game.AtlasLayout) *ebiten.Image {
	w := layout.TileWidth * layout.Columns
	h := layout.TileHeight * layout.Rows
	img := ebiten.NewImage(w, h)
	c, ok := placeholderColors[path]
	if !ok {
		c = color.RGBA{0xff, 0xff, 0xff, 0xff}
	}

	// Inset each tile by a pixel so frames stay distinguishable.
	for row := 0; row < layout.Rows; row++ {
		for col := 0; col < layout.Columns; col++ {
			x, y := col*layout.TileWidth, row*layout.TileHeight
			tile := img.SubImage(image.Rect(x+1, y+1, x+layout.TileWidth-1, y+layout.TileHeight-1)).(*ebiten.Image)
			tile.Fill(c)
		}
	}
	return img
}
