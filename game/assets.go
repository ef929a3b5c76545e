package game

// AtlasHandle is an opaque reference handed out by an AssetLoader.
type AtlasHandle int

// AtlasLayout describes a sprite sheet as a grid of equal tiles.
type AtlasLayout struct {
	TileWidth, TileHeight int
	Columns, Rows         int
}

// Frames is the number of tiles in the sheet.
func (l AtlasLayout) Frames() int {
	return l.Columns * l.Rows
}

// AssetLoader loads sprite sheets for a frontend. The game only keeps the handles.
type AssetLoader interface {
	LoadAtlas(path string, layout AtlasLayout) AtlasHandle
}

// NopAssets hands out sequential handles without loading anything.
type NopAssets struct {
	next AtlasHandle
}

func (a *NopAssets) LoadAtlas(string, AtlasLayout) AtlasHandle {
	a.next++
	return a.next
}

// Sprite sheets used by the game, relative to the frontend's asset root.
const (
	ShipSheet      = "spritesheets/ship.png"
	LaserSheet     = "spritesheets/laser-bolts.png"
	ExplosionSheet = "spritesheets/explosion.png"
	EnemySheet     = "spritesheets/enemy-medium.png"
	IconImage      = "branding/icon.png"
)

var (
	ShipLayout      = AtlasLayout{TileWidth: 16, TileHeight: 24, Columns: 5, Rows: 2}
	LaserLayout     = AtlasLayout{TileWidth: 16, TileHeight: 16, Columns: 2, Rows: 2}
	ExplosionLayout = AtlasLayout{TileWidth: 16, TileHeight: 16, Columns: 5, Rows: 1}
	EnemyLayout     = AtlasLayout{TileWidth: 32, TileHeight: 16, Columns: 2, Rows: 1}
	IconLayout      = AtlasLayout{TileWidth: 256, TileHeight: 256, Columns: 1, Rows: 1}
)

// Atlases holds the loaded sheets. It is stored as a singleton.
type Atlases struct {
	Ship, Laser, Explosion, Enemy, Icon AtlasHandle
}

func loadAtlases(loader AssetLoader) Atlases {
	return Atlases{
		Ship:      loader.LoadAtlas(ShipSheet, ShipLayout),
		Laser:     loader.LoadAtlas(LaserSheet, LaserLayout),
		Explosion: loader.LoadAtlas(ExplosionSheet, ExplosionLayout),
		Enemy:     loader.LoadAtlas(EnemySheet, EnemyLayout),
		Icon:      loader.LoadAtlas(IconImage, IconLayout),
	}
}

// Animation clips and draw scales per entity kind.
const (
	animationFPS = 10

	shipScale      = 3
	laserScale     = 3
	enemyScale     = 3
	explosionScale = 6
)

func newAnimation(first, last int, tickRate float64) Animation {
	return Animation{
		First:     first,
		Last:      last,
		FPS:       animationFPS,
		Remaining: tickRate / animationFPS,
	}
}
