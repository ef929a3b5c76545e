package game_test

import (
	"testing"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldToScreen(t *testing.T) {
	x, y := game.WorldToScreen(0, 0)
	assert.Equal(t, float64(game.ScreenWidth/2), x)
	assert.Equal(t, float64(game.ScreenHeight/2), y)

	x, y = game.WorldToScreen(-600, 320)
	assert.Equal(t, 40.0, x)
	assert.Equal(t, 40.0, y)
}

func TestScene(t *testing.T) {
	g := newGame(t)
	g.startPlaying(t)
	g.stopSpawner()
	g.spawnEnemy(300, 300)
	g.spawnLaser(-100, 0)

	scene := g.Scene()
	assert.Equal(t, game.PhasePlaying, scene.Phase)
	assert.Equal(t, 0, scene.Score)

	kinds := map[game.SpriteKind]int{}
	for _, s := range scene.Sprites {
		kinds[s.Kind]++
		assert.Greater(t, s.Scale, 0.0)
	}
	assert.Equal(t, map[game.SpriteKind]int{
		game.KindPlayer: 1,
		game.KindEnemy:  1,
		game.KindLaser:  1,
	}, kinds)
	assert.Empty(t, scene.Buttons)
}

func TestAtlasesAreLoadedOnce(t *testing.T) {
	loader := &countingLoader{}
	_, err := game.New(game.DefaultConfig(), game.WithAssets(loader))
	assert.NoError(t, err)

	assert.ElementsMatch(t, []string{
		game.ShipSheet,
		game.LaserSheet,
		game.ExplosionSheet,
		game.EnemySheet,
		game.IconImage,
	}, loader.paths)
	assert.Equal(t, 2, loader.layouts[game.ShipSheet].Rows)
}

type OverlayNote struct {
	Text string
}

func TestWithComponents(t *testing.T) {
	g, err := game.New(game.DefaultConfig(),
		game.WithAssets(&game.NopAssets{}),
		game.WithComponents(func(r *ecs.ComponentRegistry) {
			ecs.RegisterComponent[OverlayNote](r)
		}),
	)
	require.NoError(t, err)

	g.Storage().Spawn(OverlayNote{Text: "fps"})
	note, ok := ecs.NewQuery[struct{ *OverlayNote }](g.Storage()).First()
	require.True(t, ok)
	assert.Equal(t, "fps", note.OverlayNote.Text)
}

type countingLoader struct {
	paths   []string
	layouts map[string]game.AtlasLayout
}

func (l *countingLoader) LoadAtlas(path string, layout game.AtlasLayout) game.AtlasHandle {
	if l.layouts == nil {
		l.layouts = map[string]game.AtlasLayout{}
	}
	l.paths = append(l.paths, path)
	l.layouts[path] = layout
	return game.AtlasHandle(len(l.paths))
}
