package game_test

import (
	"testing"
	"time"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/game"
	"github.com/stretchr/testify/assert"
)

func TestIntent(t *testing.T) {
	tests := []struct {
		name string
		in   game.Input
		x, y float64
	}{
		{"idle", game.Input{}, 0, 0},
		{"left", game.Input{Left: true}, -1, 0},
		{"up right", game.Input{Up: true, Right: true}, 1, 1},
		{"left and right cancel", game.Input{Left: true, Right: true}, 0, 0},
		{"up and down cancel", game.Input{Up: true, Down: true, Left: true}, -1, 0},
		{"everything cancels", game.Input{Up: true, Down: true, Left: true, Right: true}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.in.Intent()
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
		})
	}
}

func TestPlayerMotion(t *testing.T) {
	t.Run("moves by speed and delta", func(t *testing.T) {
		g := newGame(t)
		g.startPlaying(t)
		g.stopSpawner()

		g.Step(0.1, game.Input{Right: true, Up: true})

		pos := g.player()
		assert.InDelta(t, 50, pos.X, 1e-9)
		assert.InDelta(t, 50, pos.Y, 1e-9)
	})

	t.Run("opposing keys hold still", func(t *testing.T) {
		g := newGame(t)
		g.startPlaying(t)
		g.stopSpawner()

		for _, dt := range []float64{0, 0.016, 0.5, 3} {
			g.Step(dt, game.Input{Left: true, Right: true, Up: true, Down: true})
			assert.Equal(t, game.Position{}, *g.player())
		}
	})

	t.Run("clamped to the arena", func(t *testing.T) {
		g := newGame(t)
		g.startPlaying(t)
		g.stopSpawner()

		g.Step(10, game.Input{Right: true, Up: true})
		assert.Equal(t, game.Position{X: 600, Y: 320}, *g.player())

		g.Step(10, game.Input{Left: true, Down: true})
		assert.Equal(t, game.Position{X: -600, Y: -320}, *g.player())
	})

	t.Run("no player is a no-op", func(t *testing.T) {
		g := newGame(t)
		assert.NotPanics(t, func() { g.Step(0.1, game.Input{Left: true, Shoot: true}) })
		assert.Nil(t, g.player())
	})
}

func TestShooting(t *testing.T) {
	t.Run("cooldown gates shots", func(t *testing.T) {
		g := newGame(t)
		g.startPlaying(t)
		g.stopSpawner()

		g.Step(0, game.Input{Shoot: true})
		assert.Equal(t, 0, count[game.Laser](g), "the cooldown starts when the ship appears")

		g.clock.Advance(249 * time.Millisecond)
		g.Step(0, game.Input{Shoot: true})
		assert.Equal(t, 0, count[game.Laser](g))

		g.clock.Advance(time.Millisecond)
		g.Step(0, game.Input{Shoot: true})
		assert.Equal(t, 1, count[game.Laser](g))

		g.Step(0, game.Input{Shoot: true})
		assert.Equal(t, 1, count[game.Laser](g))
	})

	t.Run("one laser per pulse spaced by the cooldown", func(t *testing.T) {
		g := newGame(t)
		g.startPlaying(t)
		g.stopSpawner()

		const pulses = 12
		for i := 0; i < pulses; i++ {
			g.clock.Advance(250 * time.Millisecond)
			g.Step(0, game.Input{Shoot: true})
			g.Step(0, game.Input{})
		}

		assert.Equal(t, pulses, count[game.Laser](g))
		assert.Len(t, eventsOf(g.Events(), game.EventShot), pulses)
	})

	t.Run("laser spawns above the ship", func(t *testing.T) {
		g := newGame(t)
		g.startPlaying(t)
		g.stopSpawner()

		g.Step(0.1, game.Input{Left: true})
		g.clock.Advance(time.Second)
		g.Step(0, game.Input{Shoot: true})

		shots := eventsOf(g.Events(), game.EventShot)
		if assert.Len(t, shots, 1) {
			assert.InDelta(t, -50, shots[0].X, 1e-9)
			assert.InDelta(t, 6, shots[0].Y, 1e-9)
		}
	})
}

func TestLaserFlight(t *testing.T) {
	g := newGame(t)
	g.startPlaying(t)
	g.stopSpawner()

	low := g.spawnLaser(0, 0)
	high := g.spawnLaser(100, 310)
	edge := g.spawnLaser(-100, 320)
	under := g.spawnLaser(50, 319.5)

	g.idle(1)
	assert.False(t, g.Storage().Exists(edge), "a laser on the top edge is removed")
	assert.True(t, g.Storage().Exists(under))
	assert.True(t, g.Storage().Exists(high))

	g.Step(0.01, game.Input{})

	assert.True(t, g.Storage().Exists(low))
	assert.InDelta(t, 10, ecs.ReadComponent[game.Position](g.Storage(), low).Y, 1e-9)
	assert.False(t, g.Storage().Exists(high), "lasers reaching the top edge are removed")
	assert.False(t, g.Storage().Exists(under))

	for i := 0; i < 100 && g.Storage().Exists(low); i++ {
		g.Step(0.05, game.Input{})
	}
	assert.False(t, g.Storage().Exists(low))
}
