package game_test

import (
	"testing"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	box := game.Hitbox{HalfWidth: 45.5, HalfHeight: 15.5}
	enemy := game.Position{X: 0, Y: 0}

	assert.True(t, game.Overlaps(enemy, game.Position{X: 10, Y: 5}, box))
	assert.False(t, game.Overlaps(enemy, game.Position{X: 50, Y: 5}, box))
	assert.False(t, game.Overlaps(enemy, game.Position{X: 10, Y: 20}, box))
	assert.False(t, game.Overlaps(enemy, game.Position{X: 45.5, Y: 0}, box), "edges are exclusive")
	assert.True(t, game.Overlaps(enemy, game.Position{X: -45.4, Y: -15.4}, box))
	assert.True(t, game.Overlaps(game.Position{X: 10, Y: 5}, enemy, box))
}

func TestLaserHits(t *testing.T) {
	t.Run("kill scores and explodes", func(t *testing.T) {
		g := newGame(t)
		g.startPlaying(t)
		g.stopSpawner()
		assert.Equal(t, 0, g.Score())

		enemy := g.spawnEnemy(0, 200)
		laser := g.spawnLaser(10, 205)
		g.idle(1)

		assert.False(t, g.Storage().Exists(enemy))
		assert.False(t, g.Storage().Exists(laser))
		assert.Equal(t, 1, g.Score())
		assert.Equal(t, 1, count[game.Explosion](g))

		kills := eventsOf(g.Events(), game.EventEnemyKilled)
		require.Len(t, kills, 1)
		assert.Equal(t, 1, kills[0].Score)
		assert.Equal(t, 200.0, kills[0].Y)
	})

	t.Run("misses leave both alone", func(t *testing.T) {
		g := newGame(t)
		g.startPlaying(t)
		g.stopSpawner()

		enemy := g.spawnEnemy(0, 200)
		laser := g.spawnLaser(50, 205)
		g.idle(1)

		assert.True(t, g.Storage().Exists(enemy))
		assert.True(t, g.Storage().Exists(laser))
		assert.Equal(t, 0, g.Score())
	})

	t.Run("score counts every kill", func(t *testing.T) {
		g := newGame(t)
		g.startPlaying(t)
		g.stopSpawner()

		for i := 0; i < 5; i++ {
			g.spawnEnemy(0, 200)
			g.spawnLaser(0, 200)
			g.idle(1)
			assert.Equal(t, i+1, g.Score())
		}
	})

	t.Run("an enemy dies once per tick", func(t *testing.T) {
		g := newGame(t)
		g.startPlaying(t)
		g.stopSpawner()

		g.spawnEnemy(0, 200)
		g.spawnLaser(-5, 200)
		g.spawnLaser(5, 200)
		g.idle(1)

		assert.Equal(t, 1, g.Score())
		assert.Equal(t, 0, count[game.Enemy](g))
		assert.Equal(t, 1, count[game.Laser](g), "the second laser flies on")
	})

	t.Run("one laser between two enemies kills both", func(t *testing.T) {
		g := newGame(t)
		g.startPlaying(t)
		g.stopSpawner()

		g.spawnEnemy(-20, 200)
		g.spawnEnemy(20, 200)
		g.spawnLaser(0, 200)
		g.idle(1)

		assert.Equal(t, 2, g.Score())
		assert.Equal(t, 0, count[game.Enemy](g))
		assert.Equal(t, 0, count[game.Laser](g))
		assert.Equal(t, 2, count[game.Explosion](g))
	})

	t.Run("hud follows the score", func(t *testing.T) {
		g := newGame(t)
		g.startPlaying(t)
		g.stopSpawner()

		g.spawnEnemy(0, 200)
		g.spawnLaser(0, 200)
		g.idle(2)

		var texts []string
		for _, l := range g.Scene().Labels {
			texts = append(texts, l.Text)
		}
		assert.Contains(t, texts, "Score: 001")
	})
}

func TestPlayerDeath(t *testing.T) {
	g := newGame(t)
	g.startPlaying(t)

	// Kill a couple of enemies first so there is a score to record, then let their
	// explosions burn out.
	g.stopSpawner()
	for i := 0; i < 2; i++ {
		g.spawnEnemy(0, 200)
		g.spawnLaser(0, 200)
		g.idle(1)
	}
	g.idle(31)
	require.Equal(t, 0, count[game.Explosion](g))
	g.Storage().Spawn(game.SpawnTimer{Remaining: 30})
	g.spawnEnemy(400, 400)
	g.spawnEnemy(-400, 400)
	g.Events()

	g.spawnEnemy(10, -5)
	g.idle(1)

	assert.Nil(t, g.player())
	assert.Equal(t, game.PhaseGameOver, g.Phase())
	assert.Equal(t, 0, count[game.Enemy](g))
	assert.Equal(t, 0, count[game.SpawnTimer](g))
	assert.Equal(t, 0, count[game.ScoreCounter](g))
	assert.Equal(t, 0, count[game.Player](g))
	explosions := ecs.NewQuery[struct {
		*game.Position
		*game.Explosion
	}](g.Storage())
	require.Equal(t, 1, explosions.Count())
	blast, _ := explosions.First()
	assert.Equal(t, game.Position{}, *blast.Position, "the ship explodes where it stood")
	assert.Equal(t, 2, g.Score(), "the last score survives the reset")

	events := g.Events()
	died := eventsOf(events, game.EventPlayerKilled)
	require.Len(t, died, 1)
	assert.Equal(t, 2, died[0].Score)
	changed := eventsOf(events, game.EventPhaseChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, game.PhaseGameOver, changed[0].Phase)

	g.idle(5)
	assert.Equal(t, game.PhaseGameOver, g.Phase())
	assert.Equal(t, 0, count[game.Enemy](g), "nothing spawns after game over")
}

func TestShotDownEnemyCannotKillPlayer(t *testing.T) {
	g := newGame(t)
	g.startPlaying(t)
	g.stopSpawner()

	g.spawnEnemy(0, 10)
	g.spawnLaser(0, 10)
	g.idle(1)

	assert.Equal(t, game.PhasePlaying, g.Phase())
	assert.NotNil(t, g.player())
	assert.Equal(t, 1, g.Score())
}

func TestKilledEnemyIdStaysDead(t *testing.T) {
	g := newGame(t)
	g.startPlaying(t)

	enemies := ecs.NewQuery[struct {
		ecs.EntityId
		*game.Position
		*game.Enemy
	}](g.Storage())
	for i := 0; i < 60 && enemies.Empty(); i++ {
		g.idle(1)
	}
	first, ok := enemies.First()
	require.True(t, ok)
	victim := first.EntityId
	*first.Position = game.Position{X: 500, Y: 200}

	// The spawner fires again in the same tick the laser lands, refilling the freed slot.
	g.idle(29)
	g.spawnLaser(500, 200)
	g.idle(1)

	require.Equal(t, 1, g.Score())
	require.Equal(t, 1, enemies.Count())
	assert.False(t, g.Storage().Exists(victim))
	assert.Nil(t, ecs.ReadComponent[game.Position](g.Storage(), victim))

	fresh, ok := enemies.First()
	require.True(t, ok)
	assert.NotEqual(t, victim, fresh.EntityId)
	assert.Equal(t, victim.Index(), fresh.EntityId.Index())
}
