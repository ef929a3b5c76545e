package game_test

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/game"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testGame struct {
	*game.Game
	clock *fakeClock
	logs  *bytes.Buffer
}

func newGame(t *testing.T, tweaks ...func(*game.Config)) *testGame {
	t.Helper()

	cfg := game.DefaultConfig()
	cfg.Seed = 7
	for _, tweak := range tweaks {
		tweak(&cfg)
	}

	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	logs := &bytes.Buffer{}
	g, err := game.New(cfg,
		game.WithClock(clock),
		game.WithLogger(log.New(logs, "", 0)),
		game.WithAssets(&game.NopAssets{}),
	)
	require.NoError(t, err)

	return &testGame{Game: g, clock: clock, logs: logs}
}

// startPlaying runs out the splash screen in one step.
func (g *testGame) startPlaying(t *testing.T) {
	t.Helper()
	g.Step(g.Config().SplashDuration.Seconds(), game.Input{})
	require.Equal(t, game.PhasePlaying, g.Phase())
	require.NotNil(t, g.player())
	g.Events()
}

// idle steps n times with no input and no elapsed time, so nothing moves.
func (g *testGame) idle(n int) {
	for i := 0; i < n; i++ {
		g.Step(0, game.Input{})
	}
}

func (g *testGame) session() *game.Session {
	var session *game.Session
	g.Storage().ReadSingleton(&session)
	return session
}

func (g *testGame) player() *game.Position {
	session := g.session()
	if !session.Player.Alive() {
		return nil
	}
	return ecs.ReadComponent[game.Position](g.Storage(), session.Player.Id)
}

// stopSpawner removes the spawn timer so only hand-placed enemies exist.
func (g *testGame) stopSpawner() {
	for item := range ecs.NewView[struct {
		ecs.EntityId
		*game.SpawnTimer
	}](g.Storage()).Iter() {
		g.Storage().Delete(item.EntityId)
	}
}

func (g *testGame) spawnEnemy(x, y float64) ecs.EntityId {
	return g.Storage().Spawn(
		game.Position{X: x, Y: y},
		game.Enemy{Speed: g.Config().EnemySpeed},
		game.Sprite{Kind: game.KindEnemy, Scale: 3},
	)
}

func (g *testGame) spawnLaser(x, y float64) ecs.EntityId {
	return g.Storage().Spawn(
		game.Position{X: x, Y: y},
		game.Laser{Speed: g.Config().LaserSpeed},
		game.Sprite{Kind: game.KindLaser, Scale: 3},
	)
}

func (g *testGame) spawnTimer() *game.SpawnTimer {
	item, ok := ecs.NewQuery[struct{ *game.SpawnTimer }](g.Storage()).First()
	if !ok {
		return nil
	}
	return item.SpawnTimer
}

func (g *testGame) button(text string) game.ButtonInstance {
	for _, b := range g.Scene().Buttons {
		if b.Text == text {
			return b
		}
	}
	return game.ButtonInstance{}
}

func count[T any](g *testGame) int {
	return ecs.NewView[struct{ C *T }](g.Storage()).Count()
}

func eventsOf(events []game.Event, kind game.EventKind) []game.Event {
	var out []game.Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
