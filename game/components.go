package game

import (
	"time"

	"github.com/plus3/spaceshooter/ecs"
)

// Position is a world position: origin at the arena centre, y up.
type Position struct {
	X, Y float64
}

type Player struct {
	Speed float64
}

// Cooldown gates the player's weapon by wall-clock time.
type Cooldown struct {
	LastShot time.Time
}

type Enemy struct {
	Speed float64
	// Hit is set once a laser has claimed this enemy during the current tick.
	Hit bool
}

type Laser struct {
	Speed float64
}

// Explosion counts timer units since the effect was created.
type Explosion struct {
	Ticks float64
}

// SpriteKind tells frontends what a sprite depicts when they cannot draw the atlas.
type SpriteKind uint8

const (
	KindPlayer SpriteKind = iota
	KindEnemy
	KindLaser
	KindExplosion
)

func (k SpriteKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindLaser:
		return "laser"
	case KindExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Sprite selects an atlas frame and draw scale for a world entity.
type Sprite struct {
	Atlas AtlasHandle
	Frame int
	Scale float64
	Kind  SpriteKind
}

// Animation cycles Sprite.Frame through [First, Last] at FPS.
// Remaining counts down in timer units, see Config.Timing.
type Animation struct {
	First, Last int
	FPS         float64
	Remaining   float64
}

// ScoreCounter exists only while playing.
type ScoreCounter struct {
	Kills int
}

// SpawnTimer exists only while playing.
type SpawnTimer struct {
	Remaining float64
}

// Label is UI text in screen coordinates.
type Label struct {
	Text string
	X, Y float64
	Size float64
}

// ScoreLabel marks the HUD label that mirrors ScoreCounter.
type ScoreLabel struct{}

// Image is a UI picture in screen coordinates.
type Image struct {
	Atlas      AtlasHandle
	X, Y, W, H float64
}

// Panel is a filled UI rectangle drawn behind labels and buttons.
type Panel struct {
	X, Y, W, H float64
	Color      Color
}

// Screen tags UI entities that belong to a phase and are removed when it exits.
type Screen struct {
	Phase Phase
}

// Session is the per-run state that survives phase changes.
type Session struct {
	Player        *ecs.EntityRef
	LastScore     int
	Games         int
	ExitRequested bool
}

// SplashTimer exists only during the splash phase.
type SplashTimer struct {
	Remaining time.Duration
}

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Cooldown](registry)
	ecs.RegisterComponent[Enemy](registry)
	ecs.RegisterComponent[Laser](registry)
	ecs.RegisterComponent[Explosion](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Animation](registry)
	ecs.RegisterComponent[ScoreCounter](registry)
	ecs.RegisterComponent[SpawnTimer](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[ScoreLabel](registry)
	ecs.RegisterComponent[Image](registry)
	ecs.RegisterComponent[Panel](registry)
	ecs.RegisterComponent[Button](registry)
	ecs.RegisterComponent[Screen](registry)
	return registry
}
