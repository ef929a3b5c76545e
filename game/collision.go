package game

import (
	"math"

	"github.com/plus3/spaceshooter/ecs"
)

// Hitbox is the half extent of the collision box shared by every pair.
type Hitbox struct {
	HalfWidth, HalfHeight float64
}

// Overlaps reports whether a and b are closer than the hitbox on both axes.
func Overlaps(a, b Position, box Hitbox) bool {
	return math.Abs(a.Y-b.Y) < box.HalfHeight && math.Abs(a.X-b.X) < box.HalfWidth
}

func (c Config) hitbox() Hitbox {
	return Hitbox{HalfWidth: c.HitboxHalfWidth, HalfHeight: c.HitboxHalfHeight}
}

type enemyTarget struct {
	ecs.EntityId
	*Position
	*Enemy
}

func spawnExplosion(cmds *ecs.Commands, at Position, atlases *Atlases, tickRate float64) {
	cmds.Spawn(
		at,
		Explosion{},
		Sprite{Atlas: atlases.Explosion, Frame: 0, Scale: explosionScale, Kind: KindExplosion},
		newAnimation(0, ExplosionLayout.Frames()-1, tickRate),
	)
}

// LaserHitSystem kills enemies touched by a laser. Each enemy dies at most once per tick,
// to the first overlapping laser. A laser is not reserved by its first kill, so one laser
// between two enemies kills both.
type LaserHitSystem struct {
	Config  ecs.Singleton[Config]
	Atlases ecs.Singleton[Atlases]
	Events  ecs.Singleton[EventLog]
	Scores  ecs.Query[struct{ *ScoreCounter }]
	Enemies ecs.Query[enemyTarget]
	Lasers  ecs.Query[struct {
		ecs.EntityId
		*Position
		*Laser
	}]
}

func (s *LaserHitSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Lasers.Empty() || s.Enemies.Empty() {
		return
	}
	cfg := s.Config.Get()
	box := cfg.hitbox()
	score, hasScore := s.Scores.First()

	for enemy := range s.Enemies.Iter() {
		if enemy.Enemy.Hit {
			continue
		}
		for laser := range s.Lasers.Iter() {
			if !Overlaps(*enemy.Position, *laser.Position, box) {
				continue
			}

			enemy.Enemy.Hit = true
			frame.Commands.Delete(enemy.EntityId)
			frame.Commands.Delete(laser.EntityId)
			spawnExplosion(frame.Commands, *enemy.Position, s.Atlases.Get(), cfg.TickRate)

			kills := 0
			if hasScore {
				score.ScoreCounter.Kills++
				kills = score.ScoreCounter.Kills
			}
			s.Events.Get().emit(Event{Kind: EventEnemyKilled, X: enemy.Position.X, Y: enemy.Position.Y, Score: kills})
			break
		}
	}
}

// PlayerHitSystem ends the game when an enemy touches the player. Enemies already shot down
// this tick are ignored.
type PlayerHitSystem struct {
	Config  ecs.Singleton[Config]
	Atlases ecs.Singleton[Atlases]
	Events  ecs.Singleton[EventLog]
	Session ecs.Singleton[Session]
	State   ecs.Singleton[PhaseState]
	Scores  ecs.Query[struct{ *ScoreCounter }]
	Players ecs.Query[struct {
		ecs.EntityId
		*Position
		*Player
	}]
	Enemies ecs.Query[enemyTarget]
}

func (s *PlayerHitSystem) Execute(frame *ecs.UpdateFrame) {
	player := s.Players.GetRef(s.Session.Get().Player)
	if player == nil {
		return
	}
	cfg := s.Config.Get()
	box := cfg.hitbox()

	for enemy := range s.Enemies.Iter() {
		if enemy.Enemy.Hit || !Overlaps(*player.Position, *enemy.Position, box) {
			continue
		}

		frame.Commands.Delete(player.EntityId)
		spawnExplosion(frame.Commands, *player.Position, s.Atlases.Get(), cfg.TickRate)
		s.State.Get().Request(PhaseGameOver)

		kills := 0
		if score, ok := s.Scores.First(); ok {
			kills = score.ScoreCounter.Kills
		}
		s.Events.Get().emit(Event{Kind: EventPlayerKilled, X: player.Position.X, Y: player.Position.Y, Score: kills})
		return
	}
}
