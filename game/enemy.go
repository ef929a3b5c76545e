package game

import (
	"math/rand/v2"

	"github.com/plus3/spaceshooter/ecs"
)

// EnemySpawnSystem owns the spawn timer: it spawns an enemy when the timer reaches one unit
// and resets it, otherwise it counts down.
type EnemySpawnSystem struct {
	Config  ecs.Singleton[Config]
	Atlases ecs.Singleton[Atlases]
	Events  ecs.Singleton[EventLog]
	Timers  ecs.Query[struct{ *SpawnTimer }]
	Rand    *rand.Rand
}

func (s *EnemySpawnSystem) Execute(frame *ecs.UpdateFrame) {
	timer, ok := s.Timers.First()
	if !ok {
		return
	}
	cfg := s.Config.Get()

	if timer.SpawnTimer.Remaining > 1 {
		timer.SpawnTimer.Remaining -= timerUnits(cfg, frame)
		return
	}
	timer.SpawnTimer.Remaining = cfg.SpawnPeriod

	x := float64(s.Rand.IntN(2*cfg.EnemySpawnRange) - cfg.EnemySpawnRange)
	y := cfg.EnemySpawnY
	frame.Commands.Spawn(
		Position{X: x, Y: y},
		Enemy{Speed: cfg.EnemySpeed},
		Sprite{Atlas: s.Atlases.Get().Enemy, Frame: 0, Scale: enemyScale, Kind: KindEnemy},
		newAnimation(0, EnemyLayout.Frames()-1, cfg.TickRate),
	)
	s.Events.Get().emit(Event{Kind: EventEnemySpawned, X: x, Y: y})
}

// EnemySeekSystem steps every enemy one speed unit per axis toward the player. With
// EnemyVerticalFlee the vertical step points away from the player instead. Only Y is clamped.
type EnemySeekSystem struct {
	Session ecs.Singleton[Session]
	Config  ecs.Singleton[Config]
	Players ecs.Query[struct{ *Position }]
	Enemies ecs.Query[struct {
		*Position
		*Enemy
	}]
}

func (s *EnemySeekSystem) Execute(frame *ecs.UpdateFrame) {
	player := s.Players.GetRef(s.Session.Get().Player)
	if player == nil {
		return
	}
	cfg := s.Config.Get()
	target := *player.Position

	for enemy := range s.Enemies.Iter() {
		stepX := sign(target.X - enemy.Position.X)
		stepY := sign(target.Y - enemy.Position.Y)
		if cfg.EnemyVerticalFlee {
			stepY = -stepY
		}

		enemy.Position.X += stepX * enemy.Enemy.Speed * frame.DeltaTime
		enemy.Position.Y += stepY * enemy.Enemy.Speed * frame.DeltaTime
		enemy.Position.Y = clamp(enemy.Position.Y, -cfg.EnemyClampY, cfg.EnemyClampY)
	}
}
