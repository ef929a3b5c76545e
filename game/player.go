package game

import (
	"github.com/plus3/spaceshooter/ecs"
)

type playerView struct {
	*Position
	*Player
	*Cooldown
}

// PlayerMotionSystem moves the ship by the input intent and keeps it inside the arena.
type PlayerMotionSystem struct {
	Input   ecs.Singleton[Controls]
	Session ecs.Singleton[Session]
	Config  ecs.Singleton[Config]
	Players ecs.Query[playerView]
}

func (s *PlayerMotionSystem) Execute(frame *ecs.UpdateFrame) {
	player := s.Players.GetRef(s.Session.Get().Player)
	if player == nil {
		return
	}

	dx, dy := s.Input.Get().Held.Intent()
	player.Position.X += dx * player.Player.Speed * frame.DeltaTime
	player.Position.Y += dy * player.Player.Speed * frame.DeltaTime

	halfW, halfH := s.Config.Get().halfExtents()
	player.Position.X = clamp(player.Position.X, -halfW, halfW)
	player.Position.Y = clamp(player.Position.Y, -halfH, halfH)
}

// ShootSystem fires a laser while Shoot is held and the cooldown has elapsed.
type ShootSystem struct {
	Input   ecs.Singleton[Controls]
	Session ecs.Singleton[Session]
	Config  ecs.Singleton[Config]
	Atlases ecs.Singleton[Atlases]
	Events  ecs.Singleton[EventLog]
	Players ecs.Query[playerView]
}

func (s *ShootSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Input.Get().Held.Shoot {
		return
	}
	player := s.Players.GetRef(s.Session.Get().Player)
	if player == nil {
		return
	}

	cfg := s.Config.Get()
	if frame.Now.Sub(player.Cooldown.LastShot) < cfg.ShotCooldown {
		return
	}
	player.Cooldown.LastShot = frame.Now

	x, y := player.Position.X, player.Position.Y+cfg.LaserOffset
	frame.Commands.Spawn(
		Position{X: x, Y: y},
		Laser{Speed: cfg.LaserSpeed},
		Sprite{Atlas: s.Atlases.Get().Laser, Frame: 2, Scale: laserScale, Kind: KindLaser},
		newAnimation(2, 3, cfg.TickRate),
	)
	s.Events.Get().emit(Event{Kind: EventShot, X: x, Y: y})
}

// LaserSystem flies lasers upward and removes them once they reach the top of the arena.
type LaserSystem struct {
	Config ecs.Singleton[Config]
	Lasers ecs.Query[struct {
		ecs.EntityId
		*Position
		*Laser
	}]
}

func (s *LaserSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get()
	top := cfg.ArenaHeight / 2

	for laser := range s.Lasers.Iter() {
		laser.Position.Y += 2 * laser.Laser.Speed * frame.DeltaTime
		if laser.Position.Y >= top {
			frame.Commands.Delete(laser.EntityId)
			continue
		}
		laser.Position.X = clamp(laser.Position.X, -cfg.ArenaWidth, cfg.ArenaWidth)
		laser.Position.Y = clamp(laser.Position.Y, -cfg.ArenaHeight, cfg.ArenaHeight)
	}
}
