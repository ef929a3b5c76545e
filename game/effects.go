package game

import (
	"github.com/plus3/spaceshooter/ecs"
)

// ExplosionSystem ages explosions and removes them once they outlive ExplosionLifetime.
type ExplosionSystem struct {
	Config     ecs.Singleton[Config]
	Explosions ecs.Query[struct {
		ecs.EntityId
		*Explosion
	}]
}

func (s *ExplosionSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get()
	units := timerUnits(cfg, frame)

	for explosion := range s.Explosions.Iter() {
		explosion.Explosion.Ticks += units
		if explosion.Explosion.Ticks > cfg.ExplosionLifetime {
			frame.Commands.Delete(explosion.EntityId)
		}
	}
}

// AnimationSystem steps sprite frames, wrapping from Last back to First.
type AnimationSystem struct {
	Config  ecs.Singleton[Config]
	Sprites ecs.Query[struct {
		*Sprite
		*Animation
	}]
}

func (s *AnimationSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get()
	units := timerUnits(cfg, frame)

	for item := range s.Sprites.Iter() {
		anim := item.Animation
		anim.Remaining -= units
		if anim.Remaining > 0 {
			continue
		}

		item.Sprite.Frame++
		if item.Sprite.Frame > anim.Last {
			item.Sprite.Frame = anim.First
		}
		anim.Remaining = cfg.TickRate / anim.FPS
	}
}
