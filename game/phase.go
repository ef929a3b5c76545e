package game

import (
	"fmt"
	"time"

	"github.com/plus3/spaceshooter/ecs"
)

// Phase is the coarse game mode.
type Phase uint8

const (
	PhaseSplash Phase = iota
	PhaseMenu
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSplash:
		return "splash"
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// PhaseState is a singleton. Systems call Request; the change is applied at the end of the
// tick by PhaseTransitionSystem.
type PhaseState struct {
	Current Phase
	Next    Phase
	Pending bool
}

// Request schedules a move to next. The last request of a tick wins.
func (s *PhaseState) Request(next Phase) {
	s.Next = next
	s.Pending = true
}

// InPhase is a run condition for systems that only make sense in one of phases.
func InPhase(phases ...Phase) ecs.Condition {
	return func(storage *ecs.Storage) bool {
		var state *PhaseState
		if !storage.ReadSingleton(&state) {
			return false
		}
		for _, p := range phases {
			if state.Current == p {
				return true
			}
		}
		return false
	}
}

// PhaseTransitionSystem runs last. It queues the exit actions of the old phase followed by
// the enter actions of the new one, all applied by the end-of-tick flush.
type PhaseTransitionSystem struct {
	State   ecs.Singleton[PhaseState]
	Session ecs.Singleton[Session]
	Events  ecs.Singleton[EventLog]
	Config  ecs.Singleton[Config]
	Atlases ecs.Singleton[Atlases]

	Screens ecs.Query[struct {
		ecs.EntityId
		*Screen
	}]
	Enemies ecs.Query[struct {
		ecs.EntityId
		*Enemy
	}]
	Timers ecs.Query[struct {
		ecs.EntityId
		*SpawnTimer
	}]
	Scores ecs.Query[struct {
		ecs.EntityId
		*ScoreCounter
	}]
}

func (s *PhaseTransitionSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state == nil || !state.Pending {
		return
	}

	from, to := state.Current, state.Next
	state.Current = to
	state.Pending = false

	s.exit(frame, from)
	s.enter(frame, to)

	s.Events.Get().emit(Event{Kind: EventPhaseChanged, Phase: to})
}

func (s *PhaseTransitionSystem) exit(frame *ecs.UpdateFrame, phase Phase) {
	cmds := frame.Commands

	for screen := range s.Screens.Iter() {
		if screen.Screen.Phase == phase {
			cmds.Delete(screen.EntityId)
		}
	}

	switch phase {
	case PhaseSplash:
		cmds.Defer(func() { ecs.RemoveSingleton[SplashTimer](frame.Storage) })

	case PhasePlaying:
		session := s.Session.Get()
		if score, ok := s.Scores.First(); ok {
			session.LastScore = score.ScoreCounter.Kills
		}
		if session.Player.Alive() {
			cmds.Delete(session.Player.Id)
		}
		session.Player = nil

		for timer := range s.Timers.Iter() {
			cmds.Delete(timer.EntityId)
		}
		for score := range s.Scores.Iter() {
			cmds.Delete(score.EntityId)
		}
		for enemy := range s.Enemies.Iter() {
			cmds.Delete(enemy.EntityId)
		}
		// Release the slots the finished game used. Only EntityRefs survive this.
		cmds.Defer(frame.Storage.Compact)
	}
}

func (s *PhaseTransitionSystem) enter(frame *ecs.UpdateFrame, phase Phase) {
	enterPhase(frame.Storage, frame.Commands, phase, frame.Now, *s.Config.Get(), *s.Atlases.Get(), s.Session.Get())
}

// enterPhase queues everything a phase needs on screen and in the world.
func enterPhase(storage *ecs.Storage, cmds *ecs.Commands, phase Phase, now time.Time, cfg Config, atlases Atlases, session *Session) {
	switch phase {
	case PhaseSplash:
		storage.AddSingleton(SplashTimer{Remaining: cfg.SplashDuration})
		cmds.Spawn(
			Image{Atlas: atlases.Icon, X: ScreenWidth/2 - 100, Y: ScreenHeight/2 - 160, W: 200, H: 200},
			Screen{Phase: PhaseSplash},
		)
		cmds.Spawn(
			Label{Text: "made with ooftn", X: ScreenWidth/2 - 280, Y: ScreenHeight/2 + 60, Size: 80},
			Screen{Phase: PhaseSplash},
		)

	case PhaseMenu:
		spawnMenu(cmds, PhaseMenu, "Space Shooter", "")

	case PhaseGameOver:
		spawnMenu(cmds, PhaseGameOver, "Game Over", fmt.Sprintf("Score: %d", session.LastScore))

	case PhasePlaying:
		session.Games++
		cmds.Defer(func() {
			id := storage.Spawn(
				Position{},
				Player{Speed: cfg.PlayerSpeed},
				Cooldown{LastShot: now},
				Sprite{Atlas: atlases.Ship, Frame: 0, Scale: shipScale, Kind: KindPlayer},
				newAnimation(0, ShipLayout.Frames()-1, cfg.TickRate),
			)
			session.Player = storage.CreateEntityRef(id)
		})

		cmds.Spawn(
			Label{Text: "Move: Arrow Keys\nShoot: Space", X: 12, Y: 12, Size: 20},
			Screen{Phase: PhasePlaying},
		)
		cmds.Spawn(
			Label{Text: scoreText(0), X: 1100, Y: 640, Size: 20},
			ScoreLabel{},
			Screen{Phase: PhasePlaying},
		)
		cmds.Spawn(SpawnTimer{Remaining: cfg.SpawnPeriod})
		cmds.Spawn(ScoreCounter{})
	}
}

func scoreText(kills int) string {
	return fmt.Sprintf("Score: %03d", kills)
}
