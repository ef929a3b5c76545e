package game

// EventKind classifies something that happened during a Step.
type EventKind uint8

const (
	EventShot EventKind = iota
	EventEnemySpawned
	EventEnemyKilled
	EventPlayerKilled
	EventPhaseChanged
	EventExit
)

func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventEnemySpawned:
		return "enemy-spawned"
	case EventEnemyKilled:
		return "enemy-killed"
	case EventPlayerKilled:
		return "player-killed"
	case EventPhaseChanged:
		return "phase-changed"
	case EventExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Event is emitted by systems and drained by Game.Events. X and Y are the world position
// for gameplay events, Phase is the new phase for EventPhaseChanged, and Score is the
// running score where it applies.
type Event struct {
	Kind  EventKind
	X, Y  float64
	Phase Phase
	Score int
}

// EventLog is the singleton systems append to.
type EventLog struct {
	Events []Event
}

func (l *EventLog) emit(e Event) {
	if l != nil {
		l.Events = append(l.Events, e)
	}
}
