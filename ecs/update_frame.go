package ecs

import "time"

// UpdateFrame is handed to every system during one Scheduler step.
type UpdateFrame struct {
	// DeltaTime is the simulated time since the previous step, in seconds.
	DeltaTime float64
	// Now is the wall-clock time of the step, read once from the Scheduler's Clock.
	Now time.Time
	// Tick counts steps, starting at 1 for the first one.
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt float64, now time.Time, tick uint64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Now:       now,
		Tick:      tick,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
