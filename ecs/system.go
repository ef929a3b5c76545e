package ecs

// System represents a behavior that operates on entities with specific components.
// Systems are usually structs whose Query and Singleton fields are bound by the Scheduler
// on registration; other fields persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// Condition decides, once per frame, whether a system runs.
type Condition func(storage *Storage) bool

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
