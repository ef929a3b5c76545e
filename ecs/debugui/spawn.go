package debugui

import "github.com/plus3/spaceshooter/ecs"

// RegisterComponents registers the components the debug UI stores.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}

// Install spawns the stock debug windows and registers ImguiSystem. Call it after the
// game's own systems so the windows see their results.
func Install(scheduler *ecs.Scheduler) {
	storage := scheduler.Storage()
	storage.AddSingleton(ImguiInputState{})

	selection := &Selection{}
	perf := NewPerformanceStats(scheduler, 120)
	archetypes := NewArchetypeViewer(storage, selection)
	inspector := NewEntityInspector(storage, selection)

	storage.Spawn(ImguiItem{Title: "Performance", Render: perf.Render})
	storage.Spawn(ImguiItem{Title: "Archetypes", Render: archetypes.Render})
	storage.Spawn(ImguiItem{Title: "Entity Inspector", Render: inspector.Render})

	scheduler.Register(&ImguiSystem{})
}
