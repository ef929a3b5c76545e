package ecs_test

import (
	"fmt"

	"github.com/plus3/spaceshooter/ecs"
)

func ExampleView() {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1, Y: 2}, Name{Value: "scout"})
	storage.Spawn(Position{X: 3, Y: 4})

	type Labelled struct {
		Position *Position
		Name     *Name `ecs:"optional"`
	}

	for item := range ecs.NewView[Labelled](storage).Iter() {
		name := "anonymous"
		if item.Name != nil {
			name = item.Name.Value
		}
		fmt.Printf("%s at (%.0f, %.0f)\n", name, item.Position.X, item.Position.Y)
	}
	// Unordered output:
	// scout at (1, 2)
	// anonymous at (3, 4)
}

func ExampleScheduler() {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{}, Velocity{DX: 2, DY: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	for i := 0; i < 3; i++ {
		scheduler.Once(1)
	}

	pos := ecs.ReadComponent[Position](storage, id)
	fmt.Printf("(%.0f, %.0f)\n", pos.X, pos.Y)
	// Output: (6, 3)
}

func ExampleCommands_Defer() {
	storage := ecs.NewStorage(newTestRegistry())
	cmds := ecs.NewCommands()

	var ref *ecs.EntityRef
	cmds.Defer(func() {
		for item := range ecs.NewView[struct {
			ecs.EntityId
			*Name
		}](storage).Iter() {
			ref = storage.CreateEntityRef(item.EntityId)
		}
	})
	cmds.Spawn(Name{Value: "player"}, Position{})
	cmds.Flush(storage)

	fmt.Println(ref.Alive(), ecs.ReadComponent[Name](storage, ref.Id).Value)
	// Output: true player
}

func ExampleSingleton() {
	storage := ecs.NewStorage(newTestRegistry())
	difficulty := ecs.NewSingleton(storage, Difficulty{Level: 1})
	difficulty.Get().Level++

	var current *Difficulty
	storage.ReadSingleton(&current)
	fmt.Println(current.Level)
	// Output: 2
}
