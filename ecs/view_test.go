package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/stretchr/testify/assert"
)

func TestView(t *testing.T) {
	t.Run("required components", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		storage.Spawn(Position{X: 1}, Velocity{DX: 1})
		storage.Spawn(Position{X: 2}, Velocity{DX: 2}, Health{Current: 1})
		storage.Spawn(Position{X: 3})

		view := ecs.NewView[struct {
			*Position
			*Velocity
		}](storage)

		assert.Equal(t, 2, view.Count())
		for item := range view.Iter() {
			assert.Equal(t, item.Position.X, item.Velocity.DX)
		}
	})

	t.Run("optional components", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		armored := storage.Spawn(Position{X: 1}, Shield{Charge: 0.5})
		bare := storage.Spawn(Position{X: 2})

		type ShipView struct {
			Position *Position
			Shield   *Shield `ecs:"optional"`
		}
		view := ecs.NewView[ShipView](storage)

		assert.Equal(t, 2, view.Count())
		assert.NotNil(t, view.Get(armored).Shield)
		assert.Nil(t, view.Get(bare).Shield)
		assert.Equal(t, float32(2), view.Get(bare).Position.X)
	})

	t.Run("entity id fields", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := storage.Spawn(Position{}, Name{Value: "alpha"})

		type Embedded struct {
			ecs.EntityId
			*Name
		}
		type Named struct {
			Id   ecs.EntityId
			Name *Name
		}

		embedded, ok := ecs.NewQuery[Embedded](storage).First()
		assert.True(t, ok)
		assert.Equal(t, id, embedded.EntityId)

		named, ok := ecs.NewQuery[Named](storage).First()
		assert.True(t, ok)
		assert.Equal(t, id, named.Id)
		assert.Equal(t, "alpha", named.Name.Value)
	})

	t.Run("writes through pointers", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := storage.Spawn(Position{X: 1, Y: 1}, Velocity{DX: 2, DY: 3})

		view := ecs.NewView[struct {
			*Position
			*Velocity
		}](storage)
		for item := range view.Iter() {
			item.Position.X += item.Velocity.DX
			item.Position.Y += item.Velocity.DY
		}

		pos := ecs.ReadComponent[Position](storage, id)
		assert.Equal(t, float32(3), pos.X)
		assert.Equal(t, float32(4), pos.Y)
	})

	t.Run("get missing", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := storage.Spawn(Position{})

		view := ecs.NewView[struct{ *Velocity }](storage)
		assert.Nil(t, view.Get(id))
		assert.Nil(t, view.Get(ecs.NewEntityId(1, 0, 1)))
	})

	t.Run("spawn", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())

		type ShipView struct {
			Position *Position
			Shield   *Shield `ecs:"optional"`
		}
		view := ecs.NewView[ShipView](storage)

		id := view.Spawn(ShipView{Position: &Position{X: 7}})
		assert.False(t, storage.HasComponent(id, reflect.TypeFor[Shield]()))
		assert.Equal(t, float32(7), view.Get(id).Position.X)
		assert.Nil(t, view.Get(id).Shield)

		assert.Panics(t, func() { view.Spawn(ShipView{}) })
	})

	t.Run("stops early", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		for i := 0; i < 10; i++ {
			storage.Spawn(Position{X: float32(i)})
		}

		seen := 0
		for range ecs.NewView[struct{ *Position }](storage).Iter() {
			seen++
			if seen == 3 {
				break
			}
		}
		assert.Equal(t, 3, seen)
	})

	t.Run("rejects bad shapes", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())

		assert.Panics(t, func() { ecs.NewView[int](storage) })
		assert.Panics(t, func() { ecs.NewView[struct{ Position Position }](storage) })
		assert.Panics(t, func() {
			ecs.NewView[struct {
				Position *Position `ecs:"sometimes"`
			}](storage)
		})
	})
}
