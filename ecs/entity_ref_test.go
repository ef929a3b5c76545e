package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRef(t *testing.T) {
	t.Run("same ref for the same entity", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := storage.Spawn(Position{})

		a := storage.CreateEntityRef(id)
		b := storage.CreateEntityRef(id)
		assert.Same(t, a, b)
	})

	t.Run("nil for missing entities", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := storage.Spawn(Position{})
		storage.Delete(id)

		assert.Nil(t, storage.CreateEntityRef(id))
		var ref *ecs.EntityRef
		assert.False(t, ref.Alive())
	})

	t.Run("follows archetype moves", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := storage.Spawn(Position{X: 4})
		ref := storage.CreateEntityRef(id)

		moved := storage.AddComponent(id, Velocity{DX: 1})
		assert.Equal(t, moved, ref.Id)
		assert.Same(t, storage.GetArchetype(Position{}, Velocity{}), ref.Archetype)

		moved = storage.RemoveComponent(moved, reflect.TypeFor[Velocity]())
		resolved, ok := storage.ResolveEntityRef(ref)
		assert.True(t, ok)
		assert.Equal(t, moved, resolved)
	})

	t.Run("dies with the entity", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := storage.Spawn(Position{})
		ref := storage.CreateEntityRef(id)

		storage.Delete(id)

		assert.False(t, ref.Alive())
		_, ok := storage.ResolveEntityRef(ref)
		assert.False(t, ok)

		view := ecs.NewView[struct{ *Position }](storage)
		assert.Nil(t, view.GetRef(ref))
	})

	t.Run("does not resurrect on slot reuse", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := storage.Spawn(Position{X: 1})
		ref := storage.CreateEntityRef(id)

		storage.Delete(id)
		storage.Spawn(Position{X: 2})

		assert.False(t, ref.Alive())
	})

	t.Run("follows compaction", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		gone := storage.Spawn(Position{X: 1})
		kept := storage.Spawn(Position{X: 2})
		ref := storage.CreateEntityRef(kept)

		storage.Delete(gone)
		storage.Compact()

		require.True(t, ref.Alive())
		assert.NotEqual(t, kept, ref.Id)
		assert.Same(t, ref, storage.CreateEntityRef(ref.Id))
		assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, ref.Id).X)
	})
}
