package ecs_test

import (
	"testing"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/stretchr/testify/assert"
)

func TestQuery(t *testing.T) {
	t.Run("sees archetypes created after init", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		query := ecs.NewQuery[struct{ *Position }](storage)

		assert.True(t, query.Empty())

		storage.Spawn(Position{X: 1})
		assert.Equal(t, 1, query.Count())

		storage.Spawn(Position{X: 2}, Velocity{})
		assert.Equal(t, 2, query.Count())
	})

	t.Run("first", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		query := ecs.NewQuery[struct{ *Score }](storage)

		_, ok := query.First()
		assert.False(t, ok)

		storage.Spawn(Score(3))
		item, ok := query.First()
		assert.True(t, ok)
		assert.Equal(t, Score(3), *item.Score)
	})

	t.Run("iteration order is stable", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		for i := 0; i < 5; i++ {
			storage.Spawn(Position{X: float32(i)})
			storage.Spawn(Position{X: float32(i)}, Health{})
			storage.Spawn(Position{X: float32(i)}, Tag("x"))
		}

		query := ecs.NewQuery[struct{ *Position }](storage)
		collect := func() []float32 {
			var out []float32
			for item := range query.Iter() {
				out = append(out, item.Position.X)
			}
			return out
		}

		first := collect()
		assert.Len(t, first, 15)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, collect())
		}
	})

	t.Run("get and get ref", func(t *testing.T) {
		storage := ecs.NewStorage(newTestRegistry())
		id := storage.Spawn(Position{X: 8})
		ref := storage.CreateEntityRef(id)

		query := ecs.NewQuery[struct{ *Position }](storage)
		assert.Equal(t, float32(8), query.Get(id).Position.X)
		assert.Equal(t, float32(8), query.GetRef(ref).Position.X)

		storage.Delete(id)
		assert.Nil(t, query.GetRef(ref))
	})

	t.Run("panics before init", func(t *testing.T) {
		var query ecs.Query[struct{ *Position }]
		assert.Panics(t, func() { query.Count() })
	})
}
