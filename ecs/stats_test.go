package ecs_test

import (
	"testing"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/stretchr/testify/assert"
)

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 3; i++ {
		storage.Spawn(Position{}, Velocity{})
	}
	storage.Spawn(Health{})
	doomed := storage.Spawn(Tag("gone"))
	storage.Delete(doomed)
	storage.AddSingleton(GameClock{})

	stats := storage.CollectStats()

	assert.Equal(t, 3, stats.ArchetypeCount)
	assert.Equal(t, 4, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.GameClock"}, stats.SingletonTypes)

	assert.Len(t, stats.ArchetypeBreakdown, 3)
	assert.Equal(t, 3, stats.ArchetypeBreakdown[0].EntityCount)
	assert.Equal(t, []string{"ecs_test.Position", "ecs_test.Velocity"}, stats.ArchetypeBreakdown[0].ComponentTypes)
	assert.Equal(t, 1, stats.ArchetypeBreakdown[1].EntityCount)
	assert.Equal(t, 0, stats.ArchetypeBreakdown[2].EntityCount)
	assert.Equal(t, []string{"ecs_test.Tag"}, stats.ArchetypeBreakdown[2].ComponentTypes)
}
