package debugui

import (
	"reflect"
	"testing"
	"time"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/stretchr/testify/assert"
)

func TestFrameHistory(t *testing.T) {
	h := newFrameHistory(3)
	assert.Zero(t, h.average())

	h.push(10)
	h.push(20)
	assert.InDelta(t, 15, h.average(), 1e-6, "unwritten slots are not averaged")

	h.push(30)
	h.push(40)
	assert.Equal(t, []float32{40, 20, 30}, h.samples)
	assert.InDelta(t, 30, h.average(), 1e-6)
}

func TestPerformanceStatsSample(t *testing.T) {
	ps := &PerformanceStats{history: newFrameHistory(4)}
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	ps.sample(start)
	assert.Zero(t, ps.history.filled, "first sample only sets the baseline")

	ps.sample(start.Add(16 * time.Millisecond))
	assert.InDelta(t, 16, ps.history.average(), 1e-3)
}

func TestSortArchetypes(t *testing.T) {
	rows := func() []ecs.ArchetypeStats {
		return []ecs.ArchetypeStats{
			{ID: 3, ComponentTypes: []string{"game.Enemy", "game.Position"}, EntityCount: 5},
			{ID: 1, ComponentTypes: []string{"game.Laser", "game.Position"}, EntityCount: 12},
			{ID: 2, ComponentTypes: []string{"game.Button"}, EntityCount: 5},
		}
	}
	ids := func(rs []ecs.ArchetypeStats) []uint32 {
		var out []uint32
		for _, r := range rs {
			out = append(out, r.ID)
		}
		return out
	}

	r := rows()
	sortArchetypes(r, columnEntities, false)
	assert.Equal(t, []uint32{1, 2, 3}, ids(r))

	r = rows()
	sortArchetypes(r, columnEntities, true)
	assert.Equal(t, []uint32{2, 3, 1}, ids(r))

	r = rows()
	sortArchetypes(r, columnID, true)
	assert.Equal(t, []uint32{1, 2, 3}, ids(r))

	r = rows()
	sortArchetypes(r, columnComponents, false)
	assert.Equal(t, []uint32{1, 3, 2}, ids(r))
}

func TestSelection(t *testing.T) {
	sel := &Selection{Archetype: 7, Entity: ecs.NewEntityId(7, 0, 3)}

	sel.selectArchetype(7)
	assert.Equal(t, ecs.NewEntityId(7, 0, 3), sel.Entity, "reselecting keeps the entity")

	sel.selectArchetype(9)
	assert.Equal(t, uint32(9), sel.Archetype)
	assert.Zero(t, sel.Entity)
}

type probe struct {
	Speed   float64
	Lives   int8
	Kills   uint16
	Visible bool
	Name    string
	hidden  int
}

func TestExportedFields(t *testing.T) {
	fields := exportedFields(reflect.TypeFor[probe]())
	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Speed", "Lives", "Kills", "Visible", "Name"}, names)
	assert.Empty(t, exportedFields(reflect.TypeFor[int]()))
}

func TestSetNumber(t *testing.T) {
	p := &probe{hidden: 1}
	v := reflect.ValueOf(p).Elem()

	setNumber(v.FieldByName("Speed"), 2.5)
	setNumber(v.FieldByName("Lives"), 3)
	setNumber(v.FieldByName("Kills"), 40)
	assert.Equal(t, 2.5, p.Speed)
	assert.Equal(t, int8(3), p.Lives)
	assert.Equal(t, uint16(40), p.Kills)

	setNumber(v.FieldByName("Lives"), 1000)
	assert.Equal(t, int8(3), p.Lives, "overflow is ignored")

	setNumber(v.FieldByName("Kills"), -1)
	assert.Equal(t, uint16(40), p.Kills, "negative values are ignored for unsigned fields")
}
