package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spaceshooter/ecs"
)

// Archetype table columns.
const (
	columnID = iota
	columnComponents
	columnEntities
)

// ArchetypeViewer lists archetypes in a sortable table. Clicking a row selects it for
// the EntityInspector.
type ArchetypeViewer struct {
	storage   *ecs.Storage
	selection *Selection

	sortColumn    int
	sortAscending bool
}

func NewArchetypeViewer(storage *ecs.Storage, selection *Selection) *ArchetypeViewer {
	return &ArchetypeViewer{
		storage:    storage,
		selection:  selection,
		sortColumn: columnEntities,
	}
}

func (av *ArchetypeViewer) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(440, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(520, 260), imgui.CondOnce)
	if !imgui.BeginV("Archetypes", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rows := av.storage.CollectStats().ArchetypeBreakdown
	maxCount := 0
	for _, row := range rows {
		maxCount = max(maxCount, row.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		specs := imgui.TableGetSortSpecs()
		if specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			av.sortColumn = int(spec.ColumnIndex())
			av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			specs.SetSpecsDirty(false)
		}
		sortArchetypes(rows, av.sortColumn, av.sortAscending)

		for _, row := range rows {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			selected := av.selection.Archetype == row.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%08X", row.ID), selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				av.selection.selectArchetype(row.ID)
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.EntityCount))
			if maxCount > 0 {
				width := float32(row.EntityCount) / float32(maxCount) * 60
				imgui.SameLine()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.86, 0.08, 0.24, 0.6))
				imgui.WindowDrawList().AddRectFilled(pos, imgui.NewVec2(pos.X+width, pos.Y+10), color)
			}
		}
		imgui.EndTable()
	}

	imgui.End()
}

func sortArchetypes(rows []ecs.ArchetypeStats, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool
		switch column {
		case columnID:
			less = a.ID < b.ID
		case columnComponents:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			if a.EntityCount == b.EntityCount {
				return a.ID < b.ID
			}
			less = a.EntityCount < b.EntityCount
		}
		if ascending {
			return less
		}
		return !less && !equalRows(a, b, column)
	})
}

func equalRows(a, b ecs.ArchetypeStats, column int) bool {
	switch column {
	case columnID:
		return a.ID == b.ID
	case columnComponents:
		return strings.Join(a.ComponentTypes, ",") == strings.Join(b.ComponentTypes, ",")
	default:
		return a.EntityCount == b.EntityCount
	}
}
