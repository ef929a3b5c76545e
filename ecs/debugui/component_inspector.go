package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spaceshooter/ecs"
)

// Selection is shared between the archetype viewer and the entity inspector.
type Selection struct {
	Archetype uint32
	Entity    ecs.EntityId
}

func (s *Selection) selectArchetype(id uint32) {
	if s.Archetype != id {
		s.Entity = 0
	}
	s.Archetype = id
}

const maxListedEntities = 200

// EntityInspector lists the entities of the selected archetype and edits the scalar
// fields of the selected entity's components in place.
type EntityInspector struct {
	storage   *ecs.Storage
	selection *Selection
}

func NewEntityInspector(storage *ecs.Storage, selection *Selection) *EntityInspector {
	return &EntityInspector{storage: storage, selection: selection}
}

func (ei *EntityInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(440, 280), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(520, 400), imgui.CondOnce)
	if !imgui.BeginV("Entity Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	archetype := ei.archetype()
	if archetype == nil {
		imgui.Text("Select an archetype")
		return
	}

	if imgui.TreeNodeStr("Entities") {
		n := 0
		for id := range archetype.Iter() {
			if n == maxListedEntities {
				imgui.Text("...")
				break
			}
			selected := ei.selection.Entity == id
			if imgui.SelectableBoolV(fmt.Sprintf("%d.%d##%d", id.Index(), id.Generation(), id), selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				ei.selection.Entity = id
			}
			n++
		}
		imgui.TreePop()
	}

	imgui.Separator()
	ei.renderEntity(archetype)
}

func (ei *EntityInspector) archetype() *ecs.Archetype {
	for _, archetype := range ei.storage.GetArchetypes() {
		if archetype.ID() == ei.selection.Archetype {
			return archetype
		}
	}
	return nil
}

func (ei *EntityInspector) renderEntity(archetype *ecs.Archetype) {
	id := ei.selection.Entity
	if id == 0 || id.ArchetypeId() != archetype.ID() || !ei.storage.Exists(id) {
		imgui.Text("No entity selected")
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d (slot %d, generation %d)", id, id.Index(), id.Generation()))
	imgui.Separator()
	for _, typ := range archetype.Types() {
		component := ei.storage.GetComponent(id, typ)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(typ.String()) {
			renderValue(typ.String(), reflect.ValueOf(component))
			imgui.TreePop()
		}
	}
}

// renderValue draws an editor for v. Pointers are followed; editable values write
// straight back into component storage.
func renderValue(label string, v reflect.Value) {
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			imgui.Text(label + ": nil")
			return
		}
		v = v.Elem()
	}

	id := "##" + label
	switch v.Kind() {
	case reflect.Struct:
		fields := exportedFields(v.Type())
		if len(fields) == 0 {
			imgui.Text(fmt.Sprintf("%s: %v", label, v.Interface()))
			return
		}
		for _, field := range fields {
			renderValue(field.Name, v.Field(field.Index))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := int32(v.Int())
		inputLabel(label)
		if imgui.InputInt(id, &n) && v.CanSet() {
			setNumber(v, float64(n))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := int32(v.Uint())
		inputLabel(label)
		if imgui.InputInt(id, &n) && v.CanSet() && n >= 0 {
			setNumber(v, float64(n))
		}
	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		inputLabel(label)
		if imgui.InputFloat(id, &f) && v.CanSet() {
			setNumber(v, float64(f))
		}
	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(label, &b) && v.CanSet() {
			v.SetBool(b)
		}
	case reflect.String:
		s := v.String()
		inputLabel(label)
		if imgui.InputTextWithHint(id, "", &s, imgui.InputTextFlagsNone, nil) && v.CanSet() {
			v.SetString(s)
		}
	case reflect.Slice, reflect.Map:
		imgui.Text(fmt.Sprintf("%s: %s[%d]", label, v.Kind(), v.Len()))
	default:
		imgui.Text(fmt.Sprintf("%s: %v", label, v))
	}
}

func inputLabel(label string) {
	imgui.Text(label + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}

// setNumber stores f into a numeric value of any width.
func setNumber(v reflect.Value, f float64) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := int64(f)
		if !v.OverflowInt(n) {
			v.SetInt(n)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if f < 0 {
			return
		}
		n := uint64(f)
		if !v.OverflowUint(n) {
			v.SetUint(n)
		}
	case reflect.Float32, reflect.Float64:
		if !v.OverflowFloat(f) {
			v.SetFloat(f)
		}
	}
}
