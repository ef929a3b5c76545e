package ecs

import (
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype holds every entity that has exactly one particular set of component types.
// Each component type gets its own table; an entity's slot index is the same in all of them.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]

	// generations[i] is the generation of the entity in slot i, or of the next one to use it.
	generations []uint8
	// baseGeneration is handed to slots that have never been used.
	baseGeneration uint8
}

// NewArchetype creates an archetype for the given sorted component types.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

func (a *Archetype) typeIndex(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

func (a *Archetype) entityId(index uint32) EntityId {
	return NewEntityId(a.id, a.generations[index], index)
}

// Spawn appends one entity built from components and returns its id.
func (a *Archetype) Spawn(components []any) EntityId {
	storagePos := -1
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		idx := a.typeIndex(compType)
		if idx == -1 {
			panic("component type " + compType.String() + " does not belong to archetype")
		}
		storagePos = a.storages[idx].Append(comp)
	}
	if storagePos >= MaxEntitiesPerArchetype {
		panic("archetype " + a.types[0].String() + " is full")
	}

	index := uint32(storagePos)
	for len(a.generations) <= storagePos {
		a.generations = append(a.generations, a.baseGeneration)
	}
	return a.entityId(index)
}

// GetComponent returns a pointer to the entity's component of compType, or nil when the
// entity is gone or has no such component.
func (a *Archetype) GetComponent(id EntityId, compType reflect.Type) any {
	idx := a.typeIndex(compType)
	if idx == -1 || !a.Contains(id) {
		return nil
	}
	return a.storages[idx].Get(int(id.Index()))
}

// Delete frees the entity's slot in every table, bumps the slot generation and
// invalidates its EntityRef.
func (a *Archetype) Delete(id EntityId) {
	if !a.Contains(id) {
		return
	}

	if weakPtr, ok := a.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}

	index := id.Index()
	for _, storage := range a.storages {
		storage.Delete(int(index))
	}
	a.generations[index]++
}

// Contains reports whether id names the entity currently living in its slot.
func (a *Archetype) Contains(id EntityId) bool {
	if len(a.storages) == 0 || id.ArchetypeId() != a.id {
		return false
	}
	index := id.Index()
	if int(index) >= len(a.generations) || a.generations[index] != id.Generation() {
		return false
	}
	return a.storages[0].Has(int(index))
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's hash identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Compact packs all tables so live entities occupy the lowest slots.
// Live EntityRefs are rewritten to the new slot indices; dead weak pointers are dropped.
// Every slot moves to a generation newer than any id handed out before, so plain EntityIds
// held outside an EntityRef stop resolving instead of aliasing a moved entity.
func (a *Archetype) Compact() {
	if len(a.storages) == 0 {
		return
	}

	oldGenerations := a.generations
	next := a.baseGeneration
	for _, g := range oldGenerations {
		if g > next {
			next = g
		}
	}
	next++

	indexMap := a.storages[0].Compact()
	for i := 1; i < len(a.storages); i++ {
		a.storages[i].Compact()
	}

	a.baseGeneration = next
	a.generations = make([]uint8, len(indexMap))
	for i := range a.generations {
		a.generations[i] = next
	}

	moved := make(map[EntityId]weak.Pointer[EntityRef], a.refs.Len())
	for oldIdx, newIdx := range indexMap {
		weakPtr, ok := a.refs.Get(NewEntityId(a.id, oldGenerations[oldIdx], uint32(oldIdx)))
		if !ok {
			continue
		}
		if ref := weakPtr.Value(); ref != nil {
			newId := a.entityId(uint32(newIdx))
			ref.Id = newId
			moved[newId] = weakPtr
		}
	}

	a.refs.Clear()
	for id, weakPtr := range moved {
		a.refs.Put(id, weakPtr)
	}
}

// Iter yields the IDs of all live entities in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}

		for index := range a.storages[0].Iter() {
			if !yield(a.entityId(uint32(index))) {
				return
			}
		}
	}
}
