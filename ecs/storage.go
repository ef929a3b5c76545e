package ecs

import (
	"reflect"
	"sort"
	"unsafe"
	"weak"
)

// Storage is the entity registry: archetype tables plus entity-less singleton components.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry

	singletons   map[reflect.Type]*singletonEntry
	singletonGen uint64
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// CreateEntityRef returns the shared EntityRef for id, creating it on first use.
// Returns nil when the entity does not exist.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.Contains(id) {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}
	archetype.refs.Put(id, weak.Make(ref))

	return ref
}

// ResolveEntityRef returns the current EntityId behind ref, or false if it was deleted.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

// GetArchetype returns the archetype holding exactly these component types, if one exists.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypes returns every archetype that has been created, in no particular order.
func (s *Storage) GetArchetypes() []*Archetype {
	out := make([]*Archetype, 0, len(s.archetypes))
	for _, archetype := range s.archetypes {
		out = append(out, archetype)
	}
	return out
}

func (s *Storage) archetypeFor(types []reflect.Type) (uint32, *Archetype) {
	archetypeId := hashTypesToUint32(types)
	archetype, exists := s.archetypes[archetypeId]
	if !exists {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
	}
	return archetypeId, archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	_, archetype := s.archetypeFor(extractComponentTypes(components))
	return archetype.Spawn(components)
}

// Delete removes the entity. Deleting an unknown or already-deleted entity is a no-op.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Contains(id) {
		return false
	}

	archetype.Delete(id)
	return true
}

// Exists reports whether id refers to a live entity.
func (s *Storage) Exists(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Contains(id)
}

// moveEntity respawns the entity into the archetype for newTypes, carrying components over
// and retargeting any EntityRef. replacement overrides the value for its own type.
func (s *Storage) moveEntity(id EntityId, oldArchetype *Archetype, newTypes []reflect.Type, replacement any) EntityId {
	_, newArchetype := s.archetypeFor(newTypes)

	var replacementType reflect.Type
	if replacement != nil {
		replacementType = reflect.TypeOf(replacement)
		if replacementType.Kind() == reflect.Ptr {
			replacementType = replacementType.Elem()
		}
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == replacementType {
			components = append(components, replacement)
		} else {
			components = append(components, oldArchetype.GetComponent(id, typ))
		}
	}

	weakPtr, hasRef := oldArchetype.refs.Get(id)
	if hasRef {
		oldArchetype.refs.Del(id)
	}

	newId := newArchetype.Spawn(components)
	oldArchetype.Delete(id)

	if hasRef {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = newArchetype
			newArchetype.refs.Put(newId, weakPtr)
		}
	}

	return newId
}

// AddComponent moves the entity to the archetype that also includes component.
// If the entity already has that type the value is overwritten in place.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	oldArchetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !oldArchetype.Contains(id) {
		return 0
	}

	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	if existing := oldArchetype.GetComponent(id, compType); existing != nil {
		value := reflect.ValueOf(component)
		if value.Kind() == reflect.Ptr {
			value = value.Elem()
		}
		reflect.ValueOf(existing).Elem().Set(value)
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sort.Sort(byTypeName(newTypes))

	return s.moveEntity(id, oldArchetype, newTypes, component)
}

// RemoveComponent moves the entity to the archetype without compType.
// Removing the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	oldArchetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !oldArchetype.Contains(id) {
		return 0
	}
	if !oldArchetype.HasComponent(compType) {
		return id
	}

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		oldArchetype.Delete(id)
		return 0
	}

	return s.moveEntity(id, oldArchetype, newTypes, nil)
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Contains(id) {
		return false
	}
	return archetype.HasComponent(compType)
}

// Compact packs every archetype, releasing the slots freed since the last compaction.
// EntityRefs follow their entities; plain EntityIds stop resolving. See Archetype.Compact.
func (s *Storage) Compact() {
	for _, archetype := range s.archetypes {
		archetype.Compact()
	}
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 hashes a sorted type list with FNV-1a over the type descriptor addresses.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
