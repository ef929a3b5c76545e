package ecs

// EntityId packs the archetype ID into the upper 32 bits, a slot generation into the next 8
// and the slot index into the lower 24. The generation changes every time the slot is freed,
// so an id never resolves to a later occupant of its slot.
type EntityId uint64

const (
	entityIndexBits = 24
	entityIndexMask = 1<<entityIndexBits - 1

	// MaxEntitiesPerArchetype is the number of slots one archetype can address.
	MaxEntitiesPerArchetype = entityIndexMask + 1
)

// NewEntityId creates an EntityId from an archetype ID, slot generation and slot index.
func NewEntityId(archetypeId uint32, generation uint8, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(generation)<<entityIndexBits | uint64(index&entityIndexMask))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint8 {
	return uint8(e >> entityIndexBits)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e) & entityIndexMask
}

// EntityRef follows an entity across archetype moves and compaction.
// Id is zero once the entity has been deleted.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Alive reports whether the referenced entity still exists.
func (r *EntityRef) Alive() bool {
	return r != nil && r.Id != 0
}
