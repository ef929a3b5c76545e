package ecs

import (
	"iter"
)

// Query is a View that remembers which archetypes match, for use as a system field.
// The archetype list is rebuilt whenever the storage gains a new archetype.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the Query to storage. The Scheduler calls it for Query fields of systems.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
}

func (q *Query[T]) archetypes() []*Archetype {
	if q.storage == nil {
		panic("Query used before Init")
	}
	if count := len(q.storage.archetypes); count != q.lastArchetypeCount {
		q.cachedArchetypes = q.view.sortedArchetypes()
		q.lastArchetypeCount = count
	}
	return q.cachedArchetypes
}

// Iter yields a populated view struct for every matching entity.
// Component pointers stay valid until the entity is deleted or moved.
func (q *Query[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, archetype := range q.archetypes() {
			if !q.view.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// First returns the first matching entity. Use it for "the one" entity of a kind
// instead of assuming exactly one exists.
func (q *Query[T]) First() (T, bool) {
	for item := range q.Iter() {
		return item, true
	}
	var zero T
	return zero, false
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for _, archetype := range q.archetypes() {
		n += archetype.Len()
	}
	return n
}

// Empty reports whether no entity matches.
func (q *Query[T]) Empty() bool {
	return q.Count() == 0
}

// Get returns the view for a specific entity, or nil.
func (q *Query[T]) Get(id EntityId) *T {
	return q.view.Get(id)
}

// GetRef returns the view for the entity behind ref, or nil once it is gone.
func (q *Query[T]) GetRef(ref *EntityRef) *T {
	return q.view.GetRef(ref)
}
