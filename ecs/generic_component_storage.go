package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry holds the storage factories for every component type a Storage may hold.
// Each Storage owns one registry, so independent worlds never share component tables.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers T with the registry.
// Spawning an entity with an unregistered component type panics.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores components of type T in fixed-size blocks.
// Blocks are individually allocated so component pointers stay valid while the table grows.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	filled    []*[genericBlockSize]bool
	freeSlots []int
	nextIndex int
	live      int
}

func (cs *genericComponentStorage[T]) slot(index int) (int, int, bool) {
	if index < 0 {
		return 0, 0, false
	}
	blockIdx := index / genericBlockSize
	if blockIdx >= len(cs.blocks) {
		return 0, 0, false
	}
	return blockIdx, index % genericBlockSize, true
}

// Append stores the component and returns its slot index, reusing freed slots first.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
			cs.filled = append(cs.filled, new([genericBlockSize]bool))
		}
	}

	blockIdx, slotIdx, _ := cs.slot(index)
	cs.blocks[blockIdx][slotIdx] = value
	cs.filled[blockIdx][slotIdx] = true
	cs.live++
	return index
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (cs *genericComponentStorage[T]) Get(index int) any {
	blockIdx, slotIdx, ok := cs.slot(index)
	if !ok || !cs.filled[blockIdx][slotIdx] {
		return nil
	}
	return &cs.blocks[blockIdx][slotIdx]
}

// Delete empties the slot and queues it for reuse.
func (cs *genericComponentStorage[T]) Delete(index int) {
	blockIdx, slotIdx, ok := cs.slot(index)
	if !ok || !cs.filled[blockIdx][slotIdx] {
		return
	}

	var zero T
	cs.filled[blockIdx][slotIdx] = false
	cs.blocks[blockIdx][slotIdx] = zero
	cs.freeSlots = append(cs.freeSlots, index)
	cs.live--
}

func (cs *genericComponentStorage[T]) Has(index int) bool {
	blockIdx, slotIdx, ok := cs.slot(index)
	return ok && cs.filled[blockIdx][slotIdx]
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.live
}

// Compact moves live components to the front and returns the old->new index mapping.
func (cs *genericComponentStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int, cs.live)
	if cs.live == 0 {
		cs.blocks = nil
		cs.filled = nil
		cs.freeSlots = nil
		cs.nextIndex = 0
		return indexMap
	}

	numBlocks := (cs.live + genericBlockSize - 1) / genericBlockSize
	newBlocks := make([]*[genericBlockSize]T, numBlocks)
	newFilled := make([]*[genericBlockSize]bool, numBlocks)
	for i := range newBlocks {
		newBlocks[i] = new([genericBlockSize]T)
		newFilled[i] = new([genericBlockSize]bool)
	}

	writePos := 0
	for readIdx := 0; readIdx < cs.nextIndex; readIdx++ {
		rb, rs, _ := cs.slot(readIdx)
		if !cs.filled[rb][rs] {
			continue
		}
		indexMap[readIdx] = writePos
		wb, ws := writePos/genericBlockSize, writePos%genericBlockSize
		newBlocks[wb][ws] = cs.blocks[rb][rs]
		newFilled[wb][ws] = true
		writePos++
	}

	cs.blocks = newBlocks
	cs.filled = newFilled
	cs.freeSlots = nil
	cs.nextIndex = writePos
	return indexMap
}

// Iter yields the indices of all filled slots in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			blockIdx, slotIdx, ok := cs.slot(i)
			if !ok {
				return
			}
			if cs.filled[blockIdx][slotIdx] && !yield(i) {
				return
			}
		}
	}
}
