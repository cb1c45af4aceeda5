package ecs

import (
	"fmt"
	"sync/atomic"
)

// entityRegistry tracks slot generations and recycles destroyed slot
// indices through a free list. All mutation happens on the owning
// thread except reserve, which only touches the atomic next-index
// counter and is safe from any goroutine. The free-list cursor is
// atomic so create never hands out a slot that a concurrent reserve
// could also claim.
type entityRegistry struct {
	generations []uint32
	freeIndices []uint32
	flushMark   uint32

	nextIndex  atomic.Uint32
	freeCursor atomic.Int32
	liveCount  atomic.Int32
}

func newEntityRegistry() *entityRegistry {
	return &entityRegistry{}
}

// create materializes a live entity immediately, preferring a
// recycled slot over a fresh one.
func (r *entityRegistry) create() Entity {
	for {
		cursor := r.freeCursor.Load()
		if cursor <= 0 {
			break
		}
		if !r.freeCursor.CompareAndSwap(cursor, cursor-1) {
			continue
		}
		index := r.freeIndices[cursor-1]
		r.freeIndices = r.freeIndices[:cursor-1]
		r.liveCount.Add(1)
		return Entity{index: index, generation: r.generations[index]}
	}

	index := r.nextIndex.Add(1) - 1
	r.ensureSlot(index)
	r.generations[index] = 1
	r.liveCount.Add(1)
	return Entity{index: index, generation: 1}
}

// reserve claims a fresh slot index without touching any registry
// state beyond the next-index counter. The returned handle carries
// generation 1 but the slot stays unmaterialized until flushReserved
// runs; until then the entity does not exist.
func (r *entityRegistry) reserve() Entity {
	index := r.nextIndex.Add(1) - 1
	return Entity{index: index, generation: 1}
}

// flushReserved materializes every slot claimed by reserve since the
// last flush and returns the now-live handles.
func (r *entityRegistry) flushReserved() []Entity {
	next := r.nextIndex.Load()
	if next == r.flushMark {
		return nil
	}

	// Scan from the previous watermark: a create after a reserve can
	// grow the table past the reserved index, so slice length alone
	// does not bound the unmaterialized slots.
	var flushed []Entity
	start := r.flushMark
	r.ensureSlot(next - 1)
	r.flushMark = next
	for index := start; index < next; index++ {
		if r.generations[index] != InvalidGeneration {
			continue
		}
		r.generations[index] = 1
		r.liveCount.Add(1)
		flushed = append(flushed, Entity{index: index, generation: 1})
	}
	return flushed
}

// destroy releases the entity's slot. The handle must be valid and
// refer to a live entity.
func (r *entityRegistry) destroy(e Entity) {
	if !e.Valid() {
		panic(fmt.Sprintf("ecs: destroy of invalid entity handle %v", e))
	}
	if !r.tryDestroy(e) {
		panic(fmt.Sprintf("ecs: destroy of dead entity {index: %d, generation: %d}", e.index, e.generation))
	}
}

// tryDestroy releases the entity's slot if the handle is still live.
func (r *entityRegistry) tryDestroy(e Entity) bool {
	if !r.exists(e) {
		return false
	}
	r.generations[e.index]++
	r.freeIndices = append(r.freeIndices, e.index)
	r.freeCursor.Store(int32(len(r.freeIndices)))
	r.liveCount.Add(-1)
	return true
}

// exists reports whether the handle refers to a live, materialized
// entity. Reserved-but-unflushed handles do not exist yet.
func (r *entityRegistry) exists(e Entity) bool {
	return e.Valid() &&
		e.index < uint32(len(r.generations)) &&
		r.generations[e.index] == e.generation
}

func (r *entityRegistry) count() int {
	return int(r.liveCount.Load())
}

// grow pre-sizes the generation table for at least n total slots.
func (r *entityRegistry) grow(n int) {
	if n > cap(r.generations) {
		next := make([]uint32, len(r.generations), n)
		copy(next, r.generations)
		r.generations = next
	}
}

// clear forgets every entity and recycled slot. Outstanding handles
// all go stale.
func (r *entityRegistry) clear() {
	r.generations = r.generations[:0]
	r.freeIndices = r.freeIndices[:0]
	r.flushMark = 0
	r.nextIndex.Store(0)
	r.freeCursor.Store(0)
	r.liveCount.Store(0)
}

func (r *entityRegistry) ensureSlot(index uint32) {
	for uint32(len(r.generations)) <= index {
		r.generations = append(r.generations, InvalidGeneration)
	}
}
