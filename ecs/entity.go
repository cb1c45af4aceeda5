package ecs

// InvalidIndex is the index sentinel carried by invalid entity handles.
const InvalidIndex = ^uint32(0)

// InvalidGeneration marks an entity slot that has never been
// materialized. Live slots always carry a generation of at least 1.
const InvalidGeneration = uint32(0)

// Entity is a versioned handle to an entity: a slot index paired with
// the generation the slot had when the handle was issued. Handles are
// cheap values; a handle goes stale when its slot is recycled.
// The zero value is invalid, as is InvalidEntity.
type Entity struct {
	index      uint32
	generation uint32
}

// InvalidEntity is the canonical invalid handle.
var InvalidEntity = Entity{index: InvalidIndex, generation: InvalidGeneration}

// NewEntity assembles a handle from its raw parts. Mostly useful in
// tests and when rehydrating handles that crossed a serialization
// boundary.
func NewEntity(index, generation uint32) Entity {
	return Entity{index: index, generation: generation}
}

// Index returns the slot index of the handle.
func (e Entity) Index() uint32 {
	return e.index
}

// Generation returns the slot generation the handle was issued with.
func (e Entity) Generation() uint32 {
	return e.generation
}

// Valid reports whether the handle is structurally valid. A valid
// handle can still be stale; see World.Exists.
func (e Entity) Valid() bool {
	return e.index != InvalidIndex && e.generation != InvalidGeneration
}

// Hash packs the handle into a single uint64, suitable as a map key
// when the Entity value itself cannot be used.
func (e Entity) Hash() uint64 {
	return uint64(e.index)<<32 | uint64(e.generation)
}
