package ecs

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/kamstrup/intmap"
)

// Archetype is one node of the archetype graph: the set of entities
// carrying exactly the same component-type combination. Nodes cache
// add/remove edges to the neighbouring combinations so the common
// single-component transitions skip the signature lookup.
type Archetype struct {
	slot     uint32
	typeIDs  []ComponentTypeID // sorted
	entities []Entity
	position *intmap.Map[uint32, uint32] // entity index -> dense position

	addEdges    *intmap.Map[uint32, uint32] // component type id -> target slot
	removeEdges *intmap.Map[uint32, uint32]
}

func newArchetype(slot uint32, typeIDs []ComponentTypeID) *Archetype {
	return &Archetype{
		slot:        slot,
		typeIDs:     typeIDs,
		position:    intmap.New[uint32, uint32](64),
		addEdges:    intmap.New[uint32, uint32](8),
		removeEdges: intmap.New[uint32, uint32](8),
	}
}

// TypeIDs returns the node's sorted component signature. The slice is
// shared; callers must not mutate it.
func (a *Archetype) TypeIDs() []ComponentTypeID {
	return a.typeIDs
}

// Len returns the number of entities in the node.
func (a *Archetype) Len() int {
	return len(a.entities)
}

// Entities returns the node's dense entity list. The slice is shared
// and reordered by structural changes.
func (a *Archetype) Entities() []Entity {
	return a.entities
}

func (a *Archetype) hasType(id ComponentTypeID) bool {
	_, ok := slices.BinarySearch(a.typeIDs, id)
	return ok
}

func (a *Archetype) contains(index uint32) bool {
	_, ok := a.position.Get(index)
	return ok
}

func (a *Archetype) add(e Entity) {
	a.position.Put(e.index, uint32(len(a.entities)))
	a.entities = append(a.entities, e)
}

func (a *Archetype) remove(index uint32) {
	pos, ok := a.position.Get(index)
	if !ok {
		return
	}
	last := uint32(len(a.entities) - 1)
	if pos != last {
		a.entities[pos] = a.entities[last]
		a.position.Put(a.entities[pos].index, pos)
	}
	a.entities = a.entities[:last]
	a.position.Del(index)
}

// signatureHash keys the archetype map: xxhash over the sorted ID
// list's raw bytes.
func signatureHash(ids []ComponentTypeID) uint64 {
	d := xxhash.New()
	var buf [4]byte
	for _, id := range ids {
		binary.LittleEndian.PutUint32(buf[:], uint32(id))
		d.Write(buf[:])
	}
	return d.Sum64()
}

// archetypeIndex owns every archetype node and tracks which node each
// entity lives in. Nodes are addressed by slot, never by pointer, so
// node creation cannot invalidate references held across calls.
// Slot 0 is the empty archetype, the home of component-less entities.
type archetypeIndex struct {
	nodes       []*Archetype
	bySignature map[uint64]uint32
	byEntity    *intmap.Map[uint32, uint32] // entity index -> slot

	// version increments on every entity move between nodes; queries
	// use it to invalidate their cached node lists.
	version uint64
}

const emptyArchetypeSlot = uint32(0)

func newArchetypeIndex() *archetypeIndex {
	idx := &archetypeIndex{
		bySignature: make(map[uint64]uint32),
		byEntity:    intmap.New[uint32, uint32](256),
	}
	// Slot 0: the empty signature.
	idx.getOrCreate(nil)
	return idx
}

// Len returns the number of archetype nodes, the empty one included.
func (ai *archetypeIndex) Len() int {
	return len(ai.nodes)
}

func (ai *archetypeIndex) node(slot uint32) *Archetype {
	return ai.nodes[slot]
}

func (ai *archetypeIndex) slotOf(index uint32) (uint32, bool) {
	return ai.byEntity.Get(index)
}

// getOrCreate returns the slot for a sorted signature, creating the
// node on first use. The signature slice is copied on create.
func (ai *archetypeIndex) getOrCreate(sorted []ComponentTypeID) uint32 {
	h := signatureHash(sorted)
	if slot, ok := ai.bySignature[h]; ok {
		return slot
	}
	slot := uint32(len(ai.nodes))
	ai.nodes = append(ai.nodes, newArchetype(slot, slices.Clone(sorted)))
	ai.bySignature[h] = slot
	return slot
}

// addEntity homes a fresh entity in the empty archetype.
func (ai *archetypeIndex) addEntity(e Entity) {
	ai.nodes[emptyArchetypeSlot].add(e)
	ai.byEntity.Put(e.index, emptyArchetypeSlot)
	ai.version++
}

// removeEntity drops an entity from whichever node holds it.
func (ai *archetypeIndex) removeEntity(index uint32) {
	slot, ok := ai.byEntity.Get(index)
	if !ok {
		return
	}
	ai.nodes[slot].remove(index)
	ai.byEntity.Del(index)
	ai.version++
}

// moveOnAdd relocates an entity along the add edge for one component
// type, populating the edge pair on first traversal.
func (ai *archetypeIndex) moveOnAdd(e Entity, id ComponentTypeID) {
	from := ai.mustSlotOf(e)
	node := ai.nodes[from]

	target, ok := node.addEdges.Get(uint32(id))
	if !ok {
		sig := insertSorted(node.typeIDs, id)
		target = ai.getOrCreate(sig)
		// Node pointers may be stale after getOrCreate grew the node
		// list; re-read through the slot.
		ai.nodes[from].addEdges.Put(uint32(id), target)
		ai.nodes[target].removeEdges.Put(uint32(id), from)
	}
	ai.moveEntity(e, from, target)
}

// moveOnRemove relocates an entity along the remove edge for one
// component type. Removing the last component lands the entity in the
// empty archetype.
func (ai *archetypeIndex) moveOnRemove(e Entity, id ComponentTypeID) {
	from := ai.mustSlotOf(e)
	node := ai.nodes[from]

	target, ok := node.removeEdges.Get(uint32(id))
	if !ok {
		sig := deleteSorted(node.typeIDs, id)
		target = ai.getOrCreate(sig)
		ai.nodes[from].removeEdges.Put(uint32(id), target)
		ai.nodes[target].addEdges.Put(uint32(id), from)
	}
	ai.moveEntity(e, from, target)
}

// rebuild recomputes an entity's node from its full sorted signature.
// Used by the multi-component operations that batch several changes
// into one relocation.
func (ai *archetypeIndex) rebuild(e Entity, sorted []ComponentTypeID) {
	from := ai.mustSlotOf(e)
	target := ai.getOrCreate(sorted)
	if target != from {
		ai.moveEntity(e, from, target)
	}
}

func (ai *archetypeIndex) moveEntity(e Entity, from, to uint32) {
	if from == to {
		return
	}
	ai.nodes[from].remove(e.index)
	ai.nodes[to].add(e)
	ai.byEntity.Put(e.index, to)
	ai.version++
}

func (ai *archetypeIndex) mustSlotOf(e Entity) uint32 {
	slot, ok := ai.byEntity.Get(e.index)
	if !ok {
		panic(fmt.Sprintf("ecs: entity {index: %d, generation: %d} has no archetype", e.index, e.generation))
	}
	return slot
}

// clear drops every node except the empty archetype, which is
// recreated fresh. Edges and signatures are rebuilt lazily.
func (ai *archetypeIndex) clear() {
	ai.nodes = ai.nodes[:0]
	ai.bySignature = make(map[uint64]uint32)
	ai.byEntity.Clear()
	ai.getOrCreate(nil)
	ai.version++
}

func insertSorted(sorted []ComponentTypeID, id ComponentTypeID) []ComponentTypeID {
	pos, ok := slices.BinarySearch(sorted, id)
	if ok {
		return slices.Clone(sorted)
	}
	out := make([]ComponentTypeID, 0, len(sorted)+1)
	out = append(out, sorted[:pos]...)
	out = append(out, id)
	out = append(out, sorted[pos:]...)
	return out
}

func deleteSorted(sorted []ComponentTypeID, id ComponentTypeID) []ComponentTypeID {
	pos, ok := slices.BinarySearch(sorted, id)
	if !ok {
		return slices.Clone(sorted)
	}
	out := make([]ComponentTypeID, 0, len(sorted)-1)
	out = append(out, sorted[:pos]...)
	out = append(out, sorted[pos+1:]...)
	return out
}
