package ecs

import (
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// componentStore is the type-erased face of a per-type sparse set.
// Entity slot indices are the sparse keys; values live in a dense
// slice owned by the concrete storeOf[T].
type componentStore interface {
	typeID() ComponentTypeID
	componentType() reflect.Type
	contains(index uint32) bool
	// setAny inserts or replaces the value for an entity index. The
	// value's dynamic type must be the store's component type.
	setAny(index uint32, value any)
	tryRemove(index uint32) bool
	// ptrOf returns a pointer to the dense value for an entity index,
	// or nil when absent. The pointer is invalidated by the next
	// insert or remove on this store.
	ptrOf(index uint32) unsafe.Pointer
	len() int
	clear()
}

// storeOf is a sparse-set store for one component type: an intmap
// from entity index to dense slot, plus parallel dense slices of
// values and owner indices. Removal is swap-and-pop, so dense order
// is unspecified.
type storeOf[T any] struct {
	id      ComponentTypeID
	sparse  *intmap.Map[uint32, uint32]
	values  []T
	indices []uint32
}

func newStoreOf[T any](id ComponentTypeID) *storeOf[T] {
	return &storeOf[T]{
		id:     id,
		sparse: intmap.New[uint32, uint32](64),
	}
}

func (s *storeOf[T]) typeID() ComponentTypeID {
	return s.id
}

func (s *storeOf[T]) componentType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (s *storeOf[T]) contains(index uint32) bool {
	_, ok := s.sparse.Get(index)
	return ok
}

// set inserts or replaces the value for an entity index and returns
// a pointer to the dense slot.
func (s *storeOf[T]) set(index uint32, value T) *T {
	if slot, ok := s.sparse.Get(index); ok {
		s.values[slot] = value
		return &s.values[slot]
	}
	slot := uint32(len(s.values))
	s.values = append(s.values, value)
	s.indices = append(s.indices, index)
	s.sparse.Put(index, slot)
	return &s.values[slot]
}

func (s *storeOf[T]) setAny(index uint32, value any) {
	s.set(index, value.(T))
}

func (s *storeOf[T]) tryRemove(index uint32) bool {
	slot, ok := s.sparse.Get(index)
	if !ok {
		return false
	}
	last := uint32(len(s.values) - 1)
	if slot != last {
		s.values[slot] = s.values[last]
		s.indices[slot] = s.indices[last]
		s.sparse.Put(s.indices[slot], slot)
	}
	var zero T
	s.values[last] = zero
	s.values = s.values[:last]
	s.indices = s.indices[:last]
	s.sparse.Del(index)
	return true
}

func (s *storeOf[T]) ptrOf(index uint32) unsafe.Pointer {
	slot, ok := s.sparse.Get(index)
	if !ok {
		return nil
	}
	return unsafe.Pointer(&s.values[slot])
}

func (s *storeOf[T]) len() int {
	return len(s.values)
}

func (s *storeOf[T]) clear() {
	s.sparse.Clear()
	s.values = s.values[:0]
	s.indices = s.indices[:0]
}
