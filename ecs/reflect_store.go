package ecs

import (
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// reflectStore is the fallback sparse set for component types first
// observed through the reflect-typed surface (AddComponents and
// friends), where no type parameter is available to instantiate
// storeOf. Same layout as storeOf, dense values held in an
// addressable reflect slice.
type reflectStore struct {
	id      ComponentTypeID
	typ     reflect.Type
	sparse  *intmap.Map[uint32, uint32]
	values  reflect.Value // addressable []T
	indices []uint32
}

func newReflectStore(typ reflect.Type, id ComponentTypeID) *reflectStore {
	return &reflectStore{
		id:     id,
		typ:    typ,
		sparse: intmap.New[uint32, uint32](64),
		values: reflect.New(reflect.SliceOf(typ)).Elem(),
	}
}

func (s *reflectStore) typeID() ComponentTypeID {
	return s.id
}

func (s *reflectStore) componentType() reflect.Type {
	return s.typ
}

func (s *reflectStore) contains(index uint32) bool {
	_, ok := s.sparse.Get(index)
	return ok
}

func (s *reflectStore) setAny(index uint32, value any) {
	v := reflect.ValueOf(value)
	if v.Type() != s.typ {
		panic("ecs: component value type " + v.Type().String() + " does not match store type " + s.typ.String())
	}
	if slot, ok := s.sparse.Get(index); ok {
		s.values.Index(int(slot)).Set(v)
		return
	}
	slot := uint32(s.values.Len())
	s.values.Set(reflect.Append(s.values, v))
	s.indices = append(s.indices, index)
	s.sparse.Put(index, slot)
}

func (s *reflectStore) tryRemove(index uint32) bool {
	slot, ok := s.sparse.Get(index)
	if !ok {
		return false
	}
	last := s.values.Len() - 1
	if int(slot) != last {
		s.values.Index(int(slot)).Set(s.values.Index(last))
		s.indices[slot] = s.indices[last]
		s.sparse.Put(s.indices[slot], slot)
	}
	s.values.Index(last).SetZero()
	s.values.SetLen(last)
	s.indices = s.indices[:last]
	s.sparse.Del(index)
	return true
}

func (s *reflectStore) ptrOf(index uint32) unsafe.Pointer {
	slot, ok := s.sparse.Get(index)
	if !ok {
		return nil
	}
	return s.values.Index(int(slot)).Addr().UnsafePointer()
}

func (s *reflectStore) len() int {
	return s.values.Len()
}

func (s *reflectStore) clear() {
	s.sparse.Clear()
	s.values.SetLen(0)
	s.indices = s.indices[:0]
}
