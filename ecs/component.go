package ecs

import (
	"fmt"
	"reflect"
)

// ComponentTypeID identifies a component type within one World.
// IDs are assigned lazily in observation order and are stable for the
// lifetime of the World; they carry no meaning across worlds.
type ComponentTypeID uint32

// TypeOf returns the reflect.Type of a component type parameter.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// typeIDs assigns dense integer IDs to component reflect.Types.
type typeIDs struct {
	ids   map[reflect.Type]ComponentTypeID
	types []reflect.Type
}

func newTypeIDs() *typeIDs {
	return &typeIDs{ids: make(map[reflect.Type]ComponentTypeID)}
}

// idOf returns the ID for a component type, assigning one on first
// observation. Reference kinds are rejected: components are plain
// value payloads owned by their store.
func (t *typeIDs) idOf(typ reflect.Type) ComponentTypeID {
	if id, ok := t.ids[typ]; ok {
		return id
	}
	switch typ.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		panic(fmt.Sprintf("ecs: component type %v must be a value type", typ))
	}
	id := ComponentTypeID(len(t.types))
	t.ids[typ] = id
	t.types = append(t.types, typ)
	return id
}

// lookup returns the ID for a type already observed by this world.
func (t *typeIDs) lookup(typ reflect.Type) (ComponentTypeID, bool) {
	id, ok := t.ids[typ]
	return id, ok
}

func (t *typeIDs) len() int {
	return len(t.types)
}
