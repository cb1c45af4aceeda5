package ecs

import (
	"fmt"
	"reflect"
)

// AddComponent attaches a component to a live entity, replacing the
// value if the entity already has one of type T. The archetype only
// changes when the component is new.
func AddComponent[T any](w *World, e Entity, value T) {
	w.mustExist(e)
	s := storeFor[T](w.components)
	had := s.contains(e.index)
	s.setAny(e.index, value)
	if !had {
		w.archetypes.moveOnAdd(e, s.typeID())
	}
}

// TryAddComponent attaches a component if the entity is alive.
// Reports whether the component was newly attached; replacing an
// existing value reports false.
func TryAddComponent[T any](w *World, e Entity, value T) bool {
	if !w.entities.exists(e) {
		return false
	}
	s := storeFor[T](w.components)
	had := s.contains(e.index)
	s.setAny(e.index, value)
	if !had {
		w.archetypes.moveOnAdd(e, s.typeID())
	}
	return !had
}

// EmplaceComponent attaches the zero value of T to a live entity,
// replacing any existing value, and returns a pointer for in-place
// initialization. The pointer is invalidated by the next structural
// change to T's store.
func EmplaceComponent[T any](w *World, e Entity) *T {
	w.mustExist(e)
	s := storeFor[T](w.components)
	had := s.contains(e.index)
	var zero T
	s.setAny(e.index, zero)
	if !had {
		w.archetypes.moveOnAdd(e, s.typeID())
	}
	return (*T)(s.ptrOf(e.index))
}

// TryEmplaceComponent attaches the zero value of T if the entity is
// alive and does not already have T. Returns the live pointer and
// whether it was newly attached; nil when the entity is dead.
func TryEmplaceComponent[T any](w *World, e Entity) (*T, bool) {
	if !w.entities.exists(e) {
		return nil, false
	}
	s := storeFor[T](w.components)
	if s.contains(e.index) {
		return (*T)(s.ptrOf(e.index)), false
	}
	var zero T
	s.setAny(e.index, zero)
	w.archetypes.moveOnAdd(e, s.typeID())
	return (*T)(s.ptrOf(e.index)), true
}

// RemoveComponent detaches T from a live entity that must have it.
func RemoveComponent[T any](w *World, e Entity) {
	w.mustExist(e)
	s := storeFor[T](w.components)
	if !s.tryRemove(e.index) {
		panic(fmt.Sprintf("ecs: entity {index: %d, generation: %d} has no %v component",
			e.index, e.generation, reflect.TypeFor[T]()))
	}
	w.archetypes.moveOnRemove(e, s.typeID())
}

// TryRemoveComponent detaches T if the entity is alive and has it.
func TryRemoveComponent[T any](w *World, e Entity) bool {
	if !w.entities.exists(e) {
		return false
	}
	s := storeFor[T](w.components)
	if !s.tryRemove(e.index) {
		return false
	}
	w.archetypes.moveOnRemove(e, s.typeID())
	return true
}

// HasComponent reports whether a live entity carries T. A dead entity
// carries nothing.
func HasComponent[T any](w *World, e Entity) bool {
	if !w.entities.exists(e) {
		return false
	}
	s := w.components.lookupStore(reflect.TypeFor[T]())
	return s != nil && s.contains(e.index)
}

// GetComponent returns a pointer to the entity's T component. The
// entity must be alive and carry T. The pointer is invalidated by the
// next structural change to T's store.
func GetComponent[T any](w *World, e Entity) *T {
	w.mustExist(e)
	s := w.components.lookupStore(reflect.TypeFor[T]())
	if s == nil {
		panic(fmt.Sprintf("ecs: entity {index: %d, generation: %d} has no %v component",
			e.index, e.generation, reflect.TypeFor[T]()))
	}
	p := s.ptrOf(e.index)
	if p == nil {
		panic(fmt.Sprintf("ecs: entity {index: %d, generation: %d} has no %v component",
			e.index, e.generation, reflect.TypeFor[T]()))
	}
	return (*T)(p)
}

// TryGetComponent returns a pointer to the entity's T component, or
// nil when the entity is dead or does not carry T.
func TryGetComponent[T any](w *World, e Entity) *T {
	if !w.entities.exists(e) {
		return nil
	}
	s := w.components.lookupStore(reflect.TypeFor[T]())
	if s == nil {
		return nil
	}
	return (*T)(s.ptrOf(e.index))
}

// AddComponents attaches a batch of components to a live entity, each
// given as a value whose dynamic type is the component type. Existing
// components of the same types are replaced. The archetype is
// recomputed once at the end.
func (w *World) AddComponents(e Entity, components ...any) {
	w.mustExist(e)
	changed := false
	for _, c := range components {
		typ := reflect.TypeOf(c)
		if typ == nil {
			panic("ecs: add of nil component")
		}
		s := w.components.storeByType(typ)
		if !s.contains(e.index) {
			changed = true
		}
		s.setAny(e.index, c)
	}
	if changed {
		w.archetypes.rebuild(e, w.components.idsOf(e.index))
	}
}

// TryAddComponents attaches a batch of components if the entity is
// alive, returning one flag per argument: true when that component
// was newly attached. The archetype is recomputed once, and only if
// something changed.
func (w *World) TryAddComponents(e Entity, components ...any) []bool {
	added := make([]bool, len(components))
	if !w.entities.exists(e) {
		return added
	}
	changed := false
	for i, c := range components {
		typ := reflect.TypeOf(c)
		if typ == nil {
			continue
		}
		s := w.components.storeByType(typ)
		if !s.contains(e.index) {
			added[i] = true
			changed = true
		}
		s.setAny(e.index, c)
	}
	if changed {
		w.archetypes.rebuild(e, w.components.idsOf(e.index))
	}
	return added
}

// RemoveComponents detaches a batch of component types from a live
// entity; the entity must carry every one of them. The archetype is
// recomputed once at the end.
func (w *World) RemoveComponents(e Entity, types ...reflect.Type) {
	w.mustExist(e)
	for _, typ := range types {
		s := w.components.mustStore(typ)
		if !s.tryRemove(e.index) {
			panic(fmt.Sprintf("ecs: entity {index: %d, generation: %d} has no %v component",
				e.index, e.generation, typ))
		}
	}
	if len(types) > 0 {
		w.archetypes.rebuild(e, w.components.idsOf(e.index))
	}
}

// TryRemoveComponents detaches whichever of the component types the
// entity carries, returning one flag per argument. The archetype is
// recomputed once, and only if something changed.
func (w *World) TryRemoveComponents(e Entity, types ...reflect.Type) []bool {
	removed := make([]bool, len(types))
	if !w.entities.exists(e) {
		return removed
	}
	changed := false
	for i, typ := range types {
		s := w.components.lookupStore(typ)
		if s != nil && s.tryRemove(e.index) {
			removed[i] = true
			changed = true
		}
	}
	if changed {
		w.archetypes.rebuild(e, w.components.idsOf(e.index))
	}
	return removed
}

// HasComponents reports, per type, whether a live entity carries it.
func (w *World) HasComponents(e Entity, types ...reflect.Type) []bool {
	has := make([]bool, len(types))
	if !w.entities.exists(e) {
		return has
	}
	for i, typ := range types {
		s := w.components.lookupStore(typ)
		has[i] = s != nil && s.contains(e.index)
	}
	return has
}

// ClearComponents strips every component from a live entity, moving
// it to the empty archetype.
func (w *World) ClearComponents(e Entity) {
	w.mustExist(e)
	w.components.removeAll(e.index)
	w.archetypes.rebuild(e, nil)
}
