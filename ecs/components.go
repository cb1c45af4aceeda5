package ecs

import (
	"fmt"
	"reflect"
)

// components owns one sparse-set store per observed component type,
// indexed by ComponentTypeID. Stores are created on first touch;
// the generic entry points build value-typed stores, the
// reflect-typed entry points fall back to reflectStore.
type components struct {
	ids    *typeIDs
	stores []componentStore
}

func newComponents() *components {
	return &components{ids: newTypeIDs()}
}

// storeFor returns the store for T, creating a value-typed one on
// first use. A type first observed through the reflect surface keeps
// its reflect-backed store; both satisfy componentStore.
func storeFor[T any](c *components) componentStore {
	id := c.ids.idOf(reflect.TypeFor[T]())
	c.growStores()
	if c.stores[id] == nil {
		c.stores[id] = newStoreOf[T](id)
	}
	return c.stores[id]
}

// storeByType returns the store for a reflect type, creating a
// reflect-backed one on first use.
func (c *components) storeByType(typ reflect.Type) componentStore {
	id := c.ids.idOf(typ)
	c.growStores()
	if c.stores[id] == nil {
		c.stores[id] = newReflectStore(typ, id)
	}
	return c.stores[id]
}

// lookupStore returns the store for a reflect type only if the type
// has been observed before.
func (c *components) lookupStore(typ reflect.Type) componentStore {
	id, ok := c.ids.lookup(typ)
	if !ok || int(id) >= len(c.stores) {
		return nil
	}
	return c.stores[id]
}

func (c *components) growStores() {
	for len(c.stores) < c.ids.len() {
		c.stores = append(c.stores, nil)
	}
}

// removeAll strips every component from an entity slot.
func (c *components) removeAll(index uint32) {
	for _, s := range c.stores {
		if s != nil {
			s.tryRemove(index)
		}
	}
}

// idsOf returns the sorted component type IDs attached to an entity
// slot.
func (c *components) idsOf(index uint32) []ComponentTypeID {
	var out []ComponentTypeID
	for _, s := range c.stores {
		if s != nil && s.contains(index) {
			out = append(out, s.typeID())
		}
	}
	return out
}

// typesOf returns the reflect types attached to an entity slot, in
// type-ID order.
func (c *components) typesOf(index uint32) []reflect.Type {
	var out []reflect.Type
	for _, s := range c.stores {
		if s != nil && s.contains(index) {
			out = append(out, s.componentType())
		}
	}
	return out
}

// clearAll empties every store. Type IDs stay assigned.
func (c *components) clearAll() {
	for _, s := range c.stores {
		if s != nil {
			s.clear()
		}
	}
}

func (c *components) mustStore(typ reflect.Type) componentStore {
	s := c.lookupStore(typ)
	if s == nil {
		panic(fmt.Sprintf("ecs: component type %v has never been attached", typ))
	}
	return s
}
