package ecs

import (
	"fmt"
	"reflect"
)

// resources is the world's singleton registry: at most one value per
// type, stored behind a pointer so reads hand out stable addresses.
type resources struct {
	byType map[reflect.Type]any // reflect.Type -> *T
}

func newResources() *resources {
	return &resources{byType: make(map[reflect.Type]any)}
}

func (r *resources) clear() {
	clear(r.byType)
}

// InsertResource stores a resource value, replacing any existing
// value of the same type.
func InsertResource[T any](w *World, value T) {
	w.resources.byType[reflect.TypeFor[T]()] = &value
}

// TryInsertResource stores a resource value only if none of that type
// exists yet. Reports whether the value was stored.
func TryInsertResource[T any](w *World, value T) bool {
	typ := reflect.TypeFor[T]()
	if _, ok := w.resources.byType[typ]; ok {
		return false
	}
	w.resources.byType[typ] = &value
	return true
}

// EmplaceResource stores the zero value for T, replacing any existing
// value, and returns a pointer for in-place initialization.
func EmplaceResource[T any](w *World) *T {
	p := new(T)
	w.resources.byType[reflect.TypeFor[T]()] = p
	return p
}

// TryEmplaceResource stores the zero value for T only if no resource
// of that type exists, returning the live pointer either way.
func TryEmplaceResource[T any](w *World) (*T, bool) {
	typ := reflect.TypeFor[T]()
	if existing, ok := w.resources.byType[typ]; ok {
		return existing.(*T), false
	}
	p := new(T)
	w.resources.byType[typ] = p
	return p, true
}

// RemoveResource removes the resource of type T. The resource must
// exist.
func RemoveResource[T any](w *World) {
	typ := reflect.TypeFor[T]()
	if _, ok := w.resources.byType[typ]; !ok {
		panic(fmt.Sprintf("ecs: resource %v not present", typ))
	}
	delete(w.resources.byType, typ)
}

// TryRemoveResource removes the resource of type T if present.
func TryRemoveResource[T any](w *World) bool {
	typ := reflect.TypeFor[T]()
	if _, ok := w.resources.byType[typ]; !ok {
		return false
	}
	delete(w.resources.byType, typ)
	return true
}

// HasResource reports whether a resource of type T is present.
func HasResource[T any](w *World) bool {
	_, ok := w.resources.byType[reflect.TypeFor[T]()]
	return ok
}

// WriteResource returns a mutable pointer to the resource of type T.
// The resource must exist.
func WriteResource[T any](w *World) *T {
	typ := reflect.TypeFor[T]()
	p, ok := w.resources.byType[typ]
	if !ok {
		panic(fmt.Sprintf("ecs: resource %v not present", typ))
	}
	return p.(*T)
}

// ReadResource returns the resource of type T for reading. The
// resource must exist. Safe to call concurrently as long as no
// writer is active.
func ReadResource[T any](w *World) *T {
	return WriteResource[T](w)
}

// TryWriteResource returns a mutable pointer to the resource of type
// T, or nil when absent.
func TryWriteResource[T any](w *World) *T {
	p, ok := w.resources.byType[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return p.(*T)
}

// TryReadResource returns the resource of type T for reading, or nil
// when absent.
func TryReadResource[T any](w *World) *T {
	return TryWriteResource[T](w)
}
