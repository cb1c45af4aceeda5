package ecs

import (
	"reflect"
	"unsafe"

	"github.com/warden-ecs/warden/seq"
)

// Query iterates the entities whose archetype carries a combination
// of components. T is a struct whose fields are pointers to component
// types; embedded fields are required, named fields may carry the
// `ecs:"optional"` tag to match entities with or without that
// component (nil when absent).
//
// The query caches the list of matching archetype nodes and refreshes
// it only after a structural change, so repeated iteration over a
// stable world does no matching work.
type Query[T any] struct {
	world       *World
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr

	cachedVersion uint64
	cachedSlots   []uint32
	cachedStores  []componentStore
	cacheValid    bool
}

// NewQuery builds a query over the world for view struct T.
func NewQuery[T any](w *World) *Query[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: query type parameter must be a struct")
	}

	n := structType.NumField()
	q := &Query[T]{
		world:       w,
		types:       make([]reflect.Type, 0, n),
		optional:    make([]bool, 0, n),
		fieldOffset: make([]uintptr, 0, n),
	}

	for i := 0; i < n; i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: query struct fields must be pointer types")
		}
		q.types = append(q.types, field.Type.Elem())
		q.fieldOffset = append(q.fieldOffset, field.Offset)

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("ecs: invalid ecs tag value \"" + tag + "\" (only \"optional\" is supported)")
			}
		}
		q.optional = append(q.optional, isOptional)
	}
	return q
}

// refresh rebuilds the cached archetype list when the world's
// structure has changed since the last iteration.
func (q *Query[T]) refresh() {
	if q.cacheValid && q.cachedVersion == q.world.archetypes.version {
		return
	}
	q.cachedSlots = q.cachedSlots[:0]
	q.cachedStores = q.cachedStores[:0]

	// Resolve field types against the world's stores. A required type
	// the world has never seen means no entity can match yet.
	required := make([]ComponentTypeID, 0, len(q.types))
	resolvable := true
	for i, typ := range q.types {
		s := q.world.components.lookupStore(typ)
		q.cachedStores = append(q.cachedStores, s)
		if s == nil && !q.optional[i] {
			resolvable = false
		}
		if s != nil && !q.optional[i] {
			required = append(required, s.typeID())
		}
	}

	if resolvable {
		for _, node := range q.world.archetypes.nodes {
			if node.Len() == 0 {
				continue
			}
			matches := true
			for _, id := range required {
				if !node.hasType(id) {
					matches = false
					break
				}
			}
			if matches {
				q.cachedSlots = append(q.cachedSlots, node.slot)
			}
		}
	}

	q.cachedVersion = q.world.archetypes.version
	q.cacheValid = true
}

// fill populates the view struct for one entity slot index. Reports
// false when a required component is missing.
func (q *Query[T]) fill(resultPtr unsafe.Pointer, index uint32) bool {
	for i, s := range q.cachedStores {
		fieldPtr := unsafe.Pointer(uintptr(resultPtr) + q.fieldOffset[i])
		var p unsafe.Pointer
		if s != nil {
			p = s.ptrOf(index)
		}
		if p == nil && !q.optional[i] {
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = p
	}
	return true
}

// Iter yields each matching entity with its populated view struct.
// Component pointers stay valid until the next structural change;
// mutating the world during iteration is not supported.
func (q *Query[T]) Iter() seq.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		q.refresh()
		var result T
		resultPtr := unsafe.Pointer(&result)
		for _, slot := range q.cachedSlots {
			node := q.world.archetypes.node(slot)
			for _, e := range node.Entities() {
				if !q.fill(resultPtr, e.index) {
					continue
				}
				if !yield(e, result) {
					return
				}
			}
		}
	}
}

// Values yields just the populated view structs.
func (q *Query[T]) Values() seq.Seq[T] {
	return q.Iter().Values()
}

// Entities yields just the matching entities.
func (q *Query[T]) Entities() seq.Seq[Entity] {
	return q.Iter().Keys()
}

// Count returns the number of matching entities. Matching archetypes
// guarantee every required component, so no per-entity check is
// needed.
func (q *Query[T]) Count() int {
	q.refresh()
	n := 0
	for _, slot := range q.cachedSlots {
		n += q.world.archetypes.node(slot).Len()
	}
	return n
}
