package ecs

import "reflect"

// Command is a deferred world mutation. Commands carry values, never
// borrowed references, so a command stays valid regardless of what
// happens to its producer between enqueue and execution.
type Command interface {
	Execute(w *World)
}

// CommandFunc adapts a closure to the Command interface.
type CommandFunc func(w *World)

func (f CommandFunc) Execute(w *World) {
	f(w)
}

// SpawnCommand creates an entity carrying the given components.
type SpawnCommand struct {
	Components []any
}

func (c SpawnCommand) Execute(w *World) {
	e := w.CreateEntity()
	if len(c.Components) > 0 {
		w.AddComponents(e, c.Components...)
	}
}

// DestroyEntityCommand destroys an entity that must still be alive at
// execution time.
type DestroyEntityCommand struct {
	Entity Entity
}

func (c DestroyEntityCommand) Execute(w *World) {
	w.DestroyEntity(c.Entity)
}

// TryDestroyEntityCommand destroys an entity if it is still alive.
type TryDestroyEntityCommand struct {
	Entity Entity
}

func (c TryDestroyEntityCommand) Execute(w *World) {
	w.TryDestroyEntity(c.Entity)
}

// DestroyEntitiesCommand destroys a batch of entities; each must
// still be alive at execution time.
type DestroyEntitiesCommand struct {
	Entities []Entity
}

func (c DestroyEntitiesCommand) Execute(w *World) {
	w.DestroyEntities(c.Entities)
}

// TryDestroyEntitiesCommand destroys whichever of the entities are
// still alive.
type TryDestroyEntitiesCommand struct {
	Entities []Entity
}

func (c TryDestroyEntitiesCommand) Execute(w *World) {
	w.TryDestroyEntities(c.Entities)
}

// AddComponentCommand attaches (or replaces) one component on an
// entity.
type AddComponentCommand struct {
	Entity    Entity
	Component any
}

func (c AddComponentCommand) Execute(w *World) {
	w.AddComponents(c.Entity, c.Component)
}

// RemoveComponentCommand detaches one component type from an entity.
type RemoveComponentCommand struct {
	Entity Entity
	Type   reflect.Type
}

func (c RemoveComponentCommand) Execute(w *World) {
	w.RemoveComponents(c.Entity, c.Type)
}

// ClearComponentsCommand strips every component from an entity.
type ClearComponentsCommand struct {
	Entity Entity
}

func (c ClearComponentsCommand) Execute(w *World) {
	w.ClearComponents(c.Entity)
}

// InsertResourceCommand stores a resource value, replacing any
// existing value of the same type.
type InsertResourceCommand struct {
	Resource any
}

func (c InsertResourceCommand) Execute(w *World) {
	w.insertResourceValue(c.Resource)
}

// RemoveResourceCommand removes a resource by type if present.
type RemoveResourceCommand struct {
	Type reflect.Type
}

func (c RemoveResourceCommand) Execute(w *World) {
	delete(w.resources.byType, c.Type)
}

// EmitEventCommand writes an event at execution time. The event type
// must be registered with the world by then.
type EmitEventCommand struct {
	Event any
}

func (c EmitEventCommand) Execute(w *World) {
	w.writeEventValue(c.Event)
}
