package ecs

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// World owns the entity registry, the component stores, the archetype
// index, the resource registry, the command queue and the event
// manager, and coordinates them. A world is single-threaded: apart
// from ReserveEntity, EnqueueCommand/EnqueueCommands and read-only
// resource or event access, every operation assumes the caller holds
// exclusive access.
type World struct {
	entities   *entityRegistry
	components *components
	archetypes *archetypeIndex
	resources  *resources
	queue      *commandQueue
	events     *eventManager
	log        *zap.Logger
}

// WorldOption configures a World at construction time.
type WorldOption func(*World)

// WithLogger sets the world's logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) WorldOption {
	return func(w *World) {
		w.log = log
	}
}

// WithEntityCapacity pre-sizes the entity registry for n entities.
func WithEntityCapacity(n int) WorldOption {
	return func(w *World) {
		w.entities.grow(n)
	}
}

// NewWorld creates an empty world.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		entities:   newEntityRegistry(),
		components: newComponents(),
		archetypes: newArchetypeIndex(),
		resources:  newResources(),
		queue:      &commandQueue{},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.events = newEventManager(w.log)
	return w
}

// CreateEntity materializes a live entity with no components and
// emits EntitySpawnedEvent when that event type is registered.
func (w *World) CreateEntity() Entity {
	e := w.entities.create()
	w.archetypes.addEntity(e)
	w.emitSpawned(e)
	return e
}

// CreateEntities materializes n live entities.
func (w *World) CreateEntities(n int) []Entity {
	out := make([]Entity, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, w.CreateEntity())
	}
	return out
}

// ReserveEntity claims an entity handle without materializing it.
// Safe to call from any goroutine. The entity starts to exist at the
// next Update; until then it has no components and no archetype.
func (w *World) ReserveEntity() Entity {
	return w.entities.reserve()
}

// Exists reports whether the handle refers to a live entity.
func (w *World) Exists(e Entity) bool {
	return w.entities.exists(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.entities.count()
}

// ArchetypeCount returns the number of archetype nodes, the empty one
// included.
func (w *World) ArchetypeCount() int {
	return w.archetypes.Len()
}

// DestroyEntity destroys a live entity, emitting EntityDestroyedEvent
// first when that event type is registered. The handle must be valid
// and live.
func (w *World) DestroyEntity(e Entity) {
	if !e.Valid() {
		panic(fmt.Sprintf("ecs: destroy of invalid entity handle %v", e))
	}
	if !w.entities.exists(e) {
		panic(fmt.Sprintf("ecs: destroy of dead entity {index: %d, generation: %d}", e.index, e.generation))
	}
	w.destroyLive(e)
}

// TryDestroyEntity destroys the entity if it is still alive.
func (w *World) TryDestroyEntity(e Entity) bool {
	if !w.entities.exists(e) {
		return false
	}
	w.destroyLive(e)
	return true
}

// DestroyEntities destroys a batch of entities. Every handle must be
// structurally valid; handles whose entity already died are skipped.
func (w *World) DestroyEntities(entities []Entity) {
	for _, e := range entities {
		if !e.Valid() {
			panic(fmt.Sprintf("ecs: destroy of invalid entity handle %v", e))
		}
	}
	for _, e := range entities {
		if w.entities.exists(e) {
			w.destroyLive(e)
		}
	}
}

// TryDestroyEntities destroys whichever of the entities are still
// alive and returns how many were destroyed.
func (w *World) TryDestroyEntities(entities []Entity) int {
	destroyed := 0
	for _, e := range entities {
		if w.TryDestroyEntity(e) {
			destroyed++
		}
	}
	return destroyed
}

func (w *World) destroyLive(e Entity) {
	w.emitDestroyed(e)
	w.components.removeAll(e.index)
	w.archetypes.removeEntity(e.index)
	w.entities.destroy(e)
}

// EnqueueCommand adds a command to the world's queue. Safe to call
// from any goroutine.
func (w *World) EnqueueCommand(cmd Command) {
	w.queue.enqueue(cmd)
}

// EnqueueCommands adds a batch of commands to the world's queue in
// order. Safe to call from any goroutine.
func (w *World) EnqueueCommands(cmds ...Command) {
	w.queue.enqueueBulk(cmds)
}

// PendingCommands returns the number of queued commands.
func (w *World) PendingCommands() int {
	return w.queue.size()
}

// ClearCommands drops every queued command without executing it.
func (w *World) ClearCommands() {
	w.queue.clear()
}

// MergeCommands drains a staging buffer into the world's queue,
// leaving the buffer empty.
func (w *World) MergeCommands(buf *CommandBuffer) {
	cmds := buf.drain()
	if len(cmds) > 0 {
		w.queue.enqueueBulk(cmds)
	}
}

// Update runs one world tick: reserved entities materialize, queued
// commands execute in arrival order against the fresh entity state,
// then the event buffers advance one frame.
func (w *World) Update() {
	for _, e := range w.entities.flushReserved() {
		w.archetypes.addEntity(e)
	}
	for _, cmd := range w.queue.dequeueAll() {
		cmd.Execute(w)
	}
	w.events.advance()
}

// ClearEntities destroys every entity without emitting lifecycle
// events. Resources, event registrations and queued commands stay.
func (w *World) ClearEntities() {
	w.components.clearAll()
	w.archetypes.clear()
	w.entities.clear()
}

// ClearAllEventQueues drops every pending event of every registered
// type. Registrations stay.
func (w *World) ClearAllEventQueues() {
	w.events.clearAll()
}

// Clear resets the world to its empty state: entities, components,
// archetypes, resources, queued commands and event registrations are
// all dropped.
func (w *World) Clear() {
	w.ClearEntities()
	w.resources.clear()
	w.queue.clear()
	w.events.reset()
	w.log.Debug("world cleared")
}

// ComponentTypes returns the component types attached to an entity,
// in the order the world first observed the types.
func (w *World) ComponentTypes(e Entity) []reflect.Type {
	w.mustExist(e)
	return w.components.typesOf(e.index)
}

func (w *World) mustExist(e Entity) {
	if !w.entities.exists(e) {
		panic(fmt.Sprintf("ecs: entity {index: %d, generation: %d} does not exist", e.index, e.generation))
	}
}

func (w *World) emitSpawned(e Entity) {
	typ := reflect.TypeFor[EntitySpawnedEvent]()
	if buf, ok := w.events.current[typ]; ok {
		buf.appendAny(EntitySpawnedEvent{Entity: e})
	}
}

func (w *World) emitDestroyed(e Entity) {
	typ := reflect.TypeFor[EntityDestroyedEvent]()
	if buf, ok := w.events.current[typ]; ok {
		buf.appendAny(EntityDestroyedEvent{Entity: e})
	}
}

func (w *World) insertResourceValue(resource any) {
	typ := reflect.TypeOf(resource)
	if typ == nil {
		panic("ecs: insert of nil resource")
	}
	p := reflect.New(typ)
	p.Elem().Set(reflect.ValueOf(resource))
	w.resources.byType[typ] = p.Interface()
}

func (w *World) writeEventValue(event any) {
	typ := reflect.TypeOf(event)
	buf, ok := w.events.current[typ]
	if !ok {
		panic(fmt.Sprintf("ecs: event type %v not registered", typ))
	}
	buf.appendAny(event)
}
