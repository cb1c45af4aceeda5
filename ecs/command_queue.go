package ecs

import (
	"reflect"
	"sync"
)

// commandQueue is the world's multi-producer command FIFO. Enqueue is
// safe from any goroutine; commands come out in total
// enqueue-accepted order, and commands from a single producer keep
// their submission order.
type commandQueue struct {
	mu       sync.Mutex
	commands []Command
}

func (q *commandQueue) enqueue(cmd Command) {
	if cmd == nil {
		panic("ecs: enqueue of nil command")
	}
	q.mu.Lock()
	q.commands = append(q.commands, cmd)
	q.mu.Unlock()
}

func (q *commandQueue) enqueueBulk(cmds []Command) {
	for _, cmd := range cmds {
		if cmd == nil {
			panic("ecs: enqueue of nil command")
		}
	}
	q.mu.Lock()
	q.commands = append(q.commands, cmds...)
	q.mu.Unlock()
}

// dequeueAll removes and returns every queued command.
func (q *commandQueue) dequeueAll() []Command {
	q.mu.Lock()
	cmds := q.commands
	q.commands = nil
	q.mu.Unlock()
	return cmds
}

func (q *commandQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.commands)
}

func (q *commandQueue) clear() {
	q.mu.Lock()
	q.commands = nil
	q.mu.Unlock()
}

// CommandBuffer stages commands for one producer without touching the
// world's queue. It is not safe for concurrent use; each producer
// owns its own buffer and hands it to World.MergeCommands when done.
type CommandBuffer struct {
	commands []Command
}

// Enqueue appends a command to the buffer.
func (b *CommandBuffer) Enqueue(cmd Command) {
	if cmd == nil {
		panic("ecs: enqueue of nil command")
	}
	b.commands = append(b.commands, cmd)
}

// Spawn stages creation of an entity with the given components.
func (b *CommandBuffer) Spawn(components ...any) {
	b.Enqueue(SpawnCommand{Components: components})
}

// Destroy stages destruction of an entity that must still be alive
// when the buffer is applied.
func (b *CommandBuffer) Destroy(e Entity) {
	b.Enqueue(DestroyEntityCommand{Entity: e})
}

// TryDestroy stages destruction of an entity, tolerating it being
// gone by the time the buffer is applied.
func (b *CommandBuffer) TryDestroy(e Entity) {
	b.Enqueue(TryDestroyEntityCommand{Entity: e})
}

// AddComponent stages attaching a component to an entity.
func (b *CommandBuffer) AddComponent(e Entity, component any) {
	b.Enqueue(AddComponentCommand{Entity: e, Component: component})
}

// RemoveComponent stages detaching a component type from an entity.
func (b *CommandBuffer) RemoveComponent(e Entity, typ reflect.Type) {
	b.Enqueue(RemoveComponentCommand{Entity: e, Type: typ})
}

// InsertResource stages storing a resource value.
func (b *CommandBuffer) InsertResource(resource any) {
	b.Enqueue(InsertResourceCommand{Resource: resource})
}

// EmitEvent stages writing an event.
func (b *CommandBuffer) EmitEvent(event any) {
	b.Enqueue(EmitEventCommand{Event: event})
}

// Defer stages an arbitrary closure.
func (b *CommandBuffer) Defer(fn func(w *World)) {
	b.Enqueue(CommandFunc(fn))
}

// Len returns the number of staged commands.
func (b *CommandBuffer) Len() int {
	return len(b.commands)
}

// Empty reports whether the buffer holds no commands.
func (b *CommandBuffer) Empty() bool {
	return len(b.commands) == 0
}

// drain removes and returns the staged commands, leaving the buffer
// empty.
func (b *CommandBuffer) drain() []Command {
	cmds := b.commands
	b.commands = nil
	return cmds
}
