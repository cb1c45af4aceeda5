package ecs

import (
	"fmt"
	"reflect"

	"github.com/warden-ecs/warden/seq"
)

// EventReader is a read-only snapshot of one event type's two
// buffers, presented as a single logical sequence: last frame's
// events first, then this frame's. The snapshot stays coherent while
// no write or Update runs; taking and consuming a reader concurrently
// with other readers is safe.
type EventReader[T any] struct {
	previous []T
	current  []T
}

// Events returns a reader over the pending events of type T. The type
// must be registered.
func Events[T any](w *World) EventReader[T] {
	typ := reflect.TypeFor[T]()
	w.events.mustMeta(typ)
	return EventReader[T]{
		previous: w.events.previous[typ].(*bufferOf[T]).events,
		current:  w.events.current[typ].(*bufferOf[T]).events,
	}
}

// Seq yields the reader's events, previous buffer first.
func (r EventReader[T]) Seq() seq.Seq[T] {
	return seq.Concat(seq.From(r.previous), seq.From(r.current))
}

// Len returns the number of pending events.
func (r EventReader[T]) Len() int {
	return len(r.previous) + len(r.current)
}

// Empty reports whether no events are pending.
func (r EventReader[T]) Empty() bool {
	return r.Len() == 0
}

// ForEach calls action for each pending event in order.
func (r EventReader[T]) ForEach(action func(T)) {
	r.Seq().ForEach(action)
}

// Collect copies the pending events into a new slice.
func (r EventReader[T]) Collect() []T {
	return r.Seq().Collect()
}

// EventWriter appends events of one type to a world's current queue.
// A writer is a convenience handle around WriteEvent for call sites
// that emit the same type repeatedly.
type EventWriter[T any] struct {
	buf *bufferOf[T]
}

// Writer returns a writer for events of type T. The type must be
// registered. The writer is bound to the world's current buffer and
// stays valid for the lifetime of the world.
func Writer[T any](w *World) EventWriter[T] {
	typ := reflect.TypeFor[T]()
	w.events.mustMeta(typ)
	return EventWriter[T]{buf: w.events.current[typ].(*bufferOf[T])}
}

// Write appends one event.
func (w EventWriter[T]) Write(event T) {
	w.buf.events = append(w.buf.events, event)
}

// WriteBulk appends a batch of events in order.
func (w EventWriter[T]) WriteBulk(events ...T) {
	w.buf.events = append(w.buf.events, events...)
}

// EventQueue is a detached staging area for events produced away from
// the world, merged in later with World.MergeEvents. The zero value
// is not usable; construct with NewEventQueue.
type EventQueue struct {
	buffers map[reflect.Type]eventBuffer
}

func NewEventQueue() *EventQueue {
	return &EventQueue{buffers: make(map[reflect.Type]eventBuffer)}
}

// QueueEvent stages an event in the queue.
func QueueEvent[T any](q *EventQueue, event T) {
	typ := reflect.TypeFor[T]()
	buf, ok := q.buffers[typ]
	if !ok {
		buf = &bufferOf[T]{}
		q.buffers[typ] = buf
	}
	b := buf.(*bufferOf[T])
	b.events = append(b.events, event)
}

// Len returns the number of staged events across all types.
func (q *EventQueue) Len() int {
	n := 0
	for _, buf := range q.buffers {
		n += buf.len()
	}
	return n
}

// Empty reports whether no events are staged.
func (q *EventQueue) Empty() bool {
	return q.Len() == 0
}

// MergeEvents appends a staged queue's events into the world's
// current buffers and leaves the queue empty. Every staged type must
// be registered with the world.
func (w *World) MergeEvents(q *EventQueue) {
	for typ, buf := range q.buffers {
		target, ok := w.events.current[typ]
		if !ok {
			panic(fmt.Sprintf("ecs: merged event type %v not registered", typ))
		}
		buf.drainInto(target)
	}
}
