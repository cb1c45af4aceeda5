package ecs

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// eventBuffer is the type-erased face of a per-type event slice.
type eventBuffer interface {
	len() int
	clear()
	// appendAny adds one event; its dynamic type must match the
	// buffer's.
	appendAny(event any)
	// drainInto appends this buffer's events to dst (same concrete
	// type) and empties this buffer.
	drainInto(dst eventBuffer)
}

type bufferOf[T any] struct {
	events []T
}

func (b *bufferOf[T]) len() int {
	return len(b.events)
}

func (b *bufferOf[T]) clear() {
	b.events = b.events[:0]
}

func (b *bufferOf[T]) appendAny(event any) {
	b.events = append(b.events, event.(T))
}

func (b *bufferOf[T]) drainInto(dst eventBuffer) {
	d := dst.(*bufferOf[T])
	d.events = append(d.events, b.events...)
	b.events = b.events[:0]
}

type eventMeta struct {
	typ             reflect.Type
	name            string
	policy          ClearPolicy
	lifecycle       bool // spawn/destroy built-ins: no manual clear
	frameRegistered uint64
}

// eventManager double-buffers events per registered type. Writes land
// in the current buffer; readers see previous followed by current.
// advance() retires current into previous, having first dropped
// automatically cleared types from previous, so an event is readable
// the frame it is written and the full frame after.
type eventManager struct {
	log      *zap.Logger
	meta     map[reflect.Type]*eventMeta
	current  map[reflect.Type]eventBuffer
	previous map[reflect.Type]eventBuffer
	frame    uint64
}

func newEventManager(log *zap.Logger) *eventManager {
	return &eventManager{
		log:      log,
		meta:     make(map[reflect.Type]*eventMeta),
		current:  make(map[reflect.Type]eventBuffer),
		previous: make(map[reflect.Type]eventBuffer),
	}
}

func (m *eventManager) registered(typ reflect.Type) bool {
	_, ok := m.meta[typ]
	return ok
}

func (m *eventManager) mustMeta(typ reflect.Type) *eventMeta {
	meta, ok := m.meta[typ]
	if !ok {
		panic(fmt.Sprintf("ecs: event type %v not registered", typ))
	}
	return meta
}

func (m *eventManager) advance() {
	for typ, meta := range m.meta {
		if meta.policy == ClearAutomatic {
			m.previous[typ].clear()
		}
	}
	for typ, buf := range m.current {
		buf.drainInto(m.previous[typ])
	}
	m.frame++
}

func (m *eventManager) pending(typ reflect.Type) int {
	meta := m.mustMeta(typ)
	return m.previous[meta.typ].len() + m.current[meta.typ].len()
}

func (m *eventManager) clearType(typ reflect.Type) {
	meta := m.mustMeta(typ)
	if meta.lifecycle {
		panic(fmt.Sprintf("ecs: lifecycle event %s cannot be manually cleared", meta.name))
	}
	m.previous[typ].clear()
	m.current[typ].clear()
}

func (m *eventManager) clearAll() {
	for typ := range m.meta {
		m.previous[typ].clear()
		m.current[typ].clear()
	}
}

func (m *eventManager) reset() {
	clear(m.meta)
	clear(m.current)
	clear(m.previous)
	m.frame = 0
}

// AddEvent registers an event type with the world. Registering a type
// twice is tolerated with a warning; the original registration and
// its queued events stay untouched.
func AddEvent[T any](w *World) {
	typ := reflect.TypeFor[T]()
	m := w.events
	if m.registered(typ) {
		m.log.Warn("event type already registered",
			zap.String("event", eventNameOf(typ)),
			zap.Uint64("frame", m.frame))
		return
	}
	lifecycle := typ == reflect.TypeFor[EntitySpawnedEvent]() ||
		typ == reflect.TypeFor[EntityDestroyedEvent]()
	m.meta[typ] = &eventMeta{
		typ:             typ,
		name:            eventNameOf(typ),
		policy:          eventPolicyOf(typ),
		lifecycle:       lifecycle,
		frameRegistered: m.frame,
	}
	m.current[typ] = &bufferOf[T]{}
	m.previous[typ] = &bufferOf[T]{}
	m.log.Debug("event type registered",
		zap.String("event", m.meta[typ].name),
		zap.Stringer("policy", m.meta[typ].policy))
}

// EventRegistered reports whether the event type is registered.
func EventRegistered[T any](w *World) bool {
	return w.events.registered(reflect.TypeFor[T]())
}

// WriteEvent appends an event to the current queue. The type must be
// registered.
func WriteEvent[T any](w *World, event T) {
	typ := reflect.TypeFor[T]()
	w.events.mustMeta(typ)
	buf := w.events.current[typ].(*bufferOf[T])
	buf.events = append(buf.events, event)
}

// WriteEvents appends a batch of events to the current queue.
func WriteEvents[T any](w *World, events ...T) {
	typ := reflect.TypeFor[T]()
	w.events.mustMeta(typ)
	buf := w.events.current[typ].(*bufferOf[T])
	buf.events = append(buf.events, events...)
}

// HasEvents reports whether any events of the type are pending, in
// either buffer. The type must be registered.
func HasEvents[T any](w *World) bool {
	return w.events.pending(reflect.TypeFor[T]()) > 0
}

// ClearEvents drops every pending event of a manually cleared type.
// Panics for the built-in lifecycle events.
func ClearEvents[T any](w *World) {
	w.events.clearType(reflect.TypeFor[T]())
}
