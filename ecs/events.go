package ecs

import "reflect"

// ClearPolicy controls when an event type's delivered queue is
// emptied.
type ClearPolicy uint8

const (
	// ClearAutomatic drops delivered events at the next buffer
	// advance; an event is visible for exactly one frame after the
	// frame it was written in.
	ClearAutomatic ClearPolicy = iota
	// ClearManual keeps delivered events until ClearEvents is called
	// for the type.
	ClearManual
)

func (p ClearPolicy) String() string {
	switch p {
	case ClearAutomatic:
		return "automatic"
	case ClearManual:
		return "manual"
	default:
		return "unknown"
	}
}

// PolicyHolder is implemented by event types that opt out of the
// default automatic clear policy.
type PolicyHolder interface {
	EventClearPolicy() ClearPolicy
}

// NameHolder is implemented by event types that want a display name
// other than their Go type name.
type NameHolder interface {
	EventName() string
}

func eventPolicyOf(typ reflect.Type) ClearPolicy {
	if h, ok := zeroOf(typ).(PolicyHolder); ok {
		return h.EventClearPolicy()
	}
	return ClearAutomatic
}

func eventNameOf(typ reflect.Type) string {
	if h, ok := zeroOf(typ).(NameHolder); ok {
		return h.EventName()
	}
	return typ.String()
}

func zeroOf(typ reflect.Type) any {
	return reflect.Zero(typ).Interface()
}

// EntitySpawnedEvent is emitted by the world when an entity is
// created, provided the event type is registered.
type EntitySpawnedEvent struct {
	Entity Entity
}

// EntityDestroyedEvent is emitted by the world when an entity is
// destroyed, provided the event type is registered.
type EntityDestroyedEvent struct {
	Entity Entity
}

// ExitCode is the payload of a ShutdownEvent.
type ExitCode uint8

const (
	ExitSuccess ExitCode = 0
	ExitFailure ExitCode = 1
)

// ShutdownEvent asks the surrounding application to stop. It is
// manually cleared so a shutdown request survives frame boundaries
// until a consumer acts on it.
type ShutdownEvent struct {
	ExitCode ExitCode
}

// EventClearPolicy marks ShutdownEvent as manually cleared.
func (ShutdownEvent) EventClearPolicy() ClearPolicy {
	return ClearManual
}
