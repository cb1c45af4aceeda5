package ecs_test

import "github.com/warden-ecs/warden/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string
type Temperature float64

// Test event types
type Ping struct {
	Seq int
}

type Damage struct {
	Amount int
}

func (Damage) EventName() string { return "damage" }

// SaveRequest is a manually cleared test event.
type SaveRequest struct {
	Slot int
}

func (SaveRequest) EventClearPolicy() ecs.ClearPolicy { return ecs.ClearManual }
