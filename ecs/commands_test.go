package ecs_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"

	"github.com/warden-ecs/warden/ecs"
)

func TestCommandsApplyOnUpdate(t *testing.T) {
	w := ecs.NewWorld()

	w.EnqueueCommand(ecs.SpawnCommand{Components: []any{Position{X: 1}, Health{Current: 10}}})
	assert.Equal(t, 0, w.EntityCount(), "commands are deferred")
	assert.Equal(t, 1, w.PendingCommands())

	w.Update()
	assert.Equal(t, 1, w.EntityCount())
	assert.Equal(t, 0, w.PendingCommands())

	q := ecs.NewQuery[struct{ *Health }](w)
	assert.Equal(t, 1, q.Count())
}

func TestCommandSubmissionOrder(t *testing.T) {
	w := ecs.NewWorld()

	var order []int
	for i := 0; i < 10; i++ {
		w.EnqueueCommand(ecs.CommandFunc(func(*ecs.World) {
			order = append(order, i)
		}))
	}
	w.Update()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

func TestDestroyCommands(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	gone := w.CreateEntity()
	w.DestroyEntity(gone)

	w.EnqueueCommands(
		ecs.DestroyEntityCommand{Entity: e},
		ecs.TryDestroyEntityCommand{Entity: gone},
	)
	w.Update()
	assert.Equal(t, 0, w.EntityCount())

	t.Run("destroy of dead entity panics at execution", func(t *testing.T) {
		w.EnqueueCommand(ecs.DestroyEntityCommand{Entity: e})
		assert.Panics(t, func() { w.Update() })
	})
}

func TestComponentAndResourceCommands(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	ecs.AddComponent(w, e, Position{X: 1})

	w.EnqueueCommands(
		ecs.AddComponentCommand{Entity: e, Component: Velocity{DX: 2}},
		ecs.RemoveComponentCommand{Entity: e, Type: reflect.TypeFor[Position]()},
		ecs.InsertResourceCommand{Resource: Score(99)},
	)
	w.Update()

	assert.True(t, ecs.HasComponent[Velocity](w, e))
	assert.False(t, ecs.HasComponent[Position](w, e))
	assert.Equal(t, Score(99), *ecs.ReadResource[Score](w))

	w.EnqueueCommand(ecs.RemoveResourceCommand{Type: reflect.TypeFor[Score]()})
	w.Update()
	assert.False(t, ecs.HasResource[Score](w))
}

func TestEmitEventCommand(t *testing.T) {
	w := ecs.NewWorld()
	ecs.AddEvent[Ping](w)

	w.EnqueueCommand(ecs.EmitEventCommand{Event: Ping{Seq: 7}})
	w.Update()

	// The event was written during this Update's command phase, so
	// the same Update's buffer advance made it previous-frame data.
	got := ecs.Events[Ping](w).Collect()
	assert.Equal(t, []Ping{{Seq: 7}}, got)
}

func TestClearCommands(t *testing.T) {
	w := ecs.NewWorld()
	w.EnqueueCommand(ecs.SpawnCommand{})
	w.ClearCommands()

	w.Update()
	assert.Equal(t, 0, w.EntityCount(), "cleared commands must not execute")
}

func TestEnqueueNilCommandPanics(t *testing.T) {
	w := ecs.NewWorld()
	assert.Panics(t, func() { w.EnqueueCommand(nil) })
	assert.Panics(t, func() { w.EnqueueCommands(ecs.CommandFunc(func(*ecs.World) {}), nil) })
}

func TestCommandBuffer(t *testing.T) {
	w := ecs.NewWorld()
	target := w.CreateEntity()

	var buf ecs.CommandBuffer
	buf.Spawn(Position{X: 1})
	buf.AddComponent(target, Health{Current: 30})
	buf.Defer(func(w *ecs.World) { ecs.InsertResource(w, Tag("ran")) })
	assert.Equal(t, 3, buf.Len())

	w.MergeCommands(&buf)
	assert.True(t, buf.Empty(), "merge must leave the buffer empty")
	assert.Equal(t, 3, w.PendingCommands())

	w.Update()
	assert.Equal(t, 2, w.EntityCount())
	assert.Equal(t, 30, ecs.GetComponent[Health](w, target).Current)
	assert.True(t, ecs.HasResource[Tag](w))
}

func TestConcurrentEnqueue(t *testing.T) {
	w := ecs.NewWorld()

	var mu sync.Mutex
	perProducer := make(map[int][]int)

	var g errgroup.Group
	for p := 0; p < 4; p++ {
		g.Go(func() error {
			for i := 0; i < 250; i++ {
				w.EnqueueCommand(ecs.CommandFunc(func(*ecs.World) {
					mu.Lock()
					perProducer[p] = append(perProducer[p], i)
					mu.Unlock()
				}))
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())
	assert.Equal(t, 1000, w.PendingCommands())

	w.Update()

	// Producers interleave, but each producer's commands keep their
	// submission order.
	for p := 0; p < 4; p++ {
		assert.Len(t, perProducer[p], 250)
		for i, v := range perProducer[p] {
			assert.Equal(t, i, v)
		}
	}
}

func TestReservedEntityUsableInCommands(t *testing.T) {
	w := ecs.NewWorld()

	// A producer reserves a handle and enqueues work against it; the
	// flush happens before the command runs, so the command sees a
	// live entity.
	r := w.ReserveEntity()
	w.EnqueueCommand(ecs.AddComponentCommand{Entity: r, Component: Position{X: 4}})

	w.Update()
	assert.True(t, w.Exists(r))
	assert.Equal(t, float32(4), ecs.GetComponent[Position](w, r).X)
}
