package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"

	"github.com/warden-ecs/warden/ecs"
)

func TestWorldCreateAndDestroy(t *testing.T) {
	w := ecs.NewWorld()

	e := w.CreateEntity()
	assert.True(t, e.Valid())
	assert.True(t, w.Exists(e))
	assert.Equal(t, 1, w.EntityCount())

	w.DestroyEntity(e)
	assert.False(t, w.Exists(e))
	assert.Equal(t, 0, w.EntityCount())
}

func TestWorldGenerationRecycling(t *testing.T) {
	w := ecs.NewWorld()

	e := w.CreateEntity()
	w.DestroyEntity(e)

	recycled := w.CreateEntity()
	assert.Equal(t, e.Index(), recycled.Index())
	assert.Equal(t, e.Generation()+1, recycled.Generation())
	assert.False(t, w.Exists(e))
	assert.True(t, w.Exists(recycled))
}

func TestWorldDestroyAsserts(t *testing.T) {
	w := ecs.NewWorld()

	assert.Panics(t, func() { w.DestroyEntity(ecs.InvalidEntity) })

	e := w.CreateEntity()
	w.DestroyEntity(e)
	assert.Panics(t, func() { w.DestroyEntity(e) })
	assert.False(t, w.TryDestroyEntity(e))
}

func TestWorldCreateEntities(t *testing.T) {
	w := ecs.NewWorld()

	batch := w.CreateEntities(64)
	assert.Len(t, batch, 64)
	assert.Equal(t, 64, w.EntityCount())
	for _, e := range batch {
		assert.True(t, w.Exists(e))
	}
}

func TestWorldDestroyEntities(t *testing.T) {
	w := ecs.NewWorld()
	batch := w.CreateEntities(4)

	// Destroying one up-front makes the batch destroy skip it.
	w.DestroyEntity(batch[0])
	w.DestroyEntities(batch)
	assert.Equal(t, 0, w.EntityCount())

	t.Run("invalid handle panics", func(t *testing.T) {
		assert.Panics(t, func() {
			w.DestroyEntities([]ecs.Entity{ecs.InvalidEntity})
		})
	})

	t.Run("try variant counts", func(t *testing.T) {
		fresh := w.CreateEntities(3)
		w.DestroyEntity(fresh[1])
		assert.Equal(t, 2, w.TryDestroyEntities(fresh))
	})
}

func TestWorldReserveEntity(t *testing.T) {
	w := ecs.NewWorld()

	r := w.ReserveEntity()
	assert.True(t, r.Valid())
	assert.False(t, w.Exists(r), "reserved entity must not exist before Update")

	w.Update()
	assert.True(t, w.Exists(r))
	assert.Equal(t, 1, w.EntityCount())
}

func TestWorldConcurrentReservation(t *testing.T) {
	w := ecs.NewWorld()
	start := w.EntityCount()

	var g errgroup.Group
	results := make([][]ecs.Entity, 2)
	for i := 0; i < 2; i++ {
		g.Go(func() error {
			for j := 0; j < 1000; j++ {
				results[i] = append(results[i], w.ReserveEntity())
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())

	w.Update()
	assert.Equal(t, start+2000, w.EntityCount())

	seen := make(map[uint32]bool)
	for _, batch := range results {
		for _, e := range batch {
			assert.True(t, w.Exists(e))
			assert.False(t, seen[e.Index()], "reserved indices must be unique")
			seen[e.Index()] = true
		}
	}
}

func TestWorldClearEntities(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	ecs.AddComponent(w, e, Position{X: 1})
	ecs.InsertResource(w, Score(42))

	w.ClearEntities()
	assert.Equal(t, 0, w.EntityCount())
	assert.False(t, w.Exists(e))
	assert.True(t, ecs.HasResource[Score](w), "resources survive ClearEntities")
}

func TestWorldClear(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	ecs.AddComponent(w, e, Position{X: 1})
	ecs.InsertResource(w, Score(42))
	ecs.AddEvent[Ping](w)
	ecs.WriteEvent(w, Ping{Seq: 1})
	w.EnqueueCommand(ecs.CommandFunc(func(*ecs.World) {}))

	w.Clear()
	assert.Equal(t, 0, w.EntityCount())
	assert.False(t, ecs.HasResource[Score](w))
	assert.False(t, ecs.EventRegistered[Ping](w))
	assert.Equal(t, 0, w.PendingCommands())
}

func TestWorldComponentTypes(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	ecs.AddComponent(w, e, Position{})
	ecs.AddComponent(w, e, Health{Current: 10})

	types := w.ComponentTypes(e)
	assert.Len(t, types, 2)
	assert.Equal(t, "ecs_test.Position", types[0].String())
	assert.Equal(t, "ecs_test.Health", types[1].String())
}
