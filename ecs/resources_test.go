package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warden-ecs/warden/ecs"
)

type FrameClock struct {
	Tick  uint64
	Delta float64
}

func TestResourceInsertAndRead(t *testing.T) {
	w := ecs.NewWorld()

	ecs.InsertResource(w, FrameClock{Tick: 1, Delta: 0.016})
	assert.True(t, ecs.HasResource[FrameClock](w))
	assert.Equal(t, uint64(1), ecs.ReadResource[FrameClock](w).Tick)

	// Writes through the pointer are visible to later reads.
	ecs.WriteResource[FrameClock](w).Tick = 2
	assert.Equal(t, uint64(2), ecs.ReadResource[FrameClock](w).Tick)

	// Insert replaces wholesale.
	ecs.InsertResource(w, FrameClock{Tick: 9})
	assert.Equal(t, uint64(9), ecs.ReadResource[FrameClock](w).Tick)
}

func TestResourceTryInsert(t *testing.T) {
	w := ecs.NewWorld()

	assert.True(t, ecs.TryInsertResource(w, Score(1)))
	assert.False(t, ecs.TryInsertResource(w, Score(2)))
	assert.Equal(t, Score(1), *ecs.ReadResource[Score](w))
}

func TestResourceEmplace(t *testing.T) {
	w := ecs.NewWorld()

	clock := ecs.EmplaceResource[FrameClock](w)
	assert.Equal(t, FrameClock{}, *clock)
	clock.Tick = 5
	assert.Equal(t, uint64(5), ecs.ReadResource[FrameClock](w).Tick)

	t.Run("try variant keeps existing", func(t *testing.T) {
		p, created := ecs.TryEmplaceResource[FrameClock](w)
		assert.False(t, created)
		assert.Equal(t, uint64(5), p.Tick)

		s, created := ecs.TryEmplaceResource[Score](w)
		assert.True(t, created)
		assert.Equal(t, Score(0), *s)
	})
}

func TestResourceRemove(t *testing.T) {
	w := ecs.NewWorld()

	assert.Panics(t, func() { ecs.RemoveResource[Score](w) })
	assert.False(t, ecs.TryRemoveResource[Score](w))

	ecs.InsertResource(w, Score(3))
	ecs.RemoveResource[Score](w)
	assert.False(t, ecs.HasResource[Score](w))
}

func TestResourceAbsentAccess(t *testing.T) {
	w := ecs.NewWorld()

	assert.Panics(t, func() { ecs.ReadResource[Score](w) })
	assert.Panics(t, func() { ecs.WriteResource[Score](w) })
	assert.Nil(t, ecs.TryReadResource[Score](w))
	assert.Nil(t, ecs.TryWriteResource[Score](w))
}
