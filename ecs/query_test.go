package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warden-ecs/warden/ecs"
	"github.com/warden-ecs/warden/seq"
)

func TestQueryIter(t *testing.T) {
	w := ecs.NewWorld()

	e1 := w.CreateEntity()
	w.AddComponents(e1, Position{X: 1}, Velocity{DX: 0.5})
	e2 := w.CreateEntity()
	w.AddComponents(e2, Position{X: 3}, Velocity{DX: 1.0})
	e3 := w.CreateEntity()
	w.AddComponents(e3, Position{X: 5}, Velocity{DX: 1.5}, Health{Current: 100})
	e4 := w.CreateEntity()
	w.AddComponents(e4, Position{X: 7})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](w)

	matched := make(map[ecs.Entity]float32)
	for e, item := range query.Iter() {
		matched[e] = item.Position.X
	}

	assert.Equal(t, map[ecs.Entity]float32{e1: 1, e2: 3, e3: 5}, matched)
	assert.Equal(t, 3, query.Count())
}

func TestQueryMutatesThroughPointers(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	w.AddComponents(e, Position{X: 1, Y: 1}, Velocity{DX: 2, DY: 3})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](w)
	for _, item := range query.Iter() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
	}

	assert.Equal(t, Position{X: 3, Y: 4}, *ecs.GetComponent[Position](w, e))
}

func TestQueryOptionalFields(t *testing.T) {
	w := ecs.NewWorld()

	armed := w.CreateEntity()
	w.AddComponents(armed, Position{X: 1}, Health{Current: 50})
	unarmed := w.CreateEntity()
	w.AddComponents(unarmed, Position{X: 2})

	query := ecs.NewQuery[struct {
		*Position
		HP *Health `ecs:"optional"`
	}](w)

	withHP, withoutHP := 0, 0
	for _, item := range query.Iter() {
		if item.HP != nil {
			withHP++
		} else {
			withoutHP++
		}
	}
	assert.Equal(t, 1, withHP)
	assert.Equal(t, 1, withoutHP)
	assert.Equal(t, 2, query.Count())
}

func TestQueryCacheInvalidation(t *testing.T) {
	w := ecs.NewWorld()
	query := ecs.NewQuery[struct{ *Position }](w)

	assert.Equal(t, 0, query.Count())

	e := w.CreateEntity()
	ecs.AddComponent(w, e, Position{X: 1})
	assert.Equal(t, 1, query.Count(), "structural change must refresh the cache")

	ecs.RemoveComponent[Position](w, e)
	assert.Equal(t, 0, query.Count())
}

func TestQueryUnknownTypeMatchesNothing(t *testing.T) {
	w := ecs.NewWorld()
	w.CreateEntity()

	type NeverAttached struct{ V int }
	query := ecs.NewQuery[struct{ *NeverAttached }](w)
	assert.Equal(t, 0, query.Count())
}

func TestQueryRejectsBadViewStructs(t *testing.T) {
	w := ecs.NewWorld()

	assert.Panics(t, func() { ecs.NewQuery[int](w) })
	assert.Panics(t, func() { ecs.NewQuery[struct{ X Position }](w) })
	assert.Panics(t, func() {
		ecs.NewQuery[struct {
			P *Position `ecs:"bogus"`
		}](w)
	})
}

func TestQueryFeedsAdapterPipeline(t *testing.T) {
	w := ecs.NewWorld()
	for i := 1; i <= 6; i++ {
		e := w.CreateEntity()
		ecs.AddComponent(w, e, Health{Current: i * 10, Max: 100})
	}

	query := ecs.NewQuery[struct{ *Health }](w)

	wounded := seq.Map(query.Values(), func(v struct{ *Health }) int { return v.Health.Current }).
		Filter(func(hp int) bool { return hp < 40 }).
		Collect()

	assert.ElementsMatch(t, []int{10, 20, 30}, wounded)
}
