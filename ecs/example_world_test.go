package ecs_test

import (
	"fmt"
	"sort"

	"github.com/warden-ecs/warden/ecs"
)

// ExampleWorld demonstrates the frame loop: deferred commands apply
// at Update, and queries see the result.
func ExampleWorld() {
	w := ecs.NewWorld()

	player := w.CreateEntity()
	w.AddComponents(player, Position{X: 0, Y: 0}, Health{Current: 100, Max: 100})

	var buf ecs.CommandBuffer
	buf.Spawn(Position{X: 10, Y: 10})
	buf.AddComponent(player, Velocity{DX: 1, DY: 0})
	w.MergeCommands(&buf)

	w.Update()

	movers := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](w)
	for _, m := range movers.Iter() {
		m.Position.X += m.Velocity.DX
		m.Position.Y += m.Velocity.DY
	}

	fmt.Println(w.EntityCount(), ecs.GetComponent[Position](w, player).X)
	// Output: 2 1
}

// ExampleQuery demonstrates optional components: entities match with
// or without the tagged field, which is nil when absent.
func ExampleQuery() {
	w := ecs.NewWorld()

	a := w.CreateEntity()
	w.AddComponents(a, Name{Value: "knight"}, Health{Current: 80, Max: 100})
	b := w.CreateEntity()
	w.AddComponents(b, Name{Value: "barrel"})

	q := ecs.NewQuery[struct {
		*Name
		HP *Health `ecs:"optional"`
	}](w)

	var lines []string
	for _, item := range q.Iter() {
		if item.HP != nil {
			lines = append(lines, fmt.Sprintf("%s %d/%d", item.Name.Value, item.HP.Current, item.HP.Max))
		} else {
			lines = append(lines, item.Name.Value)
		}
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Println(l)
	}
	// Output:
	// barrel
	// knight 80/100
}

// ExampleEventReader demonstrates double-buffered event flow across
// two frames.
func ExampleEventReader() {
	w := ecs.NewWorld()
	ecs.AddEvent[Damage](w)

	ecs.WriteEvent(w, Damage{Amount: 12})
	w.Update()

	ecs.Events[Damage](w).ForEach(func(d Damage) {
		fmt.Println("took", d.Amount)
	})

	w.Update()
	fmt.Println("pending:", ecs.Events[Damage](w).Len())
	// Output:
	// took 12
	// pending: 0
}
