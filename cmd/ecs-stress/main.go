package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/warden-ecs/warden/ecs"
)

type position struct{ X, Y float32 }
type velocity struct{ DX, DY float32 }
type health struct{ Current, Max int }
type lifetime struct{ Frames int }

type tick struct{ Frame uint64 }

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	churn := flag.Int("churn", 200, "Entities spawned and destroyed per frame through the command queue.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting ECS stress test",
		zap.Duration("duration", *duration),
		zap.Int("entities", *entityCount),
		zap.Int("churn", *churn))

	w := ecs.NewWorld(
		ecs.WithLogger(log),
		ecs.WithEntityCapacity(*entityCount*2),
	)
	ecs.AddEvent[ecs.EntitySpawnedEvent](w)
	ecs.AddEvent[ecs.EntityDestroyedEvent](w)
	ecs.AddEvent[tick](w)

	for i := 0; i < *entityCount; i++ {
		spawnRandomEntity(w)
	}
	log.Info("population complete", zap.Int("entities", w.EntityCount()))

	movers := ecs.NewQuery[moverView](w)
	mortal := ecs.NewQuery[mortalView](w)

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Churn:          *churn,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var frame uint64
	var spawned, destroyed int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			runFrame(w, movers, mortal, *churn, frame)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

			spawned += int64(ecs.Events[ecs.EntitySpawnedEvent](w).Len())
			destroyed += int64(ecs.Events[ecs.EntityDestroyedEvent](w).Len())
			frame++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = int64(frame)
	report.Spawned = spawned
	report.Destroyed = destroyed
	report.FinalEntities = w.EntityCount()
	report.Archetypes = w.ArchetypeCount()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Uint64("frames", frame))

	fmt.Println("\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

type moverView struct {
	*position
	*velocity
}

type mortalView struct {
	*lifetime
}

// runFrame is one tick of the simulated game: move everything, age
// the mortals, then churn entities through the command queue so the
// archetype graph and the free list stay busy.
func runFrame(w *ecs.World, movers *ecs.Query[moverView], mortal *ecs.Query[mortalView], churn int, frame uint64) {
	for _, m := range movers.Iter() {
		m.position.X += m.velocity.DX
		m.position.Y += m.velocity.DY
	}

	var buf ecs.CommandBuffer
	for e, item := range mortal.Iter() {
		item.lifetime.Frames--
		if item.lifetime.Frames <= 0 {
			buf.TryDestroy(e)
		}
	}
	for i := 0; i < churn; i++ {
		buf.Spawn(position{X: rand.Float32()}, velocity{DX: rand.Float32()},
			lifetime{Frames: rand.Intn(120) + 1})
	}
	buf.EmitEvent(tick{Frame: frame})
	w.MergeCommands(&buf)

	w.Update()
}

func spawnRandomEntity(w *ecs.World) {
	e := w.CreateEntity()
	ecs.AddComponent(w, e, position{X: rand.Float32() * 100, Y: rand.Float32() * 100})
	if rand.Intn(2) == 0 {
		ecs.AddComponent(w, e, velocity{DX: rand.Float32(), DY: rand.Float32()})
	}
	if rand.Intn(2) == 0 {
		ecs.AddComponent(w, e, health{Current: 100, Max: 100})
	}
	if rand.Intn(4) == 0 {
		ecs.AddComponent(w, e, lifetime{Frames: rand.Intn(600) + 60})
	}
}
