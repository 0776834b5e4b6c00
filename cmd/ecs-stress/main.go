package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/plus3/spinframe/ecs"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	systemCount := flag.Int("systems", 50, "The number of systems to register.")
	actors := flag.Bool("actors", false, "Run every system on its own goroutine.")
	churn := flag.Int("churn", 0, "Entities spawned and deleted per frame through deferred commands.")
	memProfile := flag.Bool("mem-profile", false, "Write an allocation profile to the working directory.")
	flag.Parse()

	log.Println("Starting ECS stress test...")

	if *memProfile {
		p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
		defer p.Stop()
	}

	// 1. Setup World and Scheduler
	world := ecs.NewWorld()
	var opts []ecs.SchedulerOption
	if *actors {
		opts = append(opts, ecs.WithActors(), ecs.WithMailboxSize(1))
	}
	scheduler := ecs.NewScheduler(world, opts...)
	RegisterStressSystems(scheduler, *systemCount, *churn)

	// 2. Populate the world with initial entities
	log.Printf("Populating world with %d entities...\n", *entityCount)
	for i := 0; i < *entityCount; i++ {
		// Spawn an entity with 1 to 5 random components
		numComponents := rand.Intn(5) + 1
		SpawnRandomEntity(world, numComponents)
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Settings: Settings{
			Duration: *duration,
			Entities: *entityCount,
			Systems:  *systemCount,
			Actors:   *actors,
			Churn:    *churn,
		},
	}
	report.Memory.Start()

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	frameCtx := context.WithoutCancel(ctx)
	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := scheduler.Once(frameCtx, deltaTime.Seconds()); err != nil {
				log.Fatalf("Frame failed: %v", err)
			}
			report.Frames.Add(time.Since(updateStart))
		}
	}

	report.Elapsed = time.Since(startTime)
	report.Memory.Stop()
	report.World = world.CollectStats()
	report.Scheduler = scheduler.GetStats()

	if err := scheduler.Close(); err != nil {
		log.Fatalf("Failed to stop scheduler: %v", err)
	}

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Printf("Stress test complete with %d live entities.\n", world.Len())
}
