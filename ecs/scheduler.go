package ecs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/plus3/spinframe/platform"
)

// ErrSchedulerClosed is returned when a closed scheduler is asked to run a frame.
var ErrSchedulerClosed = errors.New("scheduler closed")

// State is the scheduler lifecycle state.
type State uint8

const (
	StateInit State = iota
	StateRunning
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	LastMatches    int
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	lastMatches    int
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the scheduler logger.
func WithLogger(logger *zap.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithActors runs every registered system on its own goroutine with a mailbox.
// Dispatch stays sequential: each request waits for the actor's reply.
func WithActors() SchedulerOption {
	return func(s *Scheduler) {
		s.actors = true
	}
}

// WithMailboxSize sets the actor mailbox capacity.
func WithMailboxSize(size int) SchedulerOption {
	return func(s *Scheduler) {
		s.mailboxSize = size
	}
}

// WithFrameInterval throttles Run to at most one frame per interval.
// Zero disables throttling.
func WithFrameInterval(interval time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		s.interval = interval
	}
}

// Scheduler drives registered systems once per frame, in registration order.
// A system is never dispatched before the previous system acknowledged its update.
type Scheduler struct {
	world       *World
	units       []Unit
	actorUnits  []*actorUnit
	systemStats []*systemStatsInternal
	commands    *Commands
	logger      *zap.Logger

	actors      bool
	mailboxSize int
	interval    time.Duration

	state    State
	frame    uint64
	lastTime time.Time

	actorCtx context.Context
	cancel   context.CancelFunc
	group    *errgroup.Group
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		world:    world,
		units:    make([]Unit, 0),
		commands: newCommands(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a system after every system registered so far.
func (s *Scheduler) Register(system System) {
	if !s.actors {
		s.registerUnit(newDirectUnit(system))
		return
	}

	actor := newActorUnit(system, s.mailboxSize)
	s.actorUnits = append(s.actorUnits, actor)
	if s.state == StateRunning {
		ctx := s.actorCtx
		s.group.Go(func() error { return actor.run(ctx) })
	}
	s.registerUnit(actor)
}

// RegisterUnit adds a unit addressed through a mechanism of the caller's choosing.
func (s *Scheduler) RegisterUnit(unit Unit) {
	s.registerUnit(unit)
}

func (s *Scheduler) registerUnit(unit Unit) {
	s.units = append(s.units, unit)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        unit.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
	s.logger.Debug("system registered",
		zap.String("system", unit.Name()),
		zap.Int("position", len(s.units)-1),
	)
}

// World returns the world driven by the scheduler.
func (s *Scheduler) World() *World {
	return s.world
}

// State returns the lifecycle state.
func (s *Scheduler) State() State {
	return s.state
}

// Frame returns the number of frames started so far.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// Start moves the scheduler from Init to Running and starts actor goroutines.
// Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) error {
	switch s.state {
	case StateRunning:
		return nil
	case StateTerminated:
		return ErrSchedulerClosed
	}

	// Actors live until Close so that cancelling ctx never interrupts a frame.
	s.actorCtx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	s.group = &errgroup.Group{}
	for _, actor := range s.actorUnits {
		actorCtx := s.actorCtx
		s.group.Go(func() error { return actor.run(actorCtx) })
	}

	s.state = StateRunning
	s.lastTime = time.Now()
	s.logger.Info("scheduler running",
		zap.Int("systems", len(s.units)),
		zap.Bool("actors", s.actors),
	)
	return nil
}

// Once drives every registered system for one frame with the given delta time,
// then flushes the deferred commands issued during the frame.
// Any error aborts the frame; the World may be left mid-frame.
func (s *Scheduler) Once(ctx context.Context, dt float64) error {
	if err := s.Start(ctx); err != nil {
		return err
	}

	s.frame++
	for i, unit := range s.units {
		start := time.Now()

		types, err := unit.ComponentTypes(ctx)
		if err != nil {
			return fmt.Errorf("system %s: component types: %w", unit.Name(), err)
		}

		entities := s.world.Resolve(types)
		frame := newUpdateFrame(s.frame, dt, s.commands, entities)
		if err := unit.Update(ctx, frame); err != nil {
			return fmt.Errorf("system %s: update: %w", unit.Name(), err)
		}

		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastMatches = len(entities)
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.commands.Flush(s.world)
	return nil
}

// Step polls the event source once. A terminating event closes the scheduler
// and reports true; otherwise one frame is driven.
func (s *Scheduler) Step(ctx context.Context, events platform.EventSource) (bool, error) {
	if s.state == StateTerminated {
		return true, nil
	}

	for _, event := range events.PollEvents() {
		if event.Terminates() {
			s.logger.Info("termination requested",
				zap.Stringer("event", event),
				zap.Uint64("frames", s.frame),
			)
			return true, s.Close()
		}
	}

	now := time.Now()
	dt := 0.0
	if !s.lastTime.IsZero() {
		dt = now.Sub(s.lastTime).Seconds()
	}
	s.lastTime = now

	return false, s.Once(ctx, dt)
}

// Run steps frames until a terminating event is observed or ctx is cancelled.
// Cancellation is checked between frames only; a frame in flight always completes.
func (s *Scheduler) Run(ctx context.Context, events platform.EventSource) error {
	if err := s.Start(ctx); err != nil {
		return err
	}

	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	frameCtx := context.WithoutCancel(ctx)
	for {
		select {
		case <-ctx.Done():
			return s.Close()
		default:
		}

		done, err := s.Step(frameCtx, events)
		if err != nil {
			return err
		}
		if done {
			return nil
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return s.Close()
			case <-tick:
			}
		}
	}
}

// Close terminates the scheduler and waits for actor goroutines to exit.
func (s *Scheduler) Close() error {
	if s.state == StateTerminated {
		return nil
	}
	s.state = StateTerminated

	if s.cancel == nil {
		return nil
	}
	s.cancel()
	err := s.group.Wait()
	s.logger.Info("scheduler terminated", zap.Uint64("frames", s.frame))
	return err
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.units),
		Frames:      s.frame,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			LastMatches:    internal.lastMatches,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
