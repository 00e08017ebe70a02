package ecs

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// System is a unit of per-tick behavior. Implementations are structs whose
// exported fields of parameter types (Query, Res, ResMut, Local, EventReader,
// EventWriter) are discovered at registration, initialized once, and resolved
// against the World before every Execute. Any other fields are plain state
// that persists across ticks.
type System interface {
	Execute(frame *Frame)
}

// Frame carries the per-tick context handed to every system.
type Frame struct {
	DeltaTime float64
	World     *World
	Commands  *Commands
}

// systemParam is implemented by every injectable parameter field type.
// initParam runs exactly once per registration; acquire/release bracket each
// Execute.
type systemParam interface {
	initParam(w *World) error
	acquire(w *World) error
	release()
}

type systemStats struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStats) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

type systemRecord struct {
	system      System
	name        string
	params      []systemParam
	stats       systemStats
	initialized bool
}

// Scheduler runs registered systems once per tick, synchronously and in
// registration order. There is no reordering, batching, or parallel dispatch;
// each system observes every mutation made by the systems before it in the
// same tick.
type Scheduler struct {
	world   *World
	systems []*systemRecord
}

// NewScheduler creates a scheduler bound to w.
func NewScheduler(w *World) *Scheduler {
	return &Scheduler{world: w}
}

// Register appends a system to the execution order and collects its parameter
// fields. Parameter fields must be exported (or embedded) to be injectable;
// unexported fields are skipped.
func (s *Scheduler) Register(system System) {
	rec := &systemRecord{
		system: system,
		name:   systemName(system),
		params: collectParams(system),
	}
	rec.stats.name = rec.name
	rec.stats.minDuration = time.Duration(1<<63 - 1)
	s.systems = append(s.systems, rec)
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func collectParams(system System) []systemParam {
	v := reflect.ValueOf(system)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	var params []systemParam
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if !field.CanAddr() {
			continue
		}
		if p, ok := field.Addr().Interface().(systemParam); ok {
			params = append(params, p)
		}
	}
	return params
}

// Initialize runs each registered system's one-time parameter initialization.
// Each system is initialized exactly once, so systems registered after the
// first Tick are picked up on the next one. Idempotent; Tick calls it
// automatically if the caller has not.
func (s *Scheduler) Initialize() error {
	for _, rec := range s.systems {
		if rec.initialized {
			continue
		}
		for _, p := range rec.params {
			if err := p.initParam(s.world); err != nil {
				return fmt.Errorf("initializing system %s: %w", rec.name, err)
			}
		}
		rec.initialized = true
	}
	return nil
}

// Tick executes every system once, in registration order, then flushes the
// tick's deferred commands. A system that panics abandons the remainder of
// the tick (later systems do not run and the command buffer is discarded)
// and surfaces as a *SystemPanicError; the process survives.
func (s *Scheduler) Tick(dt float64) error {
	if err := s.Initialize(); err != nil {
		return err
	}
	frame := &Frame{DeltaTime: dt, World: s.world, Commands: newCommands()}
	for _, rec := range s.systems {
		if err := s.runSystem(rec, frame); err != nil {
			return err
		}
	}
	frame.Commands.Flush(s.world)
	return nil
}

func (s *Scheduler) runSystem(rec *systemRecord, frame *Frame) (err error) {
	acquired := make([]systemParam, 0, len(rec.params))
	for _, p := range rec.params {
		if aerr := p.acquire(s.world); aerr != nil {
			for _, q := range acquired {
				q.release()
			}
			return fmt.Errorf("system %s: %w", rec.name, aerr)
		}
		acquired = append(acquired, p)
	}
	defer func() {
		for _, p := range acquired {
			p.release()
		}
		if r := recover(); r != nil {
			err = &SystemPanicError{System: rec.name, Value: r}
		}
	}()
	start := time.Now()
	rec.system.Execute(frame)
	rec.stats.record(time.Since(start))
	return nil
}

// Run drives the scheduler at the given interval until the context is
// cancelled or a tick fails. Each iteration performs one full frame tick:
// systems run, then event buffers rotate.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := s.Tick(dt); err != nil {
				return err
			}
			s.world.UpdateEvents()
		}
	}
}

// SchedulerStats is a snapshot of scheduler execution counters.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats is a snapshot of one system's execution timing.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// Stats returns execution statistics for every registered system.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}
	for i, rec := range s.systems {
		avg := time.Duration(0)
		if rec.stats.executionCount > 0 {
			avg = rec.stats.totalDuration / time.Duration(rec.stats.executionCount)
		}
		stats.Systems[i] = SystemStats{
			Name:           rec.stats.name,
			ExecutionCount: rec.stats.executionCount,
			MinDuration:    rec.stats.minDuration,
			MaxDuration:    rec.stats.maxDuration,
			AvgDuration:    avg,
			LastDuration:   rec.stats.lastDuration,
			TotalDuration:  rec.stats.totalDuration,
		}
		stats.TotalExecutions += rec.stats.executionCount
	}
	return stats
}
