package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/keel/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movementSystem struct {
	Moving       ecs.Query[moving]
	ExecuteCount int
}

func (s *movementSystem) Execute(frame *ecs.Frame) {
	s.ExecuteCount++
	for _, item := range s.Moving.Iter() {
		item.Pos.Get().X += item.Vel.Get().DX * float32(frame.DeltaTime)
		item.Pos.Get().Y += item.Vel.Get().DY * float32(frame.DeltaTime)
	}
}

type healthSystem struct {
	Damaged      ecs.Query[struct{ Health ecs.Write[Health] }]
	ExecuteCount int
	TotalHealth  int
}

func (s *healthSystem) Execute(frame *ecs.Frame) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for _, item := range s.Damaged.Iter() {
		s.TotalHealth += item.Health.Get().Current
	}
}

func TestSchedulerExecutesInRegistrationOrder(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)

	movement := &movementSystem{}
	health := &healthSystem{}
	scheduler.Register(movement)
	scheduler.Register(health)

	w.AddEntity(Position{}, Velocity{DX: 1, DY: 2})
	w.AddEntity(Health{Current: 100, Max: 100})

	require.NoError(t, scheduler.Tick(1.0))
	assert.Equal(t, 1, movement.ExecuteCount)
	assert.Equal(t, 1, health.ExecuteCount)
	assert.Equal(t, 100, health.TotalHealth)

	require.NoError(t, scheduler.Tick(1.0))
	assert.Equal(t, 2, movement.ExecuteCount)
	assert.Equal(t, 2, health.ExecuteCount)
}

func TestSchedulerQueryReresolvedEachTick(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)
	movement := &movementSystem{}
	scheduler.Register(movement)

	e := w.AddEntity(Position{}, Velocity{DX: 1})
	require.NoError(t, scheduler.Tick(1.0))
	assert.Equal(t, float32(1), ecs.GetComponent[Position](w, e).X)

	// New entities are visible on the following tick without re-registration.
	f := w.AddEntity(Position{}, Velocity{DX: 5})
	require.NoError(t, scheduler.Tick(1.0))
	assert.Equal(t, float32(2), ecs.GetComponent[Position](w, e).X)
	assert.Equal(t, float32(5), ecs.GetComponent[Position](w, f).X)
}

func TestSchedulerRegisterAfterFirstTick(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)
	scheduler.Register(&movementSystem{})

	e := w.AddEntity(Position{}, Velocity{DX: 1})
	require.NoError(t, scheduler.Tick(1.0))

	// A system registered after the scheduler has started is initialized on
	// the next tick and runs like any other.
	late := &movementSystem{}
	scheduler.Register(late)

	require.NoError(t, scheduler.Tick(1.0))
	assert.Equal(t, 1, late.ExecuteCount)
	assert.Equal(t, float32(3), ecs.GetComponent[Position](w, e).X)
}

type orderProbe struct {
	Label string
	Log   *[]string
}

func (s *orderProbe) Execute(frame *ecs.Frame) {
	*s.Log = append(*s.Log, s.Label)
}

func TestSchedulerSequentialMutationVisibility(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)

	var log []string
	scheduler.Register(&orderProbe{Label: "first", Log: &log})
	scheduler.Register(&orderProbe{Label: "second", Log: &log})
	scheduler.Register(&orderProbe{Label: "third", Log: &log})

	require.NoError(t, scheduler.Tick(1.0))
	assert.Equal(t, []string{"first", "second", "third"}, log)
}

type tickCounter struct {
	Count ecs.Local[int]
	Last  int
}

func (s *tickCounter) Execute(frame *ecs.Frame) {
	c := s.Count.Get()
	*c++
	s.Last = *c
}

func TestSchedulerLocalPersistsAcrossTicks(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)
	counter := &tickCounter{}
	scheduler.Register(counter)

	for i := 1; i <= 3; i++ {
		require.NoError(t, scheduler.Tick(1.0))
		assert.Equal(t, i, counter.Last)
	}
}

type gameClock struct {
	Elapsed float64
}

type clockSystem struct {
	Clock ecs.ResMut[gameClock]
}

func (s *clockSystem) Execute(frame *ecs.Frame) {
	s.Clock.Get().Elapsed += frame.DeltaTime
}

type clockObserver struct {
	Clock    ecs.Res[gameClock]
	Observed float64
}

func (s *clockObserver) Execute(frame *ecs.Frame) {
	s.Observed = s.Clock.Get().Elapsed
}

func TestSchedulerResourceInjection(t *testing.T) {
	w := newTestWorld()
	ecs.InsertResource(w, gameClock{})

	scheduler := ecs.NewScheduler(w)
	scheduler.Register(&clockSystem{})
	observer := &clockObserver{}
	scheduler.Register(observer)

	require.NoError(t, scheduler.Tick(0.5))
	require.NoError(t, scheduler.Tick(0.25))

	assert.InDelta(t, 0.75, observer.Observed, 1e-9)
}

type highScore struct {
	Value float64
}

type scoreSystem struct {
	Clock ecs.Res[gameClock]
	Score ecs.ResMut[highScore]
}

func (s *scoreSystem) Execute(frame *ecs.Frame) {
	if s.Clock.Get().Elapsed > s.Score.Get().Value {
		s.Score.Get().Value = s.Clock.Get().Elapsed
	}
}

func TestSchedulerMixedBorrowsInOneSystem(t *testing.T) {
	w := newTestWorld()
	ecs.InsertResource(w, gameClock{Elapsed: 3})
	ecs.InsertResource(w, highScore{})

	scheduler := ecs.NewScheduler(w)
	scheduler.Register(&scoreSystem{})

	require.NoError(t, scheduler.Tick(1.0))

	res, err := ecs.ReadResource[highScore](w)
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.Get().Value)
	res.Release()
}

type missingResourceSystem struct {
	Clock ecs.Res[gameClock]
}

func (s *missingResourceSystem) Execute(frame *ecs.Frame) {}

func TestSchedulerMissingResourceFailsTick(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)
	scheduler.Register(&missingResourceSystem{})

	err := scheduler.Tick(1.0)
	var notFound *ecs.ResourceNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

type panickingSystem struct{}

func (s *panickingSystem) Execute(frame *ecs.Frame) {
	panic("boom")
}

func TestSchedulerSystemPanicAbortsTick(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)

	var log []string
	scheduler.Register(&orderProbe{Label: "before", Log: &log})
	scheduler.Register(&panickingSystem{})
	scheduler.Register(&orderProbe{Label: "after", Log: &log})

	err := scheduler.Tick(1.0)

	var panicked *ecs.SystemPanicError
	require.ErrorAs(t, err, &panicked)
	assert.Equal(t, "panickingSystem", panicked.System)
	assert.Equal(t, "boom", panicked.Value)

	// The system after the panic never ran.
	assert.Equal(t, []string{"before"}, log)

	// The scheduler stays usable.
	require.Error(t, scheduler.Tick(1.0))
	assert.Equal(t, []string{"before", "before"}, log)
}

type spawnOnce struct {
	Spawned ecs.Local[bool]
}

func (s *spawnOnce) Execute(frame *ecs.Frame) {
	done := s.Spawned.Get()
	if *done {
		return
	}
	*done = true
	frame.Commands.Spawn(Position{X: 42})
}

func TestSchedulerCommandsFlushAfterTick(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)
	scheduler.Register(&spawnOnce{})

	require.NoError(t, scheduler.Tick(1.0))
	require.Len(t, w.Entities(), 1)
	assert.Equal(t, float32(42), ecs.GetComponent[Position](w, w.Entities()[0]).X)

	require.NoError(t, scheduler.Tick(1.0))
	assert.Len(t, w.Entities(), 1)
}

type despawnAll struct {
	All ecs.Query[struct{ Pos ecs.Read[Position] }]
}

func (s *despawnAll) Execute(frame *ecs.Frame) {
	for e := range s.All.Iter() {
		frame.Commands.Despawn(e)
	}
}

func TestSchedulerDeferredDespawn(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)
	scheduler.Register(&despawnAll{})

	a := w.AddEntity(Position{})
	b := w.AddEntity(Position{})

	require.NoError(t, scheduler.Tick(1.0))

	assert.False(t, w.IsLive(a))
	assert.False(t, w.IsLive(b))
	assert.Empty(t, w.Entities())
}

type panicAfterSpawn struct{}

func (s *panicAfterSpawn) Execute(frame *ecs.Frame) {
	frame.Commands.Spawn(Position{})
	panic("mid-tick failure")
}

func TestSchedulerAbortedTickDiscardsCommands(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)
	scheduler.Register(&panicAfterSpawn{})

	require.Error(t, scheduler.Tick(1.0))
	assert.Empty(t, w.Entities())
}

func TestSchedulerInitializeIdempotent(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)
	counter := &tickCounter{}
	scheduler.Register(counter)

	require.NoError(t, scheduler.Initialize())
	require.NoError(t, scheduler.Initialize())
	require.NoError(t, scheduler.Tick(1.0))
	assert.Equal(t, 1, counter.Last)
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)
	counter := &tickCounter{}
	scheduler.Register(counter)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- scheduler.Run(ctx, time.Millisecond)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
	assert.Greater(t, counter.Last, 0)
}

func TestSchedulerStats(t *testing.T) {
	w := newTestWorld()
	scheduler := ecs.NewScheduler(w)
	scheduler.Register(&movementSystem{})
	scheduler.Register(&healthSystem{})

	require.NoError(t, scheduler.Tick(1.0))
	require.NoError(t, scheduler.Tick(1.0))

	stats := scheduler.Stats()
	require.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(4), stats.TotalExecutions)

	for _, sys := range stats.Systems {
		assert.Equal(t, int64(2), sys.ExecutionCount)
		assert.GreaterOrEqual(t, sys.MaxDuration, sys.MinDuration)
		assert.GreaterOrEqual(t, sys.TotalDuration, sys.MaxDuration)
	}
	assert.Equal(t, "movementSystem", stats.Systems[0].Name)
	assert.Equal(t, "healthSystem", stats.Systems[1].Name)
}
