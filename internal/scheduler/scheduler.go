// Package scheduler drives the recurring refresh cycle: aggregate, cache,
// notify, record. One cycle failure never stops the loop; the cache keeps its
// last good snapshot and the next interval retries.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/aggregator"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/cache"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/events"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/history"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/telemetry"
)

var tracer = telemetry.GetTracer("skillspring/opportunities/scheduler")

// State is the scheduler's lifecycle position. Transitions:
// Idle -> Refreshing on Start, Refreshing -> Sleeping when a cycle completes
// (success or failure), Sleeping -> Refreshing when the interval elapses,
// and back to Idle on Stop.
type State string

const (
	StateIdle       State = "idle"
	StateRefreshing State = "refreshing"
	StateSleeping   State = "sleeping"
)

type Scheduler struct {
	aggregator *aggregator.Aggregator
	cache      cache.SnapshotCache
	sink       events.Sink
	recorder   history.Recorder
	logger     *zap.Logger
	interval   time.Duration

	mu       sync.Mutex
	state    State
	active   bool
	stopOnce sync.Once
	stopCh   chan struct{}

	now   func() time.Time
	ticks <-chan time.Time // injected in tests; nil means use a real ticker
}

func New(agg *aggregator.Aggregator, snapCache cache.SnapshotCache, sink events.Sink, recorder history.Recorder, logger *zap.Logger, interval time.Duration) *Scheduler {
	return &Scheduler{
		aggregator: agg,
		cache:      snapCache,
		sink:       sink,
		recorder:   recorder,
		logger:     logger,
		interval:   interval,
		state:      StateIdle,
		stopCh:     make(chan struct{}),
		now:        time.Now,
	}
}

// NewWithTicks is New with an injected tick channel and clock, so tests can
// drive cycles without real time passing.
func NewWithTicks(agg *aggregator.Aggregator, snapCache cache.SnapshotCache, sink events.Sink, recorder history.Recorder, logger *zap.Logger, ticks <-chan time.Time, now func() time.Time) *Scheduler {
	s := New(agg, snapCache, sink, recorder, logger, time.Hour)
	s.ticks = ticks
	s.now = now
	return s
}

// Start runs the refresh loop until the context is cancelled or Stop is
// called. The first cycle runs immediately. Start returns nil when called on
// an already-running scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return nil
	}
	s.active = true
	s.mu.Unlock()

	ticks := s.ticks
	if ticks == nil {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for {
		s.setState(StateRefreshing)
		s.runCycle(ctx)
		s.setState(StateSleeping)

		select {
		case <-ctx.Done():
			s.deactivate()
			return ctx.Err()
		case <-s.stopCh:
			s.deactivate()
			return nil
		case <-ticks:
		}
	}
}

// Stop ceases scheduling of new cycles. An in-flight cycle is left to finish;
// the loop exits at the next scheduling point.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// State reports the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Scheduler) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Scheduler) deactivate() {
	s.mu.Lock()
	s.active = false
	s.state = StateIdle
	s.mu.Unlock()
}

// runCycle performs one refresh attempt. Every failure inside the cycle is
// caught and logged; the previous cache entry survives as last known good.
func (s *Scheduler) runCycle(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "Scheduler.runCycle")
	defer span.End()

	cycleID := history.NewCycleID()
	startedAt := s.now()
	s.logger.Info("refresh cycle started", zap.String("cycle_id", cycleID))

	snapshot, stats := s.aggregator.Run(ctx, nil)

	if err := s.cache.Set(ctx, cache.LiveSnapshotKey, &snapshot); err != nil {
		span.RecordError(err)
		s.logger.Error("failed to cache snapshot, keeping previous entry",
			zap.String("cycle_id", cycleID),
			zap.Error(err))
		return
	}

	if err := s.sink.PublishUpdate(ctx, snapshot.Counts, snapshot.GeneratedAt); err != nil {
		span.RecordError(err)
		s.logger.Error("failed to publish update event",
			zap.String("cycle_id", cycleID),
			zap.Error(err))
	}

	if err := s.recorder.RecordCycle(ctx, history.CycleRecord{
		ID:            cycleID,
		StartedAt:     startedAt,
		Duration:      stats.Elapsed,
		Jobs:          snapshot.Counts.Jobs,
		Internships:   snapshot.Counts.Internships,
		Hackathons:    snapshot.Counts.Hackathons,
		FailedSources: stats.FailedSources,
		TotalSources:  stats.TotalSources,
	}); err != nil {
		s.logger.Warn("failed to record cycle history",
			zap.String("cycle_id", cycleID),
			zap.Error(err))
	}

	s.logger.Info("refresh cycle complete",
		zap.String("cycle_id", cycleID),
		zap.Int("jobs", snapshot.Counts.Jobs),
		zap.Int("internships", snapshot.Counts.Internships),
		zap.Int("hackathons", snapshot.Counts.Hackathons),
		zap.Int("failed_sources", stats.FailedSources))
}
