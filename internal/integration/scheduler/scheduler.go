// Package scheduler triggers the weekly reminder cycle.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/money-saver/backend/internal/application/usecase/reminder"
)

// Config holds the weekly trigger time in UTC.
type Config struct {
	Weekday time.Weekday
	Hour    int
	Minute  int
}

// DefaultConfig returns the default trigger time, Monday 09:00 UTC.
func DefaultConfig() Config {
	return Config{
		Weekday: time.Monday,
		Hour:    9,
		Minute:  0,
	}
}

// Status is a point-in-time snapshot of the scheduler.
type Status struct {
	Running   bool       `json:"running"`
	CycleBusy bool       `json:"cycle_busy"`
	NextRun   *time.Time `json:"next_run,omitempty"`
	LastRun   *time.Time `json:"last_run,omitempty"`
}

// Scheduler fires the reminder cycle once a week. A fire that arrives while
// the previous cycle is still running is skipped, not queued.
type Scheduler struct {
	config  Config
	runner  *reminder.RunCycleUseCase
	logger  *slog.Logger
	nowFunc func() time.Time

	busy    atomic.Bool
	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	lastRun atomic.Pointer[time.Time]
}

// New creates a new Scheduler instance.
func New(config Config, runner *reminder.RunCycleUseCase, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		config:  config,
		runner:  runner,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// NextRun returns the first trigger instant strictly after now, in UTC.
func NextRun(config Config, now time.Time) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), config.Hour, config.Minute, 0, 0, time.UTC)

	days := (int(config.Weekday) - int(now.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, days)
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}

// Start launches the trigger loop. Calling Start on a running scheduler is a
// no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.loop(ctx)

	s.logger.Info("reminder scheduler started",
		slog.String("weekday", s.config.Weekday.String()),
		slog.Int("hour", s.config.Hour),
		slog.Int("minute", s.config.Minute))
}

// Stop halts the trigger loop and waits for it to exit. A cycle already in
// flight finishes on its own. Calling Stop on a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("reminder scheduler stopped")
}

// Status reports whether the loop is running, whether a cycle is in flight,
// and the next and last trigger times.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	running := s.cancel != nil
	s.mu.Unlock()

	status := Status{
		Running:   running,
		CycleBusy: s.busy.Load(),
		LastRun:   s.lastRun.Load(),
	}
	if running {
		next := NextRun(s.config, s.nowFunc())
		status.NextRun = &next
	}
	return status
}

// TriggerNow runs one cycle outside the weekly cadence, for the admin
// endpoint. It shares the skip-if-busy guard with the timer loop.
func (s *Scheduler) TriggerNow(ctx context.Context) (*reminder.CycleSummary, error) {
	return s.fire(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	for {
		next := NextRun(s.config, s.nowFunc())
		timer := time.NewTimer(next.Sub(s.nowFunc()))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if _, err := s.fire(ctx); err != nil && !reminder.IsSkipped(err) {
				s.logger.Error("reminder cycle failed", slog.String("error", err.Error()))
			}
		}
	}
}

// fire runs one cycle unless a previous one is still in flight.
func (s *Scheduler) fire(ctx context.Context) (*reminder.CycleSummary, error) {
	if !s.busy.CompareAndSwap(false, true) {
		s.logger.Warn("previous reminder cycle still running, skipping trigger")
		return &reminder.CycleSummary{CycleAt: s.nowFunc().UTC(), Skipped: true}, nil
	}
	defer s.busy.Store(false)

	summary, err := s.runner.Execute(ctx)
	if err != nil {
		return summary, err
	}

	ranAt := summary.CycleAt
	s.lastRun.Store(&ranAt)
	return summary, nil
}
