// Package cron runs background maintenance tasks on fixed intervals.
package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Task is one unit of periodic work. A returned error is logged and the
// task keeps its schedule.
type Task func(ctx context.Context) error

type entry struct {
	name  string
	every time.Duration
	task  Task
}

// Scheduler drives registered tasks on per-task tickers. Register all
// tasks before calling Start; registration after Start is not picked up.
type Scheduler struct {
	entries []entry
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// Register queues a task to run once at startup and then on every tick.
func (s *Scheduler) Register(name string, every time.Duration, task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry{name: name, every: every, task: task})
	slog.Info("Background task registered", "name", name, "every", every)
}

// Start launches one goroutine per registered task.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		s.wg.Add(1)
		go s.loop(e)
	}
	slog.Info("Background scheduler started", "tasks", len(s.entries))
}

// Stop cancels all tasks and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Background scheduler stopped")
}

func (s *Scheduler) loop(e entry) {
	defer s.wg.Done()

	ticker := time.NewTicker(e.every)
	defer ticker.Stop()

	s.run(e)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.run(e)
		}
	}
}

func (s *Scheduler) run(e entry) {
	start := time.Now()
	if err := e.task(s.ctx); err != nil {
		slog.Error("Background task failed", "name", e.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Background task completed", "name", e.name, "duration", time.Since(start))
}
