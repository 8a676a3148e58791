package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsTaskImmediatelyAndOnTicks(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var runs atomic.Int32
	ran := make(chan struct{}, 8)
	s.Register("counter", 10*time.Millisecond, func(_ context.Context) error {
		runs.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()

	for i := 0; i < 3; i++ {
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatal("task did not run in time")
		}
	}
	assert.GreaterOrEqual(t, runs.Load(), int32(3))
}

func TestScheduler_FailingTaskKeepsSchedule(t *testing.T) {
	s := NewScheduler()
	defer s.Stop()

	var runs atomic.Int32
	ran := make(chan struct{}, 8)
	s.Register("flaky", 10*time.Millisecond, func(_ context.Context) error {
		runs.Add(1)
		select {
		case ran <- struct{}{}:
		default:
		}
		return errors.New("transient failure")
	})

	s.Start()

	for i := 0; i < 2; i++ {
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatal("failing task stopped running")
		}
	}
	assert.GreaterOrEqual(t, runs.Load(), int32(2))
}

func TestScheduler_StopCancelsTaskContext(t *testing.T) {
	s := NewScheduler()

	cancelled := make(chan struct{})
	started := make(chan struct{})
	s.Register("blocker", time.Hour, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return ctx.Err()
	})

	s.Start()
	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("task never started")
	}

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("Stop did not cancel the task context")
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not wait for the task to return")
	}
	require.NotNil(t, s.ctx.Err())
}
