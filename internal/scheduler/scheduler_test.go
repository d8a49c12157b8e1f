package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/suture/v4"

	"campaign_sync/internal/testutil"
)

var _ suture.Service = (*Scheduler)(nil)

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	var calls atomic.Int32
	runner := RunnerFunc(func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	s := NewScheduler("poll", runner, 10*time.Millisecond, time.Second, testutil.DiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_FailedRunDoesNotStopLoop(t *testing.T) {
	var calls atomic.Int32
	runner := RunnerFunc(func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("db down")
	})

	s := NewScheduler("retry", runner, 10*time.Millisecond, time.Second, testutil.DiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Serve(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_RunHasDeadline(t *testing.T) {
	deadlines := make(chan bool, 1)
	runner := RunnerFunc(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		select {
		case deadlines <- ok:
		default:
		}
		return nil
	})

	s := NewScheduler("poll", runner, time.Hour, 50*time.Millisecond, testutil.DiscardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Serve(ctx) }()

	select {
	case ok := <-deadlines:
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("runner was not called")
	}
}

func TestScheduler_String(t *testing.T) {
	s := NewScheduler("reconcile", RunnerFunc(func(context.Context) error { return nil }), time.Minute, 0, testutil.DiscardLogger())
	assert.Equal(t, "reconcile", s.String())
}
