package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastBackoff() *Backoff {
	return NewBackoff(BackoffConfig{
		BaseDelay:  time.Millisecond,
		Multiplier: 2,
		MaxDelay:   5 * time.Millisecond,
	})
}

func TestDo_RetriesTransientErrors(t *testing.T) {
	calls := 0
	var notified []int

	err := Do(context.Background(), fastBackoff(), 3, func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	}, func(err error, attempt int, wait time.Duration) {
		notified = append(notified, attempt)
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, notified)
}

func TestDo_StopsAfterMaxRetries(t *testing.T) {
	calls := 0
	boom := errors.New("still down")

	err := Do(context.Background(), fastBackoff(), 2, func(ctx context.Context) error {
		calls++
		return boom
	}, nil)

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDo_PermanentErrorIsNotRetried(t *testing.T) {
	calls := 0
	rejected := errors.New("rejected")

	err := Do(context.Background(), fastBackoff(), 5, func(ctx context.Context) error {
		calls++
		return Permanent(rejected)
	}, nil)

	assert.ErrorIs(t, err, rejected)
	assert.False(t, IsPermanent(err))
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Do(ctx, fastBackoff(), 5, func(ctx context.Context) error {
		return errors.New("temporary")
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestPolicy_Reset(t *testing.T) {
	p := NewPolicy(fastBackoff())

	first := p.NextBackOff()
	p.NextBackOff()
	p.Reset()

	assert.Equal(t, first, p.NextBackOff())
}

func TestPermanent_Nil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
	assert.True(t, IsPermanent(Permanent(errors.New("x"))))
}
