package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy exposes a Backoff as a backoff.BackOff so it can drive
// backoff.Retry. It is stateful and must not be shared between loops.
type Policy struct {
	backoff *Backoff
	attempt int
}

func NewPolicy(b *Backoff) *Policy {
	return &Policy{backoff: b}
}

func (p *Policy) NextBackOff() time.Duration {
	d := p.backoff.Delay(p.attempt)
	p.attempt++
	return d
}

func (p *Policy) Reset() {
	p.attempt = 0
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// IsPermanent reports whether err was wrapped with Permanent.
func IsPermanent(err error) bool {
	var perr *backoff.PermanentError
	return errors.As(err, &perr)
}

// Notify is called before each wait with the error that caused the retry.
type Notify func(err error, attempt int, wait time.Duration)

// Do runs op until it succeeds, returns a Permanent error, maxRetries
// retries are used up, or ctx is done. The last error is returned unwrapped.
func Do(ctx context.Context, b *Backoff, maxRetries int, op func(ctx context.Context) error, notify Notify) error {
	if maxRetries < 0 {
		maxRetries = 0
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(NewPolicy(b), uint64(maxRetries)),
		ctx,
	)

	attempt := 0
	return backoff.RetryNotify(
		func() error {
			return op(ctx)
		},
		policy,
		func(err error, wait time.Duration) {
			attempt++
			if notify != nil {
				notify(err, attempt, wait)
			}
		},
	)
}
