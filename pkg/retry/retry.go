// Package retry provides a reusable retry policy: a retry ceiling, a
// backoff function and a retryable-error predicate, parameterized per
// call site.
package retry

import (
	"context"
	"time"
)

// BackoffFunc returns the delay before the given retry (1-based).
// The error that caused the retry is passed to allow different delays for
// different failures.
type BackoffFunc func(retry int, err error) time.Duration

// SleepFunc blocks for d or until the context is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Policy controls the retry behavior of one call site.
type Policy struct {
	// MaxRetries is the number of retries after the first attempt.
	// All retryable failures share this one counter.
	MaxRetries int

	// Backoff computes the delay before each retry. If nil, there is no
	// delay.
	Backoff BackoffFunc

	// Retryable decides if an error deserves another attempt. If nil,
	// no error is retried.
	Retryable func(err error) bool

	// OnRetry is called before sleeping.
	OnRetry func(retry int, err error, delay time.Duration)

	// Sleep replaces the real sleep, mostly in tests.
	Sleep SleepFunc
}

// Linear returns backoff that grows as retry * step.
func Linear(step time.Duration) BackoffFunc {
	return func(retry int, _ error) time.Duration {
		return time.Duration(retry) * step
	}
}

// Fixed returns backoff with the same delay for every retry.
func Fixed(d time.Duration) BackoffFunc {
	return func(int, error) time.Duration {
		return d
	}
}

// Do runs fn until it succeeds, fails with a non-retryable error, the
// retry ceiling is exceeded or the context is done. It returns the result
// of the last attempt and the number of retries made.
func Do[T any](
	ctx context.Context,
	p Policy,
	fn func(ctx context.Context) (T, error),
) (T, int, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}

	var retries int
	for {
		res, err := fn(ctx)
		if err == nil {
			return res, retries, nil
		}
		if ctx.Err() != nil {
			return res, retries, err
		}
		if p.Retryable == nil || !p.Retryable(err) {
			return res, retries, err
		}
		if retries >= p.MaxRetries {
			return res, retries, &ExhaustedError{Retries: retries, Err: err}
		}

		retries++
		var delay time.Duration
		if p.Backoff != nil {
			delay = p.Backoff(retries, err)
		}
		if p.OnRetry != nil {
			p.OnRetry(retries, err, delay)
		}
		if serr := sleep(ctx, delay); serr != nil {
			return res, retries, err
		}
	}
}

// Sleep waits for d using a timer that respects context cancellation.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
