package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks an error as transient. RetryWithBackoff retries
// only errors carrying this marker; everything else fails fast.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries the transient marker anywhere
// in its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

const (
	retryAttempts  = 3
	retryBaseDelay = time.Second
)

// RetryWithBackoff runs fn until it succeeds, returns a non-retryable
// error, or exhausts the attempt budget. The delay between attempts
// doubles each time; a cancelled context aborts the wait.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryBaseDelay
	var lastErr error

	for attempt := 0; attempt < retryAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err

		if attempt < retryAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
