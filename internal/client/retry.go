package client

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"task-list/internal/logging"
)

const (
	// DefaultMaxAttempts is the total number of tries, the first included
	DefaultMaxAttempts = 3
	// DefaultBaseDelay is multiplied by the attempt number to get the wait
	// before the next attempt
	DefaultBaseDelay = time.Second
)

// Retrier runs an operation up to MaxAttempts times with a linear backoff:
// it waits BaseDelay*i after the i-th failed attempt.
type Retrier struct {
	MaxAttempts int
	BaseDelay   time.Duration

	after  func(time.Duration) <-chan time.Time
	logger *log.Logger
}

// NewRetrier creates a retrier. Non-positive values fall back to defaults.
func NewRetrier(maxAttempts int, baseDelay time.Duration) *Retrier {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if baseDelay < 0 {
		baseDelay = DefaultBaseDelay
	}
	return &Retrier{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		after:       time.After,
		logger:      logging.Discard(),
	}
}

// WithLogger returns the retrier after pointing its failure log at logger
func (r *Retrier) WithLogger(logger *log.Logger) *Retrier {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// permanentError stops the retry loop
type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do calls fn until it succeeds, returns a permanent error, the attempts run
// out or ctx is done. The error of the last attempt is returned.
func (r *Retrier) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		lastErr = err

		if attempt == r.MaxAttempts {
			break
		}

		delay := r.BaseDelay * time.Duration(attempt)
		r.logger.Warn("request failed, retrying",
			"op", op,
			"attempt", attempt,
			"delay", delay,
			"err", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.after(delay):
		}
	}

	r.logger.Error("request failed", "op", op, "attempts", r.MaxAttempts, "err", lastErr)
	return lastErr
}

// Retry is Do for operations that produce a value
func Retry[T any](ctx context.Context, r *Retrier, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := r.Do(ctx, op, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}
