// Package retry wraps the final CSV write in exponential backoff, the same
// pattern the teacher's postgres.Retrier applies to database writes — here
// applied to the one collaborator spec.md §1 still leaves prone to transient
// failure: the output sink.
package retry

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Writer retries a write function on a transient I/O error, up to MaxElapsedTime.
type Writer struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// NewWriter returns a Writer with the teacher's retrier defaults.
func NewWriter() *Writer {
	return &Writer{
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     1 * time.Second,
		MaxElapsedTime:  5 * time.Second,
	}
}

// Write runs fn with exponential backoff. Any error satisfying
// errors.Is(err, io.ErrClosedPipe) or errors.Is(err, io.ErrShortWrite) is
// treated as retryable; anything else is permanent after the first attempt.
func (rw *Writer) Write(ctx context.Context, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = rw.InitialInterval
	b.MaxInterval = rw.MaxInterval
	b.MaxElapsedTime = rw.MaxElapsedTime

	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(b, ctx))
}

func isRetryable(err error) bool {
	return errors.Is(err, io.ErrClosedPipe) || errors.Is(err, io.ErrShortWrite)
}
