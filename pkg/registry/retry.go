package registry

import (
	"context"
	"errors"
	"time"
)

const (
	defaultAttempts   = 3
	defaultRetryDelay = time.Second
)

// transientError marks a lookup failure worth another attempt: the request
// never got an answer, or the registry answered with a 5xx.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func transient(err error) error { return &transientError{err: err} }

// withBackoff calls fn until it succeeds, fails permanently, or the client's
// attempt budget is spent. The wait between attempts starts at retryDelay and
// doubles each time.
func (c *Client) withBackoff(ctx context.Context, fn func() error) error {
	wait := c.retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		var te *transientError
		if err == nil || !errors.As(err, &te) || attempt >= c.attempts {
			return err
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}
