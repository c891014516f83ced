// Package transport provides the http.RoundTripper shared by both API
// clients. It retries transient failures with exponential backoff and
// paces outgoing requests through a token bucket so a migration never
// floods either system.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/ratelimit"
	"github.com/juju/retry"

	"github.com/BartekS5/kaiten2planka/pkg/logger"
)

// Retrying wraps a base RoundTripper with bounded exponential backoff for
// transient failures (network errors, 429 and 5xx responses). Requests
// whose body cannot be replayed are not retried past the first attempt.
type Retrying struct {
	Base     http.RoundTripper
	Attempts int
	Delay    time.Duration
	Clock    clock.Clock
	Bucket   *ratelimit.Bucket
}

// statusError marks a retryable HTTP status so the retry loop can
// distinguish it from terminal responses.
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("transient HTTP status %d", e.status)
}

// RetryableStatus reports whether a status code is worth retrying.
func RetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// RoundTrip implements http.RoundTripper.
func (t *Retrying) RoundTrip(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	first := true

	err := retry.Call(retry.CallArgs{
		Func: func() error {
			if !first {
				if req.GetBody == nil && req.Body != nil {
					return errors.New("request body is not replayable")
				}
				if req.GetBody != nil {
					body, err := req.GetBody()
					if err != nil {
						return err
					}
					req.Body = body
				}
			}
			first = false

			if t.Bucket != nil {
				if wait := t.Bucket.Take(1); wait > 0 {
					select {
					case <-t.clock().After(wait):
					case <-req.Context().Done():
						return req.Context().Err()
					}
				}
			}

			r, err := t.base().RoundTrip(req)
			if err != nil {
				return err
			}
			if RetryableStatus(r.StatusCode) {
				status := r.StatusCode
				r.Body.Close()
				logger.Warnf("transport: %s %s returned %d, retrying", req.Method, req.URL.Path, status)
				return &statusError{status: status}
			}
			resp = r
			return nil
		},
		IsFatalError: func(err error) bool {
			return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		Attempts:    t.attempts(),
		Delay:       t.delay(),
		BackoffFunc: retry.DoubleDelay,
		Clock:       t.clock(),
		Stop:        req.Context().Done(),
	})
	if err != nil {
		if retry.IsAttemptsExceeded(err) || retry.IsRetryStopped(err) {
			err = retry.LastError(err)
		}
		return nil, errors.Annotatef(err, "%s %s", req.Method, req.URL.Path)
	}
	return resp, nil
}

func (t *Retrying) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Retrying) attempts() int {
	if t.Attempts > 0 {
		return t.Attempts
	}
	return 4
}

func (t *Retrying) delay() time.Duration {
	if t.Delay > 0 {
		return t.Delay
	}
	return 500 * time.Millisecond
}

func (t *Retrying) clock() clock.Clock {
	if t.Clock != nil {
		return t.Clock
	}
	return clock.WallClock
}
