package transport

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/juju/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	waits []time.Duration
}

func (c *fakeClock) Now() time.Time { return time.Unix(1700000000, 0) }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	f()
	return nil
}

func (c *fakeClock) NewTimer(d time.Duration) clock.Timer {
	panic("NewTimer not used in tests")
}

func TestRoundTripRetriesTransientStatus(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	client := &http.Client{Transport: &Retrying{Attempts: 4, Delay: time.Millisecond, Clock: &fakeClock{}}}
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, 3, hits)
}

func TestRoundTripDoesNotRetryClientErrors(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "bad payload", http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := &http.Client{Transport: &Retrying{Attempts: 4, Delay: time.Millisecond, Clock: &fakeClock{}}}
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, 1, hits, "terminal statuses reach the caller untouched")
}

func TestRoundTripExhaustsAttempts(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := &http.Client{Transport: &Retrying{Attempts: 3, Delay: time.Millisecond, Clock: &fakeClock{}}}
	_, err := client.Get(server.URL) //nolint:bodyclose // no response on error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transient HTTP status 500")
	assert.Equal(t, 3, hits)
}

func TestRoundTripReplaysRequestBody(t *testing.T) {
	hits := 0
	var lastBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		body, _ := io.ReadAll(r.Body)
		lastBody = string(body)
		if hits < 2 {
			http.Error(w, "busy", http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	client := &http.Client{Transport: &Retrying{Attempts: 4, Delay: time.Millisecond, Clock: &fakeClock{}}}
	resp, err := client.Post(server.URL, "application/json", strings.NewReader(`{"name":"Fix bug"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 2, hits)
	assert.Equal(t, `{"name":"Fix bug"}`, lastBody, "body must be intact on the retried attempt")
}

func TestRetryableStatus(t *testing.T) {
	assert.True(t, RetryableStatus(http.StatusTooManyRequests))
	assert.True(t, RetryableStatus(http.StatusBadGateway))
	assert.False(t, RetryableStatus(http.StatusOK))
	assert.False(t, RetryableStatus(http.StatusUnprocessableEntity))
	assert.False(t, RetryableStatus(http.StatusNotFound))
}
