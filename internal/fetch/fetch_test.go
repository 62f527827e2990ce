package fetch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://search.example.com/?page=1"

// scriptedDoer returns the scripted status codes in order, repeating the
// last one once the script runs out.
type scriptedDoer struct {
	statuses []int
	err      error
	calls    int
}

func (d *scriptedDoer) Do(*http.Request) (*http.Response, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}

	idx := d.calls - 1
	if idx >= len(d.statuses) {
		idx = len(d.statuses) - 1
	}
	return &http.Response{
		StatusCode: d.statuses[idx],
		Body:       io.NopCloser(strings.NewReader("<html>body</html>")),
	}, nil
}

// newTestFetcher wires a fetcher with no jitter, a scripted transport,
// and a recording sleep so tests can assert exact delays.
func newTestFetcher(doer Doer, sleeps *[]time.Duration) *Fetcher {
	cfg := DefaultConfig()
	cfg.JitterMin = 0
	cfg.JitterMax = 0

	f := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.client = doer
	f.sleep = func(_ context.Context, d time.Duration) error {
		*sleeps = append(*sleeps, d)
		return nil
	}
	return f
}

func TestFetch_Success(t *testing.T) {
	t.Parallel()

	doer := &scriptedDoer{statuses: []int{http.StatusOK}}
	var sleeps []time.Duration

	body, err := newTestFetcher(doer, &sleeps).Fetch(context.Background(), testURL)
	require.NoError(t, err)
	assert.Equal(t, "<html>body</html>", body)
	assert.Equal(t, 1, doer.calls)
}

// Two 429s then a 200: exactly three transport calls with backoff delays
// of base^1 and base^2 seconds between attempts.
func TestFetch_RetryThenSuccess(t *testing.T) {
	t.Parallel()

	doer := &scriptedDoer{statuses: []int{
		http.StatusTooManyRequests,
		http.StatusTooManyRequests,
		http.StatusOK,
	}}
	var sleeps []time.Duration

	body, err := newTestFetcher(doer, &sleeps).Fetch(context.Background(), testURL)
	require.NoError(t, err)
	assert.Equal(t, "<html>body</html>", body)
	assert.Equal(t, 3, doer.calls)

	// Jitter (zeroed) before each of the three attempts, interleaved
	// with the two exponential backoff delays.
	assert.Equal(t, []time.Duration{
		0,
		2 * time.Second,
		0,
		4 * time.Second,
		0,
	}, sleeps)
}

// A transport that always answers 429 gets MaxRetries+1 calls and then a
// rate-limited terminal failure.
func TestFetch_RetryCeiling(t *testing.T) {
	t.Parallel()

	doer := &scriptedDoer{statuses: []int{http.StatusTooManyRequests}}
	var sleeps []time.Duration
	f := newTestFetcher(doer, &sleeps)

	_, err := f.Fetch(context.Background(), testURL)
	require.Error(t, err)
	assert.Equal(t, f.cfg.MaxRetries+1, doer.calls)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindRateLimited, fetchErr.Kind)
	assert.Equal(t, http.StatusTooManyRequests, fetchErr.Status)
}

func TestFetch_HTTPErrorNotRetried(t *testing.T) {
	t.Parallel()

	doer := &scriptedDoer{statuses: []int{http.StatusInternalServerError}}
	var sleeps []time.Duration

	_, err := newTestFetcher(doer, &sleeps).Fetch(context.Background(), testURL)
	require.Error(t, err)
	assert.Equal(t, 1, doer.calls)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindHTTPStatus, fetchErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.Status)
}

func TestFetch_TransportErrorNotRetried(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	doer := &scriptedDoer{err: cause}
	var sleeps []time.Duration

	_, err := newTestFetcher(doer, &sleeps).Fetch(context.Background(), testURL)
	require.Error(t, err)
	assert.Equal(t, 1, doer.calls)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindTransport, fetchErr.Kind)
	assert.ErrorIs(t, err, cause)
}

func TestJitter_UniformWithinBounds(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	f := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.randFloat = func() float64 { return 0.5 }

	assert.Equal(t, 2*time.Second, f.jitter())

	f.randFloat = func() float64 { return 0 }
	assert.Equal(t, cfg.JitterMin, f.jitter())
}

func TestBackoff_Growth(t *testing.T) {
	t.Parallel()

	f := New(DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, 2*time.Second, f.backoff(0))
	assert.Equal(t, 4*time.Second, f.backoff(1))
	assert.Equal(t, 8*time.Second, f.backoff(2))
}

func TestFetch_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doer := &scriptedDoer{statuses: []int{http.StatusOK}}
	f := New(DefaultConfig(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.client = doer

	_, err := f.Fetch(ctx, testURL)
	require.Error(t, err)
	assert.Zero(t, doer.calls)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindTransport, fetchErr.Kind)
}
