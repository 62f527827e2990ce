// Package fetch issues single HTTP GETs with jittered delay, a global
// rate limiter, and exponential-backoff retry on 429 responses.
package fetch

import (
	"context"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Config tunes pacing and the retry policy. Passed in at construction so
// tests can override without global mutation.
type Config struct {
	// JitterMin and JitterMax bound the uniform delay inserted before
	// every attempt, the first included, to spread load across
	// concurrent callers.
	JitterMin time.Duration
	JitterMax time.Duration
	// Timeout applies to each individual GET.
	Timeout time.Duration
	// MaxRetries bounds 429 retries; the fetcher makes at most
	// MaxRetries+1 attempts.
	MaxRetries int
	// BackoffBase grows the 429 delay as BackoffBase^(attempt+1)
	// seconds: 2s, 4s, 8s for the default base of 2.
	BackoffBase float64
	// RequestsPerSecond caps the request rate across all concurrent
	// fetches through a shared token bucket. Zero disables the cap.
	RequestsPerSecond float64
	UserAgent         string
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		JitterMin:   1 * time.Second,
		JitterMax:   3 * time.Second,
		Timeout:     30 * time.Second,
		MaxRetries:  3,
		BackoffBase: 2.0,
		UserAgent:   "audioguide-scraper/1.0",
	}
}

// Doer issues a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher retrieves pages one at a time under the configured pacing.
// Safe for concurrent use.
type Fetcher struct {
	cfg     Config
	client  Doer
	limiter *rate.Limiter
	log     *slog.Logger

	sleep     func(ctx context.Context, d time.Duration) error
	randFloat func() float64
}

// New builds a Fetcher with a real HTTP client and clock.
func New(cfg Config, log *slog.Logger) *Fetcher {
	f := &Fetcher{
		cfg:       cfg,
		client:    &http.Client{Timeout: cfg.Timeout},
		log:       log,
		sleep:     sleepCtx,
		randFloat: rand.Float64,
	}
	if cfg.RequestsPerSecond > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return f
}

// Fetch retrieves url and returns the response body. Only 429 responses
// are retried, with exponential backoff, up to MaxRetries; every other
// failure is terminal on first occurrence and returned as an *Error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	for attempt := 0; ; attempt++ {
		if err := f.sleep(ctx, f.jitter()); err != nil {
			return "", &Error{Kind: KindTransport, URL: url, Err: err}
		}

		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return "", &Error{Kind: KindTransport, URL: url, Err: err}
			}
		}

		f.log.Info("request start", "url", url, "attempt", attempt)

		body, status, err := f.get(ctx, url)
		switch {
		case err != nil:
			f.log.Error("request failed", "url", url, "error", err)
			return "", &Error{Kind: KindTransport, URL: url, Err: err}
		case status >= http.StatusOK && status < http.StatusMultipleChoices:
			return body, nil
		case status == http.StatusTooManyRequests && attempt < f.cfg.MaxRetries:
			delay := f.backoff(attempt)
			f.log.Warn("rate limited, backing off", "url", url, "attempt", attempt, "delay", delay)
			if sleepErr := f.sleep(ctx, delay); sleepErr != nil {
				return "", &Error{Kind: KindTransport, URL: url, Err: sleepErr}
			}
		case status == http.StatusTooManyRequests:
			f.log.Error("retry ceiling reached", "url", url, "attempts", attempt+1)
			return "", &Error{Kind: KindRateLimited, URL: url, Status: status}
		default:
			f.log.Error("unexpected status", "url", url, "status", status)
			return "", &Error{Kind: KindHTTPStatus, URL: url, Status: status}
		}
	}
}

func (f *Fetcher) get(ctx context.Context, url string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}

	return string(body), resp.StatusCode, nil
}

// jitter draws a uniform delay from [JitterMin, JitterMax].
func (f *Fetcher) jitter() time.Duration {
	span := f.cfg.JitterMax - f.cfg.JitterMin
	if span <= 0 {
		return f.cfg.JitterMin
	}
	return f.cfg.JitterMin + time.Duration(f.randFloat()*float64(span))
}

func (f *Fetcher) backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(f.cfg.BackoffBase, float64(attempt+1)) * float64(time.Second))
}

// sleepCtx waits for d or until ctx is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
