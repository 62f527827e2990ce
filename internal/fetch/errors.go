package fetch

import "fmt"

// ErrorKind classifies terminal fetch failures.
type ErrorKind string

const (
	// KindTransport is a connection or timeout failure before any HTTP
	// response, or a cancelled context.
	KindTransport ErrorKind = "transport"
	// KindRateLimited is a 429 response that survived the retry ceiling.
	KindRateLimited ErrorKind = "rate_limited"
	// KindHTTPStatus is any other non-success HTTP status. Never retried.
	KindHTTPStatus ErrorKind = "http_status"
)

// Error is the terminal failure for a single URL.
type Error struct {
	Kind   ErrorKind
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("fetch %s: transport: %v", e.URL, e.Err)
	case KindRateLimited:
		return fmt.Sprintf("fetch %s: rate limited after retries", e.URL)
	default:
		return fmt.Sprintf("fetch %s: http status %d", e.URL, e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }
