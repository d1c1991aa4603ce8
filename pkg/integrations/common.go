package integrations

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrUnavailable is matched by every non-OK response. The profile builder
	// treats it as "this field could not be populated" and carries on.
	ErrUnavailable = errors.New("resource unavailable")

	// ErrNotFound is returned for 404 and 410 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized is returned for 401 responses (missing or bad token).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned for 403 responses that are not rate limiting.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited is returned for 429, and for 403 with an exhausted quota.
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstream is returned for any other non-OK status.
	ErrUpstream = errors.New("upstream error")

	// ErrNetwork is returned when no response was received at all
	// (DNS failure, connection refused, timeout).
	ErrNetwork = errors.New("network error")
)

// StatusError describes a non-OK response. It matches [ErrUnavailable] and
// exactly one sub-kind sentinel under errors.Is.
type StatusError struct {
	Resource   string
	StatusCode int
	kind       error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s: status %d", e.Kind(), e.Resource, e.StatusCode)
}

func (e *StatusError) Unwrap() []error {
	if e.kind == nil {
		return []error{ErrUnavailable}
	}
	return []error{ErrUnavailable, e.kind}
}

// Kind returns the sub-kind sentinel, or ErrUnavailable when none was set.
func (e *StatusError) Kind() error {
	if e.kind == nil {
		return ErrUnavailable
	}
	return e.kind
}

func newStatusError(resource string, resp *http.Response) *StatusError {
	return &StatusError{
		Resource:   resource,
		StatusCode: resp.StatusCode,
		kind:       statusKind(resp),
	}
}

func statusKind(resp *http.Response) error {
	switch code := resp.StatusCode; {
	case code == http.StatusNotFound, code == http.StatusGone:
		return ErrNotFound
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code == http.StatusForbidden:
		if resp.Header.Get("X-RateLimit-Remaining") == "0" {
			return ErrRateLimited
		}
		return ErrForbidden
	default:
		return ErrUpstream
	}
}

// Kind returns a short machine-readable name for err, suitable for report
// output. It returns "error" for anything it does not recognize.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	case errors.Is(err, ErrNetwork):
		return "network"
	default:
		return "error"
	}
}

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
// A non-positive timeout selects the default.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = httpTimeout
	}
	return &http.Client{Timeout: timeout}
}
