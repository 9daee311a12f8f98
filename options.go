package fetchable

import (
	"net/http"
	"time"
)

// options holds configuration for a Client.
type options struct {
	httpClient  *http.Client
	timeout     time.Duration
	headers     map[string]string
	success     func(status int) bool
	maxAttempts int
	retryDelay  time.Duration
	logger      Logger
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient sets the underlying HTTP client. Its transport owns
// cancellation, connection pooling, and any proxy behavior.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithHeader adds a header to every request the client issues.
func WithHeader(key, value string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// WithSuccessRange sets the inclusive status-code range treated as
// success. Responses outside the range are reported as StatusError.
func WithSuccessRange(min, max int) Option {
	return func(o *options) {
		o.success = func(status int) bool {
			return status >= min && status <= max
		}
	}
}

// WithSuccessFunc sets an arbitrary status-code predicate.
func WithSuccessFunc(fn func(status int) bool) Option {
	return func(o *options) {
		o.success = fn
	}
}

// AcceptAnyStatus is a success predicate that accepts every status code.
// Use it when a downstream stage owns status validation instead of the
// client.
func AcceptAnyStatus(status int) bool { return true }

// WithRetry configures retry behavior: up to maxRetries additional
// attempts after the first, waiting delay between attempts. Only
// transport failures and 5xx statuses are retried; bad non-5xx statuses,
// missing bodies, and decode failures never are.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(o *options) {
		o.maxAttempts = maxRetries + 1
		o.retryDelay = delay
	}
}

// WithLogger adds logging to the client.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
