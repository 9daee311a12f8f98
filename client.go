package fetchable

import (
	"context"
	"io"
	"net/http"
	"time"
)

// Client performs network retrievals with transport and status validation.
// Each call owns its own request/response lifecycle; no state is shared
// across calls beyond the underlying HTTP client's connection pool.
type Client struct {
	httpClient  *http.Client
	headers     map[string]string
	success     func(status int) bool
	maxAttempts int
	retryDelay  time.Duration
	logger      Logger
}

// NewClient creates a client from the global defaults and the given options.
func NewClient(opts ...Option) *Client {
	o := getDefaults()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		httpClient:  o.httpClient,
		headers:     o.headers,
		success:     o.success,
		maxAttempts: o.maxAttempts,
		retryDelay:  o.retryDelay,
		logger:      o.logger,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: o.timeout}
	}
	if c.success == nil {
		c.success = defaultSuccess
	}
	if c.maxAttempts < 1 {
		c.maxAttempts = 1
	}
	return c
}

// Fetch issues one GET retrieval and returns the response envelope.
// Failure is exactly one of: a TransportError when the retrieval could
// not complete, or a StatusError (carrying the response and body) when
// the status falls outside the success range. The body is fully read and
// closed before Fetch returns.
func (c *Client) Fetch(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	return c.Do(ctx, req)
}

// Do issues req, retrying transport failures and 5xx statuses when the
// client is configured with retries. Cancellation is honored between
// attempts. Requests with non-nil bodies must set GetBody to be safely
// retried; requests without bodies always are.
func (c *Client) Do(ctx context.Context, req *http.Request) (*Response, error) {
	for k, v := range c.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			if c.logger != nil {
				c.logger.Debug(ctx, "retrying request",
					"url", req.URL.String(),
					"attempt", attempt+1,
					"error", lastErr)
			}
			select {
			case <-ctx.Done():
				return nil, &TransportError{URL: req.URL.String(), Err: ctx.Err()}
			case <-time.After(c.retryDelay):
			}
		}

		resp, err := c.httpClient.Do(req.Clone(ctx))
		if err != nil {
			lastErr = &TransportError{URL: req.URL.String(), Err: err}
			continue
		}

		// Read and close immediately so the envelope owns the bytes.
		body, err := io.ReadAll(resp.Body)
		closeErr := resp.Body.Close()
		if closeErr != nil && c.logger != nil {
			c.logger.Debug(ctx, "failed to close response body", "error", closeErr)
		}
		if err != nil {
			lastErr = &TransportError{URL: req.URL.String(), Err: err}
			continue
		}

		if c.logger != nil {
			c.logger.Info(ctx, "request completed",
				"method", req.Method,
				"url", req.URL.String(),
				"status", resp.StatusCode)
		}

		if !c.success(resp.StatusCode) {
			statusErr := &StatusError{Response: resp, Body: body}
			if resp.StatusCode >= 500 && attempt < c.maxAttempts-1 {
				lastErr = statusErr
				continue
			}
			return nil, statusErr
		}

		return &Response{Body: body, HTTP: resp}, nil
	}

	return nil, lastErr
}

// Get performs one retrieval and binds the payload into T. It reports
// exactly one terminal outcome: the decoded value, or the first failure
// in the order transport, status, missing body, decode. The envelope is
// returned alongside decode-stage failures for caller inspection.
func Get[T any](ctx context.Context, c *Client, url string) (T, *Response, error) {
	var zero T

	resp, err := c.Fetch(ctx, url)
	if err != nil {
		return zero, nil, err
	}

	if len(resp.Body) == 0 {
		return zero, resp, ErrEmptyBody
	}

	v, err := Decode[T](resp.Body)
	if err != nil {
		return zero, resp, err
	}
	return v, resp, nil
}

// GetValidated is Get with a JSON Schema gate: the payload must satisfy
// schema before it is bound into T, so missing required fields surface
// as a decode failure instead of a partially populated value.
func GetValidated[T any](ctx context.Context, c *Client, url string, schema []byte) (T, *Response, error) {
	var zero T

	resp, err := c.Fetch(ctx, url)
	if err != nil {
		return zero, nil, err
	}

	if len(resp.Body) == 0 {
		return zero, resp, ErrEmptyBody
	}

	v, err := DecodeValidated[T](resp.Body, schema)
	if err != nil {
		return zero, resp, err
	}
	return v, resp, nil
}

// GetValue performs one retrieval and decodes the payload dynamically
// into maps, slices, and scalars.
func GetValue(ctx context.Context, c *Client, url string) (any, *Response, error) {
	resp, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	if len(resp.Body) == 0 {
		return nil, resp, ErrEmptyBody
	}

	v, err := DecodeValue(resp.Body)
	if err != nil {
		return nil, resp, err
	}
	return v, resp, nil
}

// Fetcher curries a client and URL into a reusable capability producing T.
func Fetcher[T any](c *Client, url string) Fetchable[T] {
	return FetchFunc[T](func(ctx context.Context) (T, error) {
		v, _, err := Get[T](ctx, c, url)
		return v, err
	})
}
