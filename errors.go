package fetchable

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyBody is returned when a response completed with an acceptable
// status (or came from a non-HTTP source) but carried no payload bytes.
var ErrEmptyBody = errors.New("fetchable: empty response body")

// TransportError reports that the retrieval itself could not complete.
// It short-circuits status, body, and decode checks.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetchable: transport failure for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError reports a response whose status code falls outside the
// caller-defined success range. It carries the response and the body
// bytes for inspection; the body is never decoded.
type StatusError struct {
	Response *http.Response
	Body     []byte
}

// StatusCode returns the offending status code.
func (e *StatusError) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetchable: unacceptable status %d", e.StatusCode())
}

// DecodeError reports that payload bytes were present but could not be
// parsed into the target shape: malformed JSON, a missing required field,
// or a type mismatch.
type DecodeError struct {
	// Target names the shape the payload was decoded against.
	Target string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("fetchable: decoding into %s: %v", e.Target, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
