package fetchable

import (
	"io"
	"net/http"
)

// Response is the transient envelope produced by one retrieval: the
// payload bytes plus transport-level metadata when the source was HTTP.
// It exists only for the duration of one call and is never persisted.
type Response struct {
	// Body holds the fully read payload bytes. May be empty.
	Body []byte

	// HTTP carries the transport response when the source was an HTTP
	// request. Its Body is already consumed and closed. HTTP is nil for
	// non-HTTP sources, which skip status validation entirely.
	HTTP *http.Response
}

// IsHTTP reports whether the envelope carries HTTP transport metadata.
func (r *Response) IsHTTP() bool { return r.HTTP != nil }

// StatusCode returns the HTTP status, or 0 for non-HTTP sources.
func (r *Response) StatusCode() int {
	if r.HTTP == nil {
		return 0
	}
	return r.HTTP.StatusCode
}

// DataResponse wraps in-memory bytes in an envelope. Local data has no
// status code, so status validation is skipped for it.
func DataResponse(data []byte) *Response {
	return &Response{Body: data}
}

// ReadResponse drains r into an envelope. Like DataResponse, the result
// is not HTTP-shaped.
func ReadResponse(r io.Reader) (*Response, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Response{Body: data}, nil
}
