package pipeline

import (
	"context"

	"github.com/tidefall/fetchable"
)

// SourceHTTP curries a client and URL into the source end of a pipeline.
// To let the ValidateStatus stage own status policy, build the client
// with fetchable.WithSuccessFunc(fetchable.AcceptAnyStatus); otherwise
// the client rejects bad statuses before the pipeline sees them.
func SourceHTTP(c *fetchable.Client, url string) fetchable.Fetchable[*fetchable.Response] {
	return fetchable.FetchFunc[*fetchable.Response](func(ctx context.Context) (*fetchable.Response, error) {
		return c.Fetch(ctx, url)
	})
}

// SourceData wraps in-memory bytes as a pipeline source. The envelope is
// not HTTP-shaped, so ValidateStatus passes it through untouched.
func SourceData(data []byte) fetchable.Fetchable[*fetchable.Response] {
	return fetchable.FetchFunc[*fetchable.Response](func(ctx context.Context) (*fetchable.Response, error) {
		return fetchable.DataResponse(data), nil
	})
}

// ValidateStatus maps an envelope with an unacceptable status to a
// StatusError carrying the response, short-circuiting the pipeline.
// Envelopes without HTTP metadata skip the check. A nil predicate means
// the conventional 2xx range.
func ValidateStatus(success func(status int) bool) Stage[*fetchable.Response, *fetchable.Response] {
	if success == nil {
		success = func(status int) bool { return status >= 200 && status < 300 }
	}
	return StageFunc[*fetchable.Response, *fetchable.Response](func(ctx context.Context, resp *fetchable.Response) (*fetchable.Response, error) {
		if !resp.IsHTTP() {
			return resp, nil
		}
		if !success(resp.StatusCode()) {
			return nil, &fetchable.StatusError{Response: resp.HTTP, Body: resp.Body}
		}
		return resp, nil
	})
}

// Body extracts the payload bytes from an envelope, failing with
// ErrEmptyBody when none are present.
func Body() Stage[*fetchable.Response, []byte] {
	return StageFunc[*fetchable.Response, []byte](func(ctx context.Context, resp *fetchable.Response) ([]byte, error) {
		if len(resp.Body) == 0 {
			return nil, fetchable.ErrEmptyBody
		}
		return resp.Body, nil
	})
}

// DecodeJSON parses payload bytes into T, short-circuiting with a
// DecodeError on failure.
func DecodeJSON[T any]() Stage[[]byte, T] {
	return StageFunc[[]byte, T](func(ctx context.Context, data []byte) (T, error) {
		return fetchable.Decode[T](data)
	})
}

// DecodeValue parses payload bytes into maps, slices, and scalars.
func DecodeValue() Stage[[]byte, any] {
	return StageFunc[[]byte, any](func(ctx context.Context, data []byte) (any, error) {
		return fetchable.DecodeValue(data)
	})
}

// Decoded assembles the canonical decoding pipeline for a source:
// validate status, require a body, bind into T. The result is a
// type-erased capability fixed to T at the boundary.
func Decoded[T any](source fetchable.Fetchable[*fetchable.Response], success func(status int) bool) fetchable.AnyFetchable[T] {
	stages := Join(ValidateStatus(success), Join(Body(), DecodeJSON[T]()))
	return Bind(source, stages)
}
