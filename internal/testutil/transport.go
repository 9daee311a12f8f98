// Package testutil provides testing utilities for fetchable.
package testutil

import (
	"io"
	"net/http"
	"strings"
	"sync"
)

// Reply scripts one round trip: either an error (simulating transport
// failure) or a response with the given status and body.
type Reply struct {
	Status int
	Body   string
	Header http.Header
	Err    error
}

// StubTransport is a scripted http.RoundTripper. Each request consumes
// the next Reply; when the script is exhausted the last Reply repeats.
type StubTransport struct {
	mu       sync.Mutex
	replies  []Reply
	requests []*http.Request
	next     int
}

// NewStubTransport creates a transport scripted with the given replies.
func NewStubTransport(replies ...Reply) *StubTransport {
	return &StubTransport{replies: replies}
}

// RoundTrip implements http.RoundTripper.
func (s *StubTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	idx := s.next
	if idx >= len(s.replies) {
		idx = len(s.replies) - 1
	}
	s.next++
	reply := s.replies[idx]
	s.mu.Unlock()

	if reply.Err != nil {
		return nil, reply.Err
	}

	header := reply.Header
	if header == nil {
		header = http.Header{"Content-Type": []string{"application/json"}}
	}

	return &http.Response{
		StatusCode: reply.Status,
		Status:     http.StatusText(reply.Status),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(reply.Body)),
		Request:    req,
	}, nil
}

// Client wraps the transport in an http.Client.
func (s *StubTransport) Client() *http.Client {
	return &http.Client{Transport: s}
}

// Requests returns the requests seen so far.
func (s *StubTransport) Requests() []*http.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*http.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// CallCount returns the number of round trips performed.
func (s *StubTransport) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}
