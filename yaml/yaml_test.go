package yaml_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidefall/fetchable/yaml"
)

const sampleDocument = `
name: user-service
description: User directory fetches
version: "1.0"

requests:
  - name: get-user
    url: https://api.example.com/users/1
    timeout: 5s
    retry:
      max_attempts: 3
      delay: 100ms
    headers:
      Accept: application/json
    extract: "$.name"

  - name: get-posts
    url: https://api.example.com/posts
    method: GET
    success:
      min: 200
      max: 299
`

func TestParseString(t *testing.T) {
	doc, err := yaml.NewParser().ParseString(sampleDocument)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if doc.Name != "user-service" {
		t.Errorf("Name = %q", doc.Name)
	}
	if len(doc.Requests) != 2 {
		t.Fatalf("len(Requests) = %d, want 2", len(doc.Requests))
	}

	def, ok := doc.Request("get-user")
	if !ok {
		t.Fatal("Request(get-user) not found")
	}
	if def.Timeout != "5s" {
		t.Errorf("Timeout = %q", def.Timeout)
	}
	if def.Retry == nil || def.Retry.MaxAttempts != 3 {
		t.Errorf("Retry = %+v", def.Retry)
	}
	if def.Headers["Accept"] != "application/json" {
		t.Errorf("Headers = %v", def.Headers)
	}
	if def.Extract != "$.name" {
		t.Errorf("Extract = %q", def.Extract)
	}

	if _, ok := doc.Request("nope"); ok {
		t.Error("Request(nope) found a definition")
	}
}

func TestParseStringValidation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "missing document name",
			doc:     "requests:\n  - name: a\n    url: https://example.com\n",
			wantErr: "document name is required",
		},
		{
			name:    "no requests",
			doc:     "name: empty\n",
			wantErr: "at least one request",
		},
		{
			name:    "missing url",
			doc:     "name: d\nrequests:\n  - name: a\n",
			wantErr: "url is required",
		},
		{
			name:    "duplicate request names",
			doc:     "name: d\nrequests:\n  - name: a\n    url: https://example.com\n  - name: a\n    url: https://example.com\n",
			wantErr: "duplicate request name",
		},
		{
			name:    "bad timeout",
			doc:     "name: d\nrequests:\n  - name: a\n    url: https://example.com\n    timeout: soon\n",
			wantErr: "invalid timeout",
		},
		{
			name:    "retry attempts below one",
			doc:     "name: d\nrequests:\n  - name: a\n    url: https://example.com\n    retry:\n      max_attempts: 0\n",
			wantErr: "max_attempts must be at least 1",
		},
		{
			name:    "inverted success range",
			doc:     "name: d\nrequests:\n  - name: a\n    url: https://example.com\n    success:\n      min: 300\n      max: 200\n",
			wantErr: "min exceeds max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := yaml.NewParser().ParseString(tt.doc)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseString() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	p := yaml.NewParser()
	doc, err := p.ParseString(sampleDocument)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	data, err := p.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	again, err := p.ParseString(string(data))
	if err != nil {
		t.Fatalf("reparse error = %v", err)
	}
	if again.Name != doc.Name || len(again.Requests) != len(doc.Requests) {
		t.Errorf("round trip changed the document")
	}
}

func TestBuildFetchesAndShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Token"); got != "secret" {
			t.Errorf("X-Token = %q", got)
		}
		_, _ = w.Write([]byte(`{"id": 7, "name": "  Ervin Howell  "}`))
	}))
	defer server.Close()

	def := &yaml.Definition{
		Name:    "get-user",
		URL:     server.URL,
		Headers: map[string]string{"X-Token": "secret"},
		Schema: map[string]any{
			"type":     "object",
			"required": []any{"id", "name"},
		},
		Extract: "$.name",
		Transform: `
			function exec(input)
				return str_trim(input)
			end
		`,
	}

	f, err := yaml.Build(def)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != "Ervin Howell" {
		t.Errorf("Fetch() = %v, want Ervin Howell", got)
	}
}

func TestBuildRejectsBadDefinition(t *testing.T) {
	tests := []struct {
		name string
		def  *yaml.Definition
	}{
		{
			name: "invalid definition",
			def:  &yaml.Definition{Name: "x"},
		},
		{
			name: "invalid extract path",
			def:  &yaml.Definition{Name: "x", URL: "https://example.com", Extract: "$..["},
		},
		{
			name: "transform without entrypoint",
			def:  &yaml.Definition{Name: "x", URL: "https://example.com", Transform: "local x = 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := yaml.Build(tt.def); err == nil {
				t.Error("Build() accepted a bad definition")
			}
		})
	}
}

func TestBuildSchemaRejectsPartialPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	defer server.Close()

	def := &yaml.Definition{
		Name: "get-user",
		URL:  server.URL,
		Schema: map[string]any{
			"type":     "object",
			"required": []any{"id", "name"},
		},
	}

	f, err := yaml.Build(def)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := f.Fetch(context.Background()); err == nil {
		t.Error("Fetch() accepted a payload missing a required field")
	}
}
