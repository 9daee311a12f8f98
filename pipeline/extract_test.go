package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tidefall/fetchable"
	"github.com/tidefall/fetchable/internal/testutil"
	"github.com/tidefall/fetchable/pipeline"
)

func decodedUser(t *testing.T) any {
	t.Helper()
	v, err := fetchable.DecodeValue([]byte(testutil.UserJSON))
	if err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	return v
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		path string
		want any
	}{
		{name: "top-level field", path: "$.name", want: "Leanne Graham"},
		{name: "nested field", path: "$.address.geo.lat", want: "-37.3159"},
		{name: "numeric field", path: "$.id", want: int64(1)},
		{name: "no match yields nil", path: "$.missing", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, err := pipeline.Extract(tt.path)
			if err != nil {
				t.Fatalf("Extract(%q) error = %v", tt.path, err)
			}
			got, err := stage.Run(context.Background(), decodedUser(t))
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Run() = %v (%T), want %v", got, got, tt.want)
			}
		})
	}
}

func TestExtractInvalidPath(t *testing.T) {
	if _, err := pipeline.Extract("$..["); err == nil {
		t.Error("Extract() accepted a malformed expression")
	}
}

func TestExtractAll(t *testing.T) {
	v, err := fetchable.DecodeValue([]byte(`{"items":[{"id":1},{"id":2},{"id":3}]}`))
	if err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}

	stage, err := pipeline.ExtractAll("$.items[*].id")
	if err != nil {
		t.Fatalf("ExtractAll() error = %v", err)
	}
	got, err := stage.Run(context.Background(), v)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
}

func TestSchemaGate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "complete value passes", input: testutil.UserJSON},
		{name: "missing required field", input: `{"id": 1}`, wantErr: true},
		{name: "wrong field type", input: `{"id": "one", "name": "x"}`, wantErr: true},
	}

	stage, err := pipeline.Schema([]byte(testutil.UserSchema))
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := fetchable.DecodeValue([]byte(tt.input))
			if err != nil {
				t.Fatalf("DecodeValue() error = %v", err)
			}

			out, err := stage.Run(context.Background(), v)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var decodeErr *fetchable.DecodeError
				if !errors.As(err, &decodeErr) {
					t.Errorf("error = %v, want *DecodeError", err)
				}
				return
			}
			if out == nil {
				t.Error("valid value was not passed through")
			}
		})
	}
}

func TestSchemaRejectsMalformedSchema(t *testing.T) {
	if _, err := pipeline.Schema([]byte(`{"type": 42}`)); err == nil {
		t.Error("Schema() accepted a malformed schema")
	}
}
