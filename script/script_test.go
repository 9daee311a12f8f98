package script_test

import (
	"context"
	"strings"
	"testing"

	"github.com/tidefall/fetchable"
	"github.com/tidefall/fetchable/script"
)

func TestApplyTransformsValue(t *testing.T) {
	s := script.New(`
		function exec(input)
			return { full = input.first .. " " .. input.last }
		end
	`)

	out, err := s.Apply(context.Background(), map[string]any{
		"first": "Leanne",
		"last":  "Graham",
	})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	obj, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("Apply() = %T, want map[string]any", out)
	}
	if obj["full"] != "Leanne Graham" {
		t.Errorf("full = %v, want Leanne Graham", obj["full"])
	}
}

func TestApplyArrayRoundTrip(t *testing.T) {
	s := script.New(`
		function exec(input)
			local out = {}
			for i, v in ipairs(input) do
				out[i] = v * 2
			end
			return out
		end
	`)

	out, err := s.Apply(context.Background(), []any{int64(1), int64(2), int64(3)})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	arr, ok := out.([]any)
	if !ok {
		t.Fatalf("Apply() = %T, want []any", out)
	}
	// Lua numbers come back as float64.
	want := []float64{2, 4, 6}
	if len(arr) != len(want) {
		t.Fatalf("len = %d, want %d", len(arr), len(want))
	}
	for i, w := range want {
		if arr[i] != w {
			t.Errorf("arr[%d] = %v, want %v", i, arr[i], w)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name: "valid script",
			src:  `function exec(input) return input end`,
		},
		{
			name:    "missing entrypoint",
			src:     `local x = 1`,
			wantErr: "does not define exec",
		},
		{
			name:    "syntax error",
			src:     `function exec(input`,
			wantErr: "script error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := script.New(tt.src).Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSandboxBlocksFileAccess(t *testing.T) {
	s := script.New(`
		function exec(input)
			return dofile("/etc/passwd")
		end
	`)

	if _, err := s.Apply(context.Background(), nil); err == nil {
		t.Error("sandboxed script reached dofile")
	}
}

func TestApplyRuntimeError(t *testing.T) {
	s := script.New(`
		function exec(input)
			error("boom")
		end
	`)

	_, err := s.Apply(context.Background(), nil)
	if err == nil || !strings.Contains(err.Error(), "exec error") {
		t.Errorf("Apply() error = %v, want exec error", err)
	}
}

func TestApplyHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := script.New(`function exec(input) return input end`)
	if _, err := s.Apply(ctx, nil); err != context.Canceled {
		t.Errorf("Apply() error = %v, want context.Canceled", err)
	}
}

func TestJSONHelpers(t *testing.T) {
	s := script.New(`
		function exec(input)
			local decoded = json_decode(input)
			decoded.name = str_trim(decoded.name)
			return json_encode(decoded)
		end
	`)

	out, err := s.Apply(context.Background(), `{"name": "  Leanne  "}`)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if out != `{"name":"Leanne"}` {
		t.Errorf("Apply() = %v", out)
	}
}

func TestStageIntegratesWithPipeline(t *testing.T) {
	stage := script.Stage(`
		function exec(input)
			return input.name
		end
	`)

	out, err := stage.Run(context.Background(), map[string]any{"name": "Leanne Graham"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "Leanne Graham" {
		t.Errorf("Run() = %v", out)
	}
}

func TestTransformerDecoratesCapability(t *testing.T) {
	source := fetchable.FetchFunc[any](func(ctx context.Context) (any, error) {
		return map[string]any{"count": float64(2)}, nil
	})

	f := script.Transformer(`
		function exec(input)
			return input.count * 10
		end
	`, source)

	out, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if out != float64(20) {
		t.Errorf("Fetch() = %v, want 20", out)
	}
}
