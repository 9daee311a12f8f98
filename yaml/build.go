package yaml

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tidefall/fetchable"
	"github.com/tidefall/fetchable/pipeline"
	"github.com/tidefall/fetchable/script"
)

// Build assembles a request definition into a type-erased capability.
// The returned capability decodes dynamically (maps, slices, scalars)
// and applies the definition's schema gate, JSONPath extraction, and
// Lua transform in that order. Extra options override the definition's
// client settings.
func Build(def *Definition, opts ...fetchable.Option) (fetchable.AnyFetchable[any], error) {
	var zero fetchable.AnyFetchable[any]

	if err := def.Validate(); err != nil {
		return zero, err
	}

	clientOpts := make([]fetchable.Option, 0, 4+len(def.Headers))
	if def.Timeout != "" {
		d, _ := time.ParseDuration(def.Timeout)
		clientOpts = append(clientOpts, fetchable.WithTimeout(d))
	}
	if def.Retry != nil {
		delay := time.Second
		if def.Retry.Delay != "" {
			delay, _ = time.ParseDuration(def.Retry.Delay)
		}
		clientOpts = append(clientOpts, fetchable.WithRetry(def.Retry.MaxAttempts-1, delay))
	}
	if def.Success != nil {
		clientOpts = append(clientOpts, fetchable.WithSuccessRange(def.Success.Min, def.Success.Max))
	}
	for k, v := range def.Headers {
		clientOpts = append(clientOpts, fetchable.WithHeader(k, v))
	}
	clientOpts = append(clientOpts, opts...)

	client := fetchable.NewClient(clientOpts...)

	method := def.Method
	if method == "" {
		method = http.MethodGet
	}
	url := def.URL

	source := fetchable.FetchFunc[*fetchable.Response](func(ctx context.Context) (*fetchable.Response, error) {
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return nil, &fetchable.TransportError{URL: url, Err: err}
		}
		return client.Do(ctx, req)
	})

	stage := pipeline.Join(pipeline.Body(), pipeline.DecodeValue())

	if def.Schema != nil {
		schemaJSON, err := json.Marshal(def.Schema)
		if err != nil {
			return zero, fmt.Errorf("marshal schema for request %s: %w", def.Name, err)
		}
		gate, err := pipeline.Schema(schemaJSON)
		if err != nil {
			return zero, fmt.Errorf("request %s: %w", def.Name, err)
		}
		stage = pipeline.Join(stage, gate)
	}

	if def.Extract != "" {
		extract, err := pipeline.Extract(def.Extract)
		if err != nil {
			return zero, fmt.Errorf("request %s: %w", def.Name, err)
		}
		stage = pipeline.Join(stage, extract)
	}

	if def.Transform != "" {
		if err := script.New(def.Transform).Validate(); err != nil {
			return zero, fmt.Errorf("request %s: %w", def.Name, err)
		}
		stage = pipeline.Join(stage, script.Stage(def.Transform))
	}

	return pipeline.Bind[*fetchable.Response, any](source, stage), nil
}
