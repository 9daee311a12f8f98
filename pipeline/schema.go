package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/tidefall/fetchable"
)

// Schema builds a gate stage that validates a decoded value against a
// JSON Schema, passing it through unchanged on success. Violations are
// reported as DecodeError so shape failures and parse failures surface
// through the same channel.
//
// The schema is compiled once, at build time.
func Schema(schemaJSON []byte) (Stage[any, any], error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}

	return StageFunc[any, any](func(ctx context.Context, input any) (any, error) {
		result, err := compiled.Validate(gojsonschema.NewGoLoader(input))
		if err != nil {
			return nil, &fetchable.DecodeError{Target: "schema", Err: err}
		}

		if !result.Valid() {
			var errMsg string
			for i, verr := range result.Errors() {
				if i > 0 {
					errMsg += "; "
				}
				errMsg += verr.String()
			}
			return nil, &fetchable.DecodeError{Target: "schema", Err: errors.New(errMsg)}
		}

		return input, nil
	}), nil
}
