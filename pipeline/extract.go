package pipeline

import (
	"context"
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Extract builds a stage that evaluates a JSONPath expression against a
// decoded value and yields the first match. Single-element array matches
// are unwrapped. No match yields nil, which a later stage may treat as
// absence.
//
// The expression is parsed once, at build time.
func Extract(path string) (Stage[any, any], error) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath expression: %w", err)
	}

	return StageFunc[any, any](func(ctx context.Context, input any) (any, error) {
		results := expr.Get(input)
		if len(results) == 0 {
			return nil, nil
		}

		result := results[0]
		if arr, ok := result.([]any); ok && len(arr) == 1 {
			result = arr[0]
		}
		return result, nil
	}), nil
}

// ExtractAll is Extract returning every match as a slice.
func ExtractAll(path string) (Stage[any, []any], error) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath expression: %w", err)
	}

	return StageFunc[any, []any](func(ctx context.Context, input any) ([]any, error) {
		return expr.Get(input), nil
	}), nil
}
