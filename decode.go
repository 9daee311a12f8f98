package fetchable

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ohler55/ojg/oj"
	"github.com/xeipuuv/gojsonschema"
)

// Decode parses JSON bytes into a value of type T. Parse failures are
// reported as DecodeError.
func Decode[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, &DecodeError{Target: fmt.Sprintf("%T", v), Err: err}
	}
	return v, nil
}

// DecodeValue parses JSON bytes into maps, slices, and scalars.
func DecodeValue(data []byte) (any, error) {
	v, err := oj.Parse(data)
	if err != nil {
		return nil, &DecodeError{Target: "any", Err: err}
	}
	return v, nil
}

// DecodeValidated validates data against a JSON Schema before binding it
// into T. Schema violations (missing required field, type mismatch) are
// reported as DecodeError, so a payload that merely unmarshals into the
// zero value cannot pass as a decoded result.
func DecodeValidated[T any](data, schema []byte) (T, error) {
	var zero T

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return zero, &DecodeError{Target: fmt.Sprintf("%T", zero), Err: err}
	}

	if !result.Valid() {
		var errMsg string
		for i, verr := range result.Errors() {
			if i > 0 {
				errMsg += "; "
			}
			errMsg += verr.String()
		}
		return zero, &DecodeError{Target: fmt.Sprintf("%T", zero), Err: errors.New(errMsg)}
	}

	return Decode[T](data)
}
