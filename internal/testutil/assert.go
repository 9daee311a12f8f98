package testutil

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// Assert provides test assertions.
type Assert struct {
	t *testing.T
}

// NewAssert creates a new assert helper.
func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t}
}

// Equal asserts that two values are equal.
func (a *Assert) Equal(expected, actual any, msgAndArgs ...any) {
	a.t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		a.fail(fmt.Sprintf("Expected: %v\nActual: %v", expected, actual), msgAndArgs...)
	}
}

// Nil asserts that a value is nil.
func (a *Assert) Nil(value any, msgAndArgs ...any) {
	a.t.Helper()
	if !isNil(value) {
		a.fail(fmt.Sprintf("Expected nil, but got: %v", value), msgAndArgs...)
	}
}

// NotNil asserts that a value is not nil.
func (a *Assert) NotNil(value any, msgAndArgs ...any) {
	a.t.Helper()
	if isNil(value) {
		a.fail("Expected non-nil value, but got nil", msgAndArgs...)
	}
}

// True asserts that a value is true.
func (a *Assert) True(value bool, msgAndArgs ...any) {
	a.t.Helper()
	if !value {
		a.fail("Expected true, but got false", msgAndArgs...)
	}
}

// Error asserts that an error occurred.
func (a *Assert) Error(err error, msgAndArgs ...any) {
	a.t.Helper()
	if err == nil {
		a.fail("Expected error, but got nil", msgAndArgs...)
	}
}

// NoError asserts that no error occurred.
func (a *Assert) NoError(err error, msgAndArgs ...any) {
	a.t.Helper()
	if err != nil {
		a.fail(fmt.Sprintf("Expected no error, but got: %v", err), msgAndArgs...)
	}
}

// ErrorIs asserts that err matches target per errors.Is.
func (a *Assert) ErrorIs(err, target error, msgAndArgs ...any) {
	a.t.Helper()
	if !errors.Is(err, target) {
		a.fail(fmt.Sprintf("Expected error matching %v, but got: %v", target, err), msgAndArgs...)
	}
}

func (a *Assert) fail(message string, msgAndArgs ...any) {
	a.t.Helper()
	if len(msgAndArgs) > 0 {
		if format, ok := msgAndArgs[0].(string); ok {
			message = fmt.Sprintf(format, msgAndArgs[1:]...) + "\n" + message
		}
	}
	a.t.Error(message)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}
