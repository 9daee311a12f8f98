// Package script provides sandboxed Lua transforms over decoded fetch
// payloads. A script defines an exec(input) function receiving the
// decoded value (maps, slices, scalars) and returns the transformed value.
package script

import (
	"context"
	"fmt"

	"github.com/Shopify/go-lua"

	"github.com/tidefall/fetchable"
	"github.com/tidefall/fetchable/pipeline"
)

// Script is a compiled-on-demand Lua transform. The zero value is not
// usable; construct with New.
type Script struct {
	src string
}

// New creates a transform from Lua source. The script must define
// exec(input); Validate reports whether it does.
func New(src string) *Script {
	return &Script{src: src}
}

// Validate loads the script without applying it and checks that the
// exec entrypoint is defined.
func (s *Script) Validate() error {
	l := lua.NewState()
	sandbox(l)

	if err := lua.DoString(l, s.src); err != nil {
		return fmt.Errorf("script error: %w", err)
	}

	l.Global("exec")
	defined := l.TypeOf(-1) == lua.TypeFunction
	l.Pop(1)
	if !defined {
		return fmt.Errorf("script does not define exec(input)")
	}
	return nil
}

// Apply runs the transform on input. Each call uses a fresh interpreter
// state, so scripts cannot accumulate state across calls. The Lua VM is
// not interruptible mid-script; cancellation is checked before the run.
func (s *Script) Apply(ctx context.Context, input any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := lua.NewState()
	sandbox(l)

	toLua(l, input)
	l.SetGlobal("input")

	if err := lua.DoString(l, s.src); err != nil {
		return nil, fmt.Errorf("script error: %w", err)
	}

	l.Global("exec")
	if l.TypeOf(-1) != lua.TypeFunction {
		l.Pop(1)
		return nil, fmt.Errorf("script does not define exec(input)")
	}

	toLua(l, input)
	if err := l.ProtectedCall(1, 1, 0); err != nil {
		return nil, fmt.Errorf("exec error: %w", err)
	}

	result := fromLua(l, -1)
	l.Pop(1)
	return result, nil
}

// Stage exposes the transform as a pipeline stage over decoded values.
func Stage(src string) pipeline.Stage[any, any] {
	s := New(src)
	return pipeline.StageFunc[any, any](func(ctx context.Context, input any) (any, error) {
		return s.Apply(ctx, input)
	})
}

// Transformer exposes the transform as a capability decorator: the
// wrapped capability's decoded output is passed through the script.
func Transformer(src string, f fetchable.Fetchable[any]) fetchable.Fetchable[any] {
	s := New(src)
	return fetchable.FetchFunc[any](func(ctx context.Context) (any, error) {
		v, err := f.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return s.Apply(ctx, v)
	})
}
