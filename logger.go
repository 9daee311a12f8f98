package fetchable

import "context"

// Logger provides structured logging. Implementations receive alternating
// key/value pairs after the message.
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
}
