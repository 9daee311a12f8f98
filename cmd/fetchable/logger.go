package main

import (
	"context"
	"fmt"
	"log"
)

// stderrLogger implements fetchable.Logger on the standard log package.
type stderrLogger struct{}

func (stderrLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	logPairs("DEBUG", msg, keysAndValues)
}

func (stderrLogger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	logPairs("INFO", msg, keysAndValues)
}

func (stderrLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	logPairs("ERROR", msg, keysAndValues)
}

func logPairs(level, msg string, keysAndValues []any) {
	line := level + " " + msg
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		line += fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	log.Print(line)
}
