// Package logging defines the structured logger used by deskctl components.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// Variadic args are key–value pairs:
//
//	log.Info(ctx, "rpc call", "procedure", name, "request_id", id)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given pairs.
	With(args ...any) Logger
}
