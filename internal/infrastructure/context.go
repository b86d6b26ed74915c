package infrastructure

import "context"

type contextKey string

// traceIDKey carries the per-request trace id through the call tree.
const traceIDKey contextKey = "trace_id"

// WithTraceID returns a context carrying the given trace id.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// GetTraceID extracts the trace id, or "" when none is set.
func GetTraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey).(string); ok {
		return id
	}
	return ""
}
