package logger

import "context"

type ContextKey string

const (
	// Request-scoped keys carried through every outbound provider call.
	// TraceContextHandler lifts them onto each log record.
	RequestIDKey ContextKey = "ami.request.id"
	ProviderKey  ContextKey = "ami.provider"
	StageKey     ContextKey = "ami.stage"
)

// WithRequestID adds the inbound request id to context for observability
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithProvider records which upstream provider serves the request
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ProviderKey, provider)
}

// WithStage marks the processing stage (prompt, generate, normalize, order, verify)
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, StageKey, stage)
}
