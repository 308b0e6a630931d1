package logger

import (
	"context"
	"log/slog"
)

type flowIDKey struct{}

type providerKey struct{}

// WithFlowID tags ctx with the id of one authorization flow, so the login
// redirect and the matching callback can be correlated in logs.
func WithFlowID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, flowIDKey{}, id)
}

// WithProvider tags ctx with the OAuth provider name.
func WithProvider(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, providerKey{}, name)
}

// FlowIDExtractor adds "flow_id" when the context carries one.
func FlowIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := ctx.Value(flowIDKey{}).(string); ok && id != "" {
		return slog.String("flow_id", id), true
	}
	return slog.Attr{}, false
}

// ProviderExtractor adds "oauth_provider" when the context carries one.
func ProviderExtractor(ctx context.Context) (slog.Attr, bool) {
	if name, ok := ctx.Value(providerKey{}).(string); ok && name != "" {
		return slog.String("oauth_provider", name), true
	}
	return slog.Attr{}, false
}
