package logger

import "context"

type ctxKey struct{}

// WithContext attaches l to ctx.
func WithContext(ctx context.Context, l Interface) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger attached to ctx, or fallback.
func FromContext(ctx context.Context, fallback Interface) Interface {
	if l, ok := ctx.Value(ctxKey{}).(Interface); ok {
		return l
	}
	return fallback
}
