package http

import "context"

type contextKey string

const (
	callerAddressKey contextKey = "caller_address"
	requestIDKey     contextKey = "request_id"
)

// WithCallerAddress attaches the authenticated account address to the context.
func WithCallerAddress(ctx context.Context, address string) context.Context {
	return context.WithValue(ctx, callerAddressKey, address)
}

// CallerAddress returns the authenticated account address, if any.
func CallerAddress(ctx context.Context) (string, bool) {
	address, ok := ctx.Value(callerAddressKey).(string)
	return address, ok
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
