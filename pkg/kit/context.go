package kit

import "context"

type contextKey string

const (
	ChannelKey   contextKey = "kit_channel"   // "whatsapp", "web", "mcp"
	TransportKey contextKey = "kit_transport" // "http", "mcp"
	RequestIDKey contextKey = "kit_request_id"
)

func WithChannel(ctx context.Context, c string) context.Context {
	return context.WithValue(ctx, ChannelKey, c)
}
func GetChannel(ctx context.Context) string {
	v, _ := ctx.Value(ChannelKey).(string)
	return v
}

func WithTransport(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, TransportKey, t)
}
func GetTransport(ctx context.Context) string {
	if v, ok := ctx.Value(TransportKey).(string); ok {
		return v
	}
	return "http"
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(RequestIDKey).(string)
	return v
}
