package kit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggingTagsChannelAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ep := Chain(RequestID(), Logging(logger, "message"))(func(ctx context.Context, _ any) (any, error) {
		if GetRequestID(ctx) == "" {
			t.Error("endpoint ran without a request ID")
		}
		return "ok", nil
	})

	ctx := WithChannel(context.Background(), "whatsapp")
	if _, err := ep(ctx, nil); err != nil {
		t.Fatalf("endpoint: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"endpoint=message", "channel=whatsapp", "transport=http", "request_id="} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %q missing %q", out, want)
		}
	}
}

func TestLoggingReportsEndpointError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	boom := errors.New("backend down")
	ep := Logging(logger, "contacts")(func(context.Context, any) (any, error) {
		return nil, boom
	})

	if _, err := ep(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want the endpoint error passed through", err)
	}
	if out := buf.String(); !strings.Contains(out, "endpoint failed") || !strings.Contains(out, "backend down") {
		t.Errorf("log line %q missing the failure record", out)
	}
}
