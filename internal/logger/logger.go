package logger

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

// New builds the service logger.
// Kubernetes, dev and prod get JSON lines for log aggregation; anything else
// gets a text handler with errors highlighted. Both are wrapped so records
// logged with a span in context carry trace_id and span_id.
func New(env string) *slog.Logger {
	_, inK8s := os.LookupEnv("KUBERNETES_SERVICE_HOST")
	return NewWithWriter(os.Stdout, inK8s || env == "prod" || env == "dev")
}

// NewWithWriter is New with an explicit destination and format.
func NewWithWriter(w io.Writer, useJSON bool) *slog.Logger {
	var handler slog.Handler
	if useJSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: true,
		})
	} else {
		handler = newColorTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
	return slog.New(newTraceContextHandler(handler))
}

func NewWithServiceContext(serviceName, version, env string) *slog.Logger {
	return New(env).With(
		slog.String("service", serviceName),
		slog.String("version", version),
		slog.String("environment", env),
	)
}

// colorTextHandler paints ERROR lines red. The text handler escapes control
// bytes inside values, so the colour codes wrap the rendered line instead.
type colorTextHandler struct {
	handler slog.Handler
	out     *colorOutput
}

// colorOutput is shared by every handler derived through WithAttrs and
// WithGroup so that lines from all of them are serialized onto w.
type colorOutput struct {
	mu  sync.Mutex
	buf bytes.Buffer
	w   io.Writer
}

func newColorTextHandler(w io.Writer, opts *slog.HandlerOptions) *colorTextHandler {
	out := &colorOutput{w: w}
	return &colorTextHandler{handler: slog.NewTextHandler(&out.buf, opts), out: out}
}

func (h *colorTextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *colorTextHandler) Handle(ctx context.Context, r slog.Record) error {
	h.out.mu.Lock()
	defer h.out.mu.Unlock()

	h.out.buf.Reset()
	if err := h.handler.Handle(ctx, r); err != nil {
		return err
	}

	line := h.out.buf.Bytes()
	if r.Level >= slog.LevelError {
		line = append(append([]byte(colorRed), bytes.TrimSuffix(line, []byte("\n"))...), colorReset+"\n"...)
	}
	_, err := h.out.w.Write(line)
	return err
}

func (h *colorTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &colorTextHandler{handler: h.handler.WithAttrs(attrs), out: h.out}
}

func (h *colorTextHandler) WithGroup(name string) slog.Handler {
	return &colorTextHandler{handler: h.handler.WithGroup(name), out: h.out}
}

// traceContextHandler adds trace_id and span_id from the OTel span context
type traceContextHandler struct {
	handler slog.Handler
}

func newTraceContextHandler(h slog.Handler) *traceContextHandler {
	return &traceContextHandler{handler: h}
}

func (h *traceContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *traceContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", spanCtx.TraceID().String()),
			slog.String("span_id", spanCtx.SpanID().String()),
		)
	}
	return h.handler.Handle(ctx, r)
}

func (h *traceContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceContextHandler{handler: h.handler.WithAttrs(attrs)}
}

func (h *traceContextHandler) WithGroup(name string) slog.Handler {
	return &traceContextHandler{handler: h.handler.WithGroup(name)}
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
