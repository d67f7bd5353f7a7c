// Package telemetry traces shell commands with OpenTelemetry.
package telemetry

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName = "vending/shell"
	SpanPrefix = "vending."

	CommandKey = "vending.command"
	ProductKey = "vending.product"
	OutcomeKey = "vending.outcome"
	BalanceKey = "vending.balance"
	PriceKey   = "vending.price"
	ChangeKey  = "vending.change"
	CoinKey    = "vending.coin"
)

// Operation is the span around one shell command.
type Operation struct {
	ctx  context.Context
	span trace.Span
}

// Start opens a span named vending.<command>. A nil tracer falls back to
// the global provider, which is a no-op unless one was installed.
func Start(ctx context.Context, tracer trace.Tracer, command string, attrs ...attribute.KeyValue) *Operation {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	command = strings.TrimSpace(command)
	if command == "" {
		command = "unknown"
	}

	attrs = append([]attribute.KeyValue{attribute.String(CommandKey, command)}, attrs...)
	spanCtx, span := tracer.Start(ctx, SpanPrefix+command, trace.WithAttributes(attrs...))
	return &Operation{ctx: spanCtx, span: span}
}

func (o *Operation) Context() context.Context {
	if o == nil {
		return context.Background()
	}
	return o.ctx
}

func (o *Operation) SetAttributes(attrs ...attribute.KeyValue) {
	if o == nil || o.span == nil {
		return
	}
	o.span.SetAttributes(attrs...)
}

// Reject marks the operation as refused by the machine, e.g. a purchase
// that failed for lack of change. It is not an error of the program.
func (o *Operation) Reject(outcome string) {
	if o == nil || o.span == nil {
		return
	}
	o.span.SetAttributes(attribute.String(OutcomeKey, outcome))
	o.span.SetStatus(codes.Error, outcome)
}

// End closes the span, recording err if non-nil.
func (o *Operation) End(err error) {
	if o == nil || o.span == nil {
		return
	}
	if err != nil {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, strings.TrimSpace(err.Error()))
	}
	o.span.End()
}

// NewLogProvider returns a tracer provider that writes every ended span to
// logger at debug level.
func NewLogProvider(logger *slog.Logger) *sdktrace.TracerProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(&logSpanProcessor{logger: logger}))
}

type logSpanProcessor struct {
	logger *slog.Logger
}

func (p *logSpanProcessor) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p *logSpanProcessor) OnEnd(span sdktrace.ReadOnlySpan) {
	if p == nil || p.logger == nil {
		return
	}

	args := []any{
		"span", span.Name(),
		"duration", span.EndTime().Sub(span.StartTime()),
		"status", span.Status().Code.String(),
	}
	if desc := strings.TrimSpace(span.Status().Description); desc != "" {
		args = append(args, "description", desc)
	}
	for _, attr := range span.Attributes() {
		args = append(args, string(attr.Key), attr.Value.Emit())
	}
	p.logger.Debug("Span ended.", args...)
}

func (p *logSpanProcessor) Shutdown(context.Context) error {
	return nil
}

func (p *logSpanProcessor) ForceFlush(context.Context) error {
	return nil
}
