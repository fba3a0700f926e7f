package mocks

import (
	"context"

	"roomslot/infras/otel"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type noopOtel struct {
	tracer trace.Tracer
}

// NewOtel returns an Otel over the no-op tracer. Scopes run the real attribute and
// error code paths but nothing is recorded or exported.
func NewOtel() otel.Otel {
	return &noopOtel{tracer: noop.NewTracerProvider().Tracer("test")}
}

func (o *noopOtel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	ctx, span := o.tracer.Start(ctx, spanName)

	return ctx, otel.NewScope(span)
}

func (o *noopOtel) Shutdown(_ context.Context) error {
	return nil
}
