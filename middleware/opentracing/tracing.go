package opentracing

import (
	"context"

	"github.com/fyerfyer/fyer-resmodel/resource"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type MiddlewareBuilder struct {
	Tracer trace.Tracer
}

var defaultInstrumentationName = "fyer-resmodel"

// Build 为每条执行的语句开一个 span
func (m *MiddlewareBuilder) Build() resource.Middleware {
	tracer := m.Tracer
	if tracer == nil {
		tracer = otel.GetTracerProvider().Tracer(defaultInstrumentationName)
	}

	return func(next resource.Handler) resource.Handler {
		return resource.HandlerFunc(func(ctx context.Context, qc *resource.QueryContext) (*resource.QueryResult, error) {
			ctx, span := tracer.Start(ctx, qc.Statement+" "+qc.Table, trace.WithSpanKind(trace.SpanKindClient))
			defer span.End()

			span.SetAttributes(
				attribute.String("db.system", "mysql"),
				attribute.String("db.operation", qc.Statement),
				attribute.String("db.sql.table", qc.Table),
				attribute.String("db.statement", qc.Query.SQL),
				attribute.String("db.query_id", qc.ID),
				attribute.Int("db.params", len(qc.Query.Params)),
			)

			res, err := next.QueryHandler(ctx, qc)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			return res, err
		})
	}
}
