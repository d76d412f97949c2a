package opentracing

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fyerfyer/fyer-resmodel/logger"
	"github.com/fyerfyer/fyer-resmodel/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestMiddlewareBuilder_Build(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	mb := &MiddlewareBuilder{Tracer: tp.Tracer("test")}

	m, err := resource.New("users",
		resource.WithFields(resource.Map("name", "n"), resource.Map("id", "uid")),
		resource.WithExecutor(db),
		resource.WithMiddlewares(mb.Build()),
		resource.WithLogger(logger.Nop()),
	)
	require.NoError(t, err)

	mock.ExpectExec("UPDATE").WithArgs("Bob", 5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE").WithArgs(7).WillReturnError(assert.AnError)

	_, err = m.Update(context.Background(), resource.ChangeSet{resource.Set("name", "Bob")}, resource.Ref("id").Eq(5))
	require.NoError(t, err)
	_, err = m.Delete(context.Background(), resource.Ref("id").Eq(7))
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	update := spans[0]
	assert.Equal(t, "update users", update.Name())
	assert.Equal(t, trace.SpanKindClient, update.SpanKind())
	assert.Equal(t, codes.Unset, update.Status().Code)
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range update.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "update", attrs["db.operation"].AsString())
	assert.Equal(t, "users", attrs["db.sql.table"].AsString())
	assert.Equal(t, "UPDATE `users` SET `n` = :p1 WHERE (`uid` = :p2)", attrs["db.statement"].AsString())
	assert.Equal(t, int64(2), attrs["db.params"].AsInt64())
	assert.NotEmpty(t, attrs["db.query_id"].AsString())

	del := spans[1]
	assert.Equal(t, "delete users", del.Name())
	assert.Equal(t, codes.Error, del.Status().Code)
	assert.Len(t, del.Events(), 1)
}
