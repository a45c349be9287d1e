package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/ajitpratap0/spawnpool/pkg/entity"
	"github.com/ajitpratap0/spawnpool/pkg/errors"
)

func recordingTracer() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	sr := tracetest.NewSpanRecorder()
	return sr, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
}

func TestSpanAttributes(t *testing.T) {
	sr, tp := recordingTracer()

	_, span := StartSpan(context.Background(), tp.Tracer("test"), "round")
	span.SetAttribute("round", 3)
	span.SetAttribute("kind", entity.Spider)
	span.SetAttribute("randomize", true)
	span.AddEvent("placed", attribute.Int("count", 2))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "round", ended[0].Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, int64(3), attrs["round"].AsInt64())
	assert.Equal(t, "spider", attrs["kind"].AsString())
	assert.True(t, attrs["randomize"].AsBool())
	assert.Contains(t, attrs, attribute.Key("duration_us"))
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "placed", ended[0].Events()[0].Name)
}

func TestSpanFail(t *testing.T) {
	sr, tp := recordingTracer()

	_, span := StartSpan(context.Background(), tp.Tracer("test"), "acquire")
	span.Fail(errors.New(errors.ErrorTypeNotFound, "no queue for warrior"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestInitTracingExportsToWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultTracingConfig("test")
	cfg.Output = &buf
	cfg.PrettyPrint = false

	tp, err := InitTracing(context.Background(), cfg)
	require.NoError(t, err)

	_, span := StartSpan(context.Background(), Tracer(), "simulation")
	span.End()
	require.NoError(t, tp.Shutdown(context.Background()))

	assert.Contains(t, buf.String(), `"Name":"simulation"`)
	assert.Contains(t, buf.String(), "spawnpool")
}
