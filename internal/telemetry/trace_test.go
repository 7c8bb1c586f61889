package telemetry

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestNewTraceDisabledIsNoop(t *testing.T) {
	tr, cleanup, err := NewTrace(&config.Configuration{}, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	ctx, span, end := tr.WithSpan(context.Background(), "unit")
	require.NotNil(t, ctx)
	assert.False(t, span.SpanContext().IsValid())

	tr.ApplyTraceAttributes(span, core.TraceSnapshotMeta{Driver: "mongo", Users: 3})
	tr.ApplyTraceAttributes(span, nil)
	end(errors.New("ignored by noop span"))
}

func TestWithSpanEndsOnce(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer provider.Shutdown(context.Background())
	tr := &Trace{tracer: provider.Tracer("unit")}

	_, _, end := tr.WithSpan(context.Background(), "submit")
	end(errors.New("quota exceeded"))
	end(nil)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "submit", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "quota exceeded", ended[0].Status().Description)
}

func TestWithSpanNamesCaller(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer provider.Shutdown(context.Background())
	tr := &Trace{tracer: provider.Tracer("unit")}

	_, _, end := tr.WithSpan(context.Background())
	end(nil)

	require.Len(t, recorder.Ended(), 1)
	assert.Equal(t, "TestWithSpanNamesCaller", recorder.Ended()[0].Name())
}

func TestPrettifyFuncName(t *testing.T) {
	assert.Equal(t, "DashboardService.OrgTree", prettifyFuncName("squadhealth/internal/service.(*DashboardService).OrgTree"))
	assert.Equal(t, "DashboardHandler.Tree", prettifyFuncName("squadhealth/internal/handler.(*DashboardHandler).Tree-fm"))
	assert.Equal(t, "Load", prettifyFuncName("squadhealth/internal/service.Load.func1"))
}

func TestAttributesOf(t *testing.T) {
	type inner struct {
		Level string `trace:"user.level_id"`
	}
	type meta struct {
		UserID   string            `trace:"auth.user_id,omitempty"`
		Teams    []string          `trace:"user.teams"`
		Score    float64           `trace:"summary.score"`
		Nested   *inner            `trace:"nested"`
		Filter   map[string]any    `trace:"filter"`
		At       time.Time         `trace:"session.date"`
		Took     time.Duration     `trace:"orgtree.duration"`
		Skipped  int               `trace:"skipped,omitempty"`
		Untagged string
		Labels   map[string]string `trace:"labels"`
	}

	attrs := attributesOf(reflect.ValueOf(meta{
		Teams:  []string{"alpha"},
		Score:  2.5,
		Nested: &inner{Level: "manager"},
		Filter: map[string]any{"teamId": "alpha", "page": 2},
		At:     time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC),
		Took:   1500 * time.Millisecond,
		Labels: map[string]string{"env": "test"},
	}))

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range attrs {
		got[kv.Key] = kv.Value
	}
	_, hasUser := got["auth.user_id"]
	assert.False(t, hasUser, "omitempty drops zero values")
	_, hasSkipped := got["skipped"]
	assert.False(t, hasSkipped)
	assert.Equal(t, []string{"alpha"}, got["user.teams"].AsStringSlice())
	assert.Equal(t, 2.5, got["summary.score"].AsFloat64())
	assert.Equal(t, "manager", got["user.level_id"].AsString())
	assert.Equal(t, "alpha", got["filter.teamId"].AsString())
	assert.Equal(t, int64(2), got["filter.page"].AsInt64())
	assert.Equal(t, "2024-09-02T00:00:00Z", got["session.date"].AsString())
	assert.Equal(t, 1500.0, got["orgtree.duration_ms"].AsFloat64())
	assert.Equal(t, "test", got["labels.env"].AsString())
	assert.Len(t, got, 8)
}

func TestSamplerOf(t *testing.T) {
	assert.Contains(t, samplerOf(0).Description(), "AlwaysOnSampler")
	assert.Contains(t, samplerOf(1).Description(), "AlwaysOnSampler")
	assert.Contains(t, samplerOf(0.25).Description(), "TraceIDRatioBased{0.25}")
}
