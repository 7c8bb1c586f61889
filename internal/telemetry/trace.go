package telemetry

import (
	"context"
	"time"

	"squadhealth/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const defaultExportTimeout = 30 * time.Second

// Trace 包一層 tracer；零值可直接使用 (noop)
type Trace struct {
	tracer trace.Tracer
}

// NewTrace 未啟用時回傳 noop 版本；cleanup 會 flush 尚未送出的 span
func NewTrace(conf *config.Configuration, logger *zap.Logger) (*Trace, func(), error) {
	if conf == nil || !conf.Telemetry.Trace.Enabled {
		return &Trace{}, func() {}, nil
	}
	traceConf := conf.Telemetry.Trace

	timeout := defaultExportTimeout
	if traceConf.Timeout > 0 {
		timeout = time.Duration(traceConf.Timeout) * time.Second
	}
	exporter, err := otlptracehttp.New(context.Background(),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithEndpointURL(traceConf.EndpointUrl),
		otlptracehttp.WithRetry(otlptracehttp.RetryConfig{
			Enabled:         true,
			InitialInterval: 5 * time.Second,
			MaxInterval:     10 * time.Second,
			MaxElapsedTime:  time.Minute,
		}),
		otlptracehttp.WithTimeout(timeout),
	)
	if err != nil {
		logger.Error("failed to create otlp exporter", zap.Error(err))
		return nil, nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(samplerOf(traceConf.SampleRatio)),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resourceOf(conf.App)),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	logger.Info("tracing enabled",
		zap.String("endpoint", traceConf.EndpointUrl),
		zap.Float64("sampleRatio", traceConf.SampleRatio),
	)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Warn("failed to shutdown tracer provider", zap.Error(err))
		}
	}
	return &Trace{tracer: provider.Tracer(conf.App.Name)}, cleanup, nil
}

// 取樣比例介於 (0,1) 才啟用比例取樣，上游已取樣的 span 一律跟隨
func samplerOf(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

func resourceOf(app config.App) *resource.Resource {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(app.Name),
	}
	if app.Version != "" {
		attrs = append(attrs, semconv.ServiceVersion(app.Version))
	}
	if app.Env != "" {
		attrs = append(attrs, semconv.DeploymentEnvironmentName(app.Env))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

func (t *Trace) tracerOrNoop() trace.Tracer {
	if t == nil || t.tracer == nil {
		return noop.NewTracerProvider().Tracer("noop")
	}
	return t.tracer
}
