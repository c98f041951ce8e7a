// Package telemetry provides OpenTelemetry tracing for battle resolution.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "battlecore"
	serviceVersion = "0.1.0"
)

// BattleInfo describes the battle a process runs. It is attached to every
// span as resource attributes so traces of different setups can be told apart.
type BattleInfo struct {
	Columns  int
	Rows     int
	Seed     int64
	MaxTurns int
}

// Setup initializes OpenTelemetry with an OTLP HTTP exporter.
// It reads configuration from the standard OTEL_* environment variables:
//   - OTEL_EXPORTER_OTLP_ENDPOINT: collector endpoint
//   - OTEL_EXPORTER_OTLP_HEADERS: extra headers, e.g. API keys
//
// Returns a shutdown function that should be called on application exit.
func Setup(ctx context.Context, info BattleInfo) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	// Own resource, not merged with resource.Default(), to avoid schema URL conflicts
	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(info)...))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func resourceAttributes(info BattleInfo) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("telemetry.sdk.language", "go"),
		attribute.String("telemetry.sdk.name", "opentelemetry"),
		attribute.String("host.name", getHostname()),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.name", "go"),
		attribute.String("process.runtime.version", runtime.Version()),
		attribute.Int("battle.field.columns", info.Columns),
		attribute.Int("battle.field.rows", info.Rows),
		attribute.Int64("battle.seed", info.Seed),
		attribute.Int("battle.max_turns", info.MaxTurns),
	}
}

// Tracer returns a named tracer for the given component.
// Until Setup runs, the global provider hands out no-op tracers.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer("battlecore/" + name)
}

// NoopTracer returns a no-op tracer for use when telemetry is disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer("battlecore/noop")
}

// getHostname returns the system hostname, or "unknown" if it cannot be determined.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
