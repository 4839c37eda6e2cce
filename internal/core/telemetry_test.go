// AngelaMos | 2026
// telemetry_test.go

package core

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/carterperez-dev/surveys/internal/config"
)

func TestTelemetryWithoutExporter(t *testing.T) {
	ctx := context.Background()

	tel, err := NewTelemetry(ctx,
		config.OtelConfig{ServiceName: "encuestas-test"},
		config.AppConfig{Version: "test", Environment: "development"},
	)
	if err != nil {
		t.Fatalf("NewTelemetry: %v", err)
	}
	t.Cleanup(func() { _ = tel.Shutdown(ctx) })

	if tel.Exporting {
		t.Fatalf("expected no exporter without an endpoint")
	}
	if otel.GetTracerProvider() != tel.TracerProvider {
		t.Fatalf("expected provider to be installed globally")
	}

	spanCtx, span := tel.Tracer.Start(ctx, "work")
	defer span.End()

	if TraceIDFromContext(spanCtx) == "" {
		t.Fatalf("expected a trace id for log correlation")
	}
	if TraceIDFromContext(ctx) != "" {
		t.Fatalf("expected no trace id outside a span")
	}

	AddSpanEvent(spanCtx, "checked")
	SetSpanError(spanCtx, errors.New("boom"))
}

func TestSampleRate(t *testing.T) {
	tests := map[float64]float64{0: defaultSampleRate, -1: defaultSampleRate, 2: defaultSampleRate, 0.5: 0.5, 1: 1}
	for in, want := range tests {
		if got := sampleRate(in); got != want {
			t.Errorf("sampleRate(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestShutdownNilTelemetry(t *testing.T) {
	var tel *Telemetry
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
