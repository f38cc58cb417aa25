package trace

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// useRecorder installs an in-memory span recorder as the global provider for
// the duration of the test.
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return rec
}

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	p, err := Setup(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if p != nil {
		t.Fatal("expected nil provider when endpoint is empty")
	}
	// Shutdown on nil is a no-op.
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown(nil): %v", err)
	}
}

func TestStartEnd_RecordsAttributesAndErrors(t *testing.T) {
	rec := useRecorder(t)

	_, span := Start(context.Background(), "workspace.stop", AttrWorkspaceKey.String("abc"))
	End(span, errors.New("boom"))

	_, second := Start(context.Background(), "workspace.delete")
	End(second, nil)

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	failed := spans[0]
	if failed.Name() != "workspace.stop" {
		t.Errorf("name: got %q", failed.Name())
	}
	if failed.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", failed.Status().Code)
	}
	var found bool
	for _, kv := range failed.Attributes() {
		if kv.Key == AttrWorkspaceKey && kv.Value.AsString() == "abc" {
			found = true
		}
	}
	if !found {
		t.Error("expected workspace key attribute")
	}
	if spans[1].Status().Code == codes.Error {
		t.Error("expected success span to have no error status")
	}
}
