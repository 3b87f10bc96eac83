package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/hitstand/internal/platform/otel"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("HITSTAND_OTEL_ENDPOINT", "")
	t.Setenv("HITSTAND_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "hitstand-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("HITSTAND_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("HITSTAND_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "hitstand-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no export actually happens.
	t.Setenv("HITSTAND_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("HITSTAND_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "hitstand-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
