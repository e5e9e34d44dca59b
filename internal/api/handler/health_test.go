package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_Liveness(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/health", "")

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	up := Check{Name: "store", Ping: func(context.Context) error { return nil }}
	down := Check{Name: "redis", Ping: func(context.Context) error { return errors.New("dial tcp: refused") }}

	t.Run("all dependencies up", func(t *testing.T) {
		c, rec := newJSONContext(http.MethodGet, "/health/ready", "")
		if err := NewHealthHandler(up).Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("one dependency down", func(t *testing.T) {
		c, rec := newJSONContext(http.MethodGet, "/health/ready", "")
		if err := NewHealthHandler(up, down).Readiness(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rec.Code)
		}
		resp := decodeEnvelope(t, rec)
		deps, _ := resp["dependencies"].(map[string]any)
		if resp["status"] != "degraded" || deps["store"] != "up" || deps["redis"] != "down" {
			t.Fatalf("unexpected body: %+v", resp)
		}
	})
}
