// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthy() Checker {
	return pingFunc(func(context.Context) error { return nil })
}

func failing() Checker {
	return pingFunc(func(context.Context) error { return errors.New("down") })
}

func serve(t *testing.T, h *Handler, path string) (*httptest.ResponseRecorder, ReadinessResponse) {
	t.Helper()

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body ReadinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return rec, body
}

func readyHandler(version string, db, redis Checker) *Handler {
	h := NewHandler(version, db, redis)
	h.SetReady(true)
	return h
}

func TestReadinessWithoutRedis(t *testing.T) {
	rec, body := serve(t, readyHandler("1.0.0", healthy(), nil), "/readyz")

	if rec.Code != http.StatusOK || body.Status != "ok" {
		t.Fatalf("expected ok, got %d %+v", rec.Code, body)
	}
	if len(body.Checks) != 2 || body.Checks[1].Message != "not configured" {
		t.Fatalf("expected redis reported as not configured, got %+v", body.Checks)
	}
}

func TestReadinessDegraded(t *testing.T) {
	tests := []struct {
		name  string
		db    Checker
		redis Checker
	}{
		{"database down", failing(), nil},
		{"redis down", healthy(), failing()},
		{"database missing", nil, healthy()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serve(t, readyHandler("", tt.db, tt.redis), "/readyz")
			if rec.Code != http.StatusServiceUnavailable || body.Status != "degraded" {
				t.Fatalf("expected degraded, got %d %+v", rec.Code, body)
			}
		})
	}
}

func TestShutdownFailsHealthChecks(t *testing.T) {
	h := readyHandler("", healthy(), healthy())
	h.SetShutdown(true)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec, body := serve(t, h, path)
		if rec.Code != http.StatusServiceUnavailable || body.Status != "shutting_down" {
			t.Fatalf("%s: expected shutting_down, got %d %+v", path, rec.Code, body)
		}
	}
}

func TestNotReadyUntilStartupCompletes(t *testing.T) {
	h := NewHandler("", healthy(), nil)

	rec, body := serve(t, h, "/readyz")
	if rec.Code != http.StatusServiceUnavailable || body.Status != "not_ready" {
		t.Fatalf("expected not_ready, got %d %+v", rec.Code, body)
	}

	rec, _ = serve(t, h, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("liveness must not wait for readiness, got %d", rec.Code)
	}

	h.SetReady(true)
	rec, body = serve(t, h, "/readyz")
	if rec.Code != http.StatusOK || body.Status != "ok" {
		t.Fatalf("expected ok after SetReady, got %d %+v", rec.Code, body)
	}
}
