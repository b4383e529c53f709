package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/socialfeed/component"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func checker(statuses ...component.HealthStatus) HealthChecker {
	return func(context.Context) []component.Health {
		out := make([]component.Health, 0, len(statuses))
		for i, s := range statuses {
			out = append(out, component.Health{Name: string(rune('a' + i)), Status: s})
		}
		return out
	}
}

func get(t *testing.T, h gin.HandlerFunc) (int, map[string]any) {
	t.Helper()
	engine := gin.New()
	engine.GET("/", h)
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, httptest.NewRequest("GET", "/", http.NoBody))
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	return rr.Code, body
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		checker    HealthChecker
		wantCode   int
		wantStatus string
	}{
		{"no checker", nil, http.StatusOK, "healthy"},
		{"all healthy", checker(component.StatusHealthy, component.StatusHealthy), http.StatusOK, "healthy"},
		{"degraded", checker(component.StatusHealthy, component.StatusDegraded), http.StatusOK, "degraded"},
		{"unhealthy", checker(component.StatusDegraded, component.StatusUnhealthy), http.StatusServiceUnavailable, "unhealthy"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, body := get(t, Health("socialfeed", tc.checker))
			if code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, code)
			}
			if body["status"] != tc.wantStatus {
				t.Fatalf("expected status %s, got %v", tc.wantStatus, body["status"])
			}
			if body["service"] != "socialfeed" {
				t.Fatalf("expected service socialfeed, got %v", body["service"])
			}
		})
	}
}

func TestReadiness(t *testing.T) {
	if code, body := get(t, Readiness("svc", checker(component.StatusDegraded))); code != http.StatusOK || body["status"] != "ready" {
		t.Fatalf("expected degraded to be ready, got %d %v", code, body["status"])
	}
	if code, body := get(t, Readiness("svc", checker(component.StatusUnhealthy))); code != http.StatusServiceUnavailable || body["status"] != "not_ready" {
		t.Fatalf("expected not_ready, got %d %v", code, body["status"])
	}
}

func TestLiveness(t *testing.T) {
	if code, body := get(t, Liveness("svc")); code != http.StatusOK || body["status"] != "alive" {
		t.Fatalf("expected alive, got %d %v", code, body["status"])
	}
}

func TestInfo(t *testing.T) {
	code, body := get(t, Info("svc"))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["version"] == "" || body["uptime"] == nil {
		t.Fatalf("expected version and uptime, got %v", body)
	}
}
