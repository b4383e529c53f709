package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/kbukum/socialfeed/auth"
	"github.com/kbukum/socialfeed/auth/authctx"
	"github.com/kbukum/socialfeed/auth/jwt"
	apperrors "github.com/kbukum/socialfeed/errors"
	"github.com/kbukum/socialfeed/logger"
	"github.com/kbukum/socialfeed/observability"
	"github.com/kbukum/socialfeed/server/middleware"
)

const testSecret = "test-secret-that-is-at-least-32-bytes-long"

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(mw...)
	return engine
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	engine.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var body apperrors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v (%s)", err, rr.Body.String())
	}
	return body
}

// ---------------------------------------------------------------------------
// Recovery
// ---------------------------------------------------------------------------

func TestRecovery_NoPanic(t *testing.T) {
	engine := newEngine(middleware.Recovery(logger.Nop()))
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	if rr := serve(engine, httptest.NewRequest("GET", "/", http.NoBody)); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestRecovery_Panic(t *testing.T) {
	engine := newEngine(middleware.Recovery(logger.Nop()))
	engine.GET("/test", func(*gin.Context) { panic("test panic") })

	rr := serve(engine, httptest.NewRequest("GET", "/test", http.NoBody))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Code != apperrors.ErrCodeInternal {
		t.Fatalf("expected INTERNAL_ERROR, got %s", body.Code)
	}
	if strings.Contains(body.Message, "test panic") {
		t.Fatalf("panic value leaked to client: %s", body.Message)
	}
}

// ---------------------------------------------------------------------------
// RequestID
// ---------------------------------------------------------------------------

func TestRequestID_GeneratesID(t *testing.T) {
	var seen string
	engine := newEngine(middleware.RequestID())
	engine.GET("/", func(c *gin.Context) {
		seen = logger.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	rr := serve(engine, httptest.NewRequest("GET", "/", http.NoBody))
	got := rr.Header().Get(middleware.RequestIDHeader)
	if got == "" {
		t.Fatal("expected X-Request-Id in response headers")
	}
	if seen != got {
		t.Fatalf("expected request context to carry %s, got %s", got, seen)
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	engine := newEngine(middleware.RequestID())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set(middleware.RequestIDHeader, "custom-id-123")
	rr := serve(engine, req)

	if got := rr.Header().Get(middleware.RequestIDHeader); got != "custom-id-123" {
		t.Fatalf("expected custom-id-123, got %s", got)
	}
}

// ---------------------------------------------------------------------------
// CORS
// ---------------------------------------------------------------------------

var corsConfig = middleware.CORSConfig{
	AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
	AllowedMethods:   []string{"GET", "POST"},
	AllowedHeaders:   []string{"Content-Type", "Authorization"},
	AllowCredentials: true,
}

func TestCORS_SetHeaders(t *testing.T) {
	engine := newEngine(middleware.CORS(corsConfig))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := serve(engine, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected http://localhost:5173, got %s", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST" {
		t.Fatalf("expected 'GET, POST', got %s", got)
	}
	if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("expected 'true', got %s", got)
	}
}

func TestCORS_Preflight(t *testing.T) {
	engine := newEngine(middleware.CORS(corsConfig))
	engine.POST("/api/posts", func(*gin.Context) {
		t.Error("handler should not be called for OPTIONS preflight")
	})

	req := httptest.NewRequest("OPTIONS", "/api/posts", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := serve(engine, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for OPTIONS preflight, got %d", rr.Code)
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	engine := newEngine(middleware.CORS(corsConfig))
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/", http.NoBody)
	req.Header.Set("Origin", "https://evil.com")
	rr := serve(engine, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for disallowed origin, got %s", got)
	}
}

// ---------------------------------------------------------------------------
// NoCache / BodySizeLimit
// ---------------------------------------------------------------------------

func TestNoCache(t *testing.T) {
	engine := newEngine(middleware.NoCache())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := serve(engine, httptest.NewRequest("GET", "/", http.NoBody))
	if got := rr.Header().Get("Cache-Control"); !strings.Contains(got, "no-store") {
		t.Fatalf("expected no-store, got %q", got)
	}
	if got := rr.Header().Get("Pragma"); got != "no-cache" {
		t.Fatalf("expected Pragma no-cache, got %q", got)
	}
}

func TestBodySizeLimit_RejectsDeclaredLength(t *testing.T) {
	engine := newEngine(middleware.BodySizeLimit("16B"))
	engine.POST("/", func(*gin.Context) { t.Error("handler should not run") })

	rr := serve(engine, httptest.NewRequest("POST", "/", strings.NewReader(strings.Repeat("x", 64))))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestBodySizeLimit_CutsOffStream(t *testing.T) {
	engine := newEngine(middleware.BodySizeLimit("16B"))
	engine.POST("/", func(c *gin.Context) {
		var v map[string]any
		if err := json.NewDecoder(c.Request.Body).Decode(&v); err == nil {
			t.Error("expected oversized body to fail decoding")
		}
		c.Status(http.StatusBadRequest)
	})

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"content":"`+strings.Repeat("x", 64)+`"}`))
	req.ContentLength = -1
	if rr := serve(engine, req); rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

// ---------------------------------------------------------------------------
// RequestLogger / Tracing / Metrics
// ---------------------------------------------------------------------------

func TestRequestLogger_LogsWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)
	engine := newEngine(middleware.RequestID(), middleware.RequestLogger(log))
	engine.POST("/api/posts", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest("POST", "/api/posts", http.NoBody)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	serve(engine, req)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q", buf.String())
	}
	if entry["request_id"] != "req-42" {
		t.Errorf("expected request_id req-42, got %v", entry["request_id"])
	}
	if entry["route"] != "/api/posts" || entry["status"] != float64(http.StatusCreated) {
		t.Errorf("unexpected log entry %v", entry)
	}
}

func TestRequestLogger_SkipsHealth(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, "test", &buf)
	engine := newEngine(middleware.RequestLogger(log))
	engine.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(engine, httptest.NewRequest("GET", "/health", http.NoBody))
	if buf.Len() != 0 {
		t.Fatalf("expected no log output for health check, got %q", buf.String())
	}
}

func TestTracingAndMetrics_PassThrough(t *testing.T) {
	metrics, err := observability.NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	engine := newEngine(middleware.Tracing(), middleware.Metrics(metrics))
	engine.GET("/api/posts", func(c *gin.Context) { c.Status(http.StatusOK) })

	if rr := serve(engine, httptest.NewRequest("GET", "/api/posts", http.NoBody)); rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr := serve(engine, httptest.NewRequest("GET", "/nowhere", http.NoBody)); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func newTokenService(t *testing.T, opts ...jwt.Option) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService(jwt.Config{
		Secret:   testSecret,
		Issuer:   "SocialMediaApi",
		Audience: "SocialMediaUsers",
	}, opts...)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func authEngine(t *testing.T, svc *auth.TokenService) *gin.Engine {
	t.Helper()
	engine := newEngine(middleware.Auth(svc))
	engine.GET("/api/posts", func(c *gin.Context) {
		id, ok := auth.IdentityFromContext(c.Request.Context())
		if !ok {
			t.Error("expected identity on request context")
		}
		if tok, ok := authctx.GetToken(c.Request.Context()); !ok || tok == "" {
			t.Error("expected raw token on request context")
		}
		c.JSON(http.StatusOK, gin.H{"userId": id.UserID, "username": id.Username})
	})
	return engine
}

func TestAuth_ValidToken(t *testing.T) {
	svc := newTokenService(t)
	tok, err := svc.Issue(7, "Alice Johnson")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/posts", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	rr := serve(authEngine(t, svc), req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"userId":7`) {
		t.Fatalf("expected user id 7 in body, got %s", rr.Body.String())
	}
}

func TestAuth_Rejections(t *testing.T) {
	svc := newTokenService(t)
	expired := newTokenService(t, jwt.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }))
	old, err := expired.Issue(7, "Alice Johnson")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tests := []struct {
		name   string
		header string
		code   apperrors.ErrorCode
	}{
		{"missing header", "", apperrors.ErrCodeUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", apperrors.ErrCodeUnauthorized},
		{"empty bearer", "Bearer ", apperrors.ErrCodeUnauthorized},
		{"garbage token", "Bearer not-a-jwt", apperrors.ErrCodeInvalidToken},
		{"expired token", "Bearer " + old.Value, apperrors.ErrCodeTokenExpired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			engine := newEngine(middleware.Auth(svc))
			engine.GET("/api/posts", func(*gin.Context) { t.Error("handler should not run") })

			req := httptest.NewRequest("GET", "/api/posts", http.NoBody)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := serve(engine, req)
			if rr.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rr.Code)
			}
			if body := decodeError(t, rr); body.Code != tc.code {
				t.Fatalf("expected %s, got %s", tc.code, body.Code)
			}
		})
	}
}
