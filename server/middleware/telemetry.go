package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/socialfeed/logger"
	"github.com/kbukum/socialfeed/observability"
)

const unmatchedRoute = "unmatched"

// Tracing opens a server span per request, continuing any incoming W3C
// trace context, and exposes the trace ids to the request logger.
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := observability.StartSpan(ctx, "HTTP "+c.Request.Method,
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.target", c.Request.URL.Path),
		)
		defer span.End()

		if id, ok := c.Get(RequestIDKey); ok {
			span.SetAttributes(attribute.String(observability.AttrRequestID, fmt.Sprint(id)))
		}
		if traceID, spanID := observability.TraceIDs(ctx); traceID != "" {
			ctx = logger.ContextWithTrace(ctx, traceID, spanID)
		}
		if sc := span.SpanContext(); sc.IsValid() {
			c.Header("Traceparent", traceparent(sc))
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		route := routeOf(c)
		status := c.Writer.Status()
		span.SetName("HTTP " + c.Request.Method + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if status >= 500 {
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
		}
	}
}

// Metrics records request count, latency and in-flight requests keyed by
// the matched route template.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.RecordRequestStart(c.Request.Context())
		c.Next()
		m.RecordRequestEnd(c.Request.Context(), c.Request.Method, routeOf(c), c.Writer.Status(), time.Since(start))
	}
}

func routeOf(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return unmatchedRoute
}

func traceparent(sc trace.SpanContext) string {
	return fmt.Sprintf("00-%s-%s-%s", sc.TraceID(), sc.SpanID(), sc.TraceFlags())
}
