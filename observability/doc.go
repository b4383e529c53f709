// Package observability wires OpenTelemetry tracing and metrics.
//
// Providers are owned by Component and installed globally on Start when
// export is enabled; otherwise the global no-op providers stay in place.
//
//	ctx, span := observability.StartSpan(ctx, "feed.create_post")
//	defer func() { observability.EndSpan(span, err) }()
//
//	metrics, err := observability.NewMetrics(observability.Meter("socialfeed"))
//	metrics.RecordRequestEnd(ctx, "GET", "/api/posts", 200, elapsed)
package observability
