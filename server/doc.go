// Package server provides the Gin HTTP server, JSON response helpers and a
// lifecycle component for the component registry.
//
// # Middleware
//
// ApplyMiddleware installs, in order (server/middleware):
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: X-Request-Id generation and propagation
//   - Tracing: one OpenTelemetry server span per request
//   - RequestLogger: request logging with level by status
//   - Metrics: request count, latency and in-flight requests
//   - CORS: origin allow-list with preflight handling
//   - NoCache: non-cacheable responses
//   - BodySizeLimit: request body size limit
//
// Auth (Bearer token validation) is applied per route group.
//
// # Endpoints
//
// RegisterDefaultEndpoints adds /health, /liveness, /readiness and /info
// (server/endpoint).
package server
