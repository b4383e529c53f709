// Package component defines lifecycle-managed infrastructure pieces
// (database, HTTP server) and the registry that starts them in order and
// stops them in reverse.
//
// # Interfaces
//
//   - Component: Start/Stop/Health lifecycle
//   - Describable: one-line description for the startup summary
//   - RouteProvider: registered HTTP routes for the startup summary
package component
