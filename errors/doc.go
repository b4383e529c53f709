// Package errors provides the application error type used across the service.
// Every failure that reaches a client is an *AppError carrying a machine-readable
// code, a human-readable message and the HTTP status it maps to.
package errors
