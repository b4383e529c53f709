// Package logger provides structured logging backed by zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.GetGlobalLogger().WithComponent("feed")
//	log.WithContext(ctx).Info("post created", logger.Fields("post_id", 42))
package logger
