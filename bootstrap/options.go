package bootstrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kbukum/socialfeed/config"
	"github.com/kbukum/socialfeed/logger"
)

// Config is satisfied by any struct embedding config.ServiceConfig that
// also defaults and validates its own sections.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}

// Option configures NewApp.
type Option func(*settings)

type settings struct {
	logger          *logger.Logger
	gracefulTimeout time.Duration
	summaryOut      io.Writer
}

func newSettings(opts []Option) settings {
	s := settings{gracefulTimeout: 15 * time.Second, summaryOut: os.Stdout}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLogger replaces the global logger built from the config's logging
// section.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithGracefulTimeout bounds OnStop hooks plus component shutdown.
// Non-positive values keep the 15s default.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.gracefulTimeout = d
		}
	}
}

// WithSummaryOutput sends the startup summary to w instead of stdout.
func WithSummaryOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.summaryOut = w
		}
	}
}

// Hook runs at a fixed point of the lifecycle; see OnStart, OnReady, OnStop.
type Hook func(ctx context.Context) error

// OnStart hooks run once every registered component has started, before the
// configure callbacks.
func (a *App[C]) OnStart(hooks ...Hook) { a.onStart = append(a.onStart, hooks...) }

// OnReady hooks run after the ready check, when the HTTP server is already
// accepting requests.
func (a *App[C]) OnReady(hooks ...Hook) { a.onReady = append(a.onReady, hooks...) }

// OnStop hooks run on shutdown before components stop, in registration order.
func (a *App[C]) OnStop(hooks ...Hook) { a.onStop = append(a.onStop, hooks...) }

func runHooks(ctx context.Context, phase string, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("%s hook #%d: %w", phase, i+1, err)
		}
	}
	return nil
}
