package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/socialfeed/component"
	"github.com/kbukum/socialfeed/logger"
)

// App owns a binary's components and runs them through one lifecycle:
// start infrastructure, OnStart, configure, ready check, OnReady, wait, then
// OnStop and reverse-order shutdown. C is the binary's own config type.
//
//	a, err := bootstrap.NewApp(cfg)
//	a.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    return a.StartComponent(ctx, server.NewComponent(srv))
//	})
//	err = a.Run(ctx)
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	onConfigure     []func(ctx context.Context, app *App[C]) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp creates a new application instance from a typed config.
// It applies defaults, validates the config, and initializes the logger.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()
	set := newSettings(opts)

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Logger:          set.logger,
		gracefulTimeout: set.gracefulTimeout,
	}
	if app.Logger == nil {
		logger.Init(base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}
	app.Components = component.NewRegistry(app.Logger)
	app.Summary = NewSummary(base.Name, base.Version, set.summaryOut)
	return app, nil
}

// RegisterComponent adds a component to the application's registry.
// Components registered before Run start in Phase 1.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// StartComponent registers c and starts it immediately. Use it from
// configure callbacks for components that depend on business wiring, such
// as an HTTP server whose routes need started infrastructure. It is stopped
// with the rest, in reverse registration order.
func (a *App[C]) StartComponent(ctx context.Context, c component.Component) error {
	if err := a.Components.Register(c); err != nil {
		return err
	}
	return a.Components.StartAll(ctx)
}

// OnConfigure registers a callback to run during the configure phase, after
// infrastructure components are started.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// ReadyCheck reports every component that is not healthy, as
// "name=status(message)".
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var issues []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status == component.StatusHealthy {
			continue
		}
		issue := fmt.Sprintf("%s=%s", h.Name, h.Status)
		if h.Message != "" {
			issue += "(" + h.Message + ")"
		}
		issues = append(issues, issue)
	}
	if len(issues) > 0 {
		return fmt.Errorf("unhealthy components: %s", strings.Join(issues, ", "))
	}
	return nil
}

// Run executes the full lifecycle for long-running services:
// start components, OnStart hooks, configure, ready check, OnReady hooks,
// wait for a signal or ctx cancellation, OnStop hooks, graceful shutdown.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		a.abort()
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// RunTask executes a finite task with the same lifecycle as Run, but shuts
// down when the task returns instead of waiting for a signal. A signal
// cancels the task's context.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		a.abort()
		return err
	}

	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	taskErr := task(taskCtx)
	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

type phase struct {
	name string
	run  func(ctx context.Context) error
}

// startup runs the phases shared by Run and RunTask. A failed ready check
// only warns: a degraded database still lets the server answer /health.
func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	phases := []phase{
		{"initialization", a.Components.StartAll},
		{"onStart", func(ctx context.Context) error { return runHooks(ctx, "onStart", a.onStart) }},
		{"configuration", a.configure},
		{"ready check", func(ctx context.Context) error {
			if err := a.ReadyCheck(ctx); err != nil {
				a.Logger.Warn("Ready check reported issues", logger.Fields("error", err.Error()))
			}
			return nil
		}},
		{"onReady", func(ctx context.Context) error { return runHooks(ctx, "onReady", a.onReady) }},
	}
	for _, p := range phases {
		a.Logger.Debug("Startup phase", logger.Fields("phase", p.name))
		if err := p.run(ctx); err != nil {
			return fmt.Errorf("%s failed: %w", p.name, err)
		}
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.Summary.Display(ctx, a.Components)
	return nil
}

func (a *App[C]) configure(ctx context.Context) error {
	for i, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return fmt.Errorf("callback #%d: %w", i+1, err)
		}
	}
	return nil
}

// abort stops whatever started before a failed startup.
func (a *App[C]) abort() {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Cleanup after failed startup", logger.Fields("error", err.Error()))
	}
}

// WaitForSignal blocks until SIGINT, SIGTERM or ctx cancellation and returns
// the signal, or nil for cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Shutdown signal received", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// stop runs OnStop hooks and then stops components, all within the graceful
// timeout. Both steps always run; their errors are joined.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down", logger.Fields("timeout", a.gracefulTimeout.String()))
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	err := errors.Join(
		runHooks(ctx, "onStop", a.onStop),
		a.Components.StopAll(ctx),
	)
	if err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.Fields("error", err.Error()))
		return err
	}
	a.Logger.Info("Shutdown complete")
	return nil
}
