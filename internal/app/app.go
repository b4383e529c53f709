package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/socialfeed/auth"
	"github.com/kbukum/socialfeed/auth/password"
	"github.com/kbukum/socialfeed/bootstrap"
	"github.com/kbukum/socialfeed/component"
	"github.com/kbukum/socialfeed/database"
	"github.com/kbukum/socialfeed/internal/feed"
	"github.com/kbukum/socialfeed/internal/httpapi"
	"github.com/kbukum/socialfeed/observability"
	"github.com/kbukum/socialfeed/server"
)

// App is the bootstrapped socialfeed application.
type App = bootstrap.App[*Config]

// New builds the HTTP service. Telemetry and the database start first; the
// configure phase wires the feed, seeds an empty database, mounts the routes
// and only then starts the HTTP server.
func New(cfg *Config, opts ...bootstrap.Option) (*App, error) {
	a, db, err := newInfra(cfg, opts...)
	if err != nil {
		return nil, err
	}

	a.OnConfigure(func(ctx context.Context, a *App) error {
		tokens, err := auth.NewTokenService(a.Cfg.Auth.JWT)
		if err != nil {
			return fmt.Errorf("token service: %w", err)
		}
		hasher := password.NewHasher(a.Cfg.Auth.Password)
		store := feed.NewGormStore(db.DB())

		if !a.Cfg.DisableSeed {
			if _, err := feed.Seed(ctx, store, hasher, time.Now(), a.Logger); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
		}

		metrics, err := observability.NewMetrics(observability.Meter(ServiceName))
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		svc := feed.NewService(store, hasher, tokens,
			feed.WithLogger(a.Logger),
			feed.WithMetrics(metrics),
		)

		srv := server.New(a.Cfg.Server, a.Logger)
		srv.ApplyMiddleware(metrics)
		srv.RegisterDefaultEndpoints(a.Name, a.Components.HealthAll)
		httpapi.Register(srv.Engine(), svc, tokens)

		a.Summary.TrackSetting("auth", a.Cfg.Auth.Describe())
		a.Summary.TrackSetting("seed", seedSetting(a.Cfg.DisableSeed))
		return a.StartComponent(ctx, server.NewComponent(srv))
	})
	return a, nil
}

// Seed migrates the database and installs the demo dataset, then exits.
func Seed(ctx context.Context, cfg *Config, opts ...bootstrap.Option) error {
	a, db, err := newInfra(cfg, opts...)
	if err != nil {
		return err
	}
	return a.RunTask(ctx, func(ctx context.Context) error {
		hasher := password.NewHasher(a.Cfg.Auth.Password)
		wrote, err := feed.Seed(ctx, feed.NewGormStore(db.DB()), hasher, time.Now(), a.Logger)
		if err != nil {
			return err
		}
		if !wrote {
			a.Logger.Info("Database already contains users, seed skipped")
		}
		return nil
	})
}

// newInfra creates the app with the telemetry and database components
// registered.
func newInfra(cfg *Config, opts ...bootstrap.Option) (*App, *database.Component, error) {
	a, err := bootstrap.NewApp(cfg, opts...)
	if err != nil {
		return nil, nil, err
	}

	obs := observability.NewComponent(a.Cfg.Observability, observability.Resource{
		ServiceName:    a.Cfg.Name,
		ServiceVersion: a.Cfg.Version,
		Environment:    a.Cfg.Environment,
	}, a.Logger)
	db := database.NewComponent(a.Cfg.Database, a.Logger).WithMigrations(feed.Migrations()...)

	for _, c := range []component.Component{obs, db} {
		if err := a.RegisterComponent(c); err != nil {
			return nil, nil, err
		}
	}
	return a, db, nil
}

func seedSetting(disabled bool) string {
	if disabled {
		return "disabled"
	}
	return "demo dataset when empty"
}
