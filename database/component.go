package database

import (
	"context"
	"fmt"

	"github.com/kbukum/socialfeed/component"
	"github.com/kbukum/socialfeed/database/migration"
	"github.com/kbukum/socialfeed/logger"
)

// Component wraps DB and implements component.Component for lifecycle management.
type Component struct {
	db         *DB
	cfg        Config
	log        *logger.Logger
	migrations []migration.Migration
}

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// NewComponent creates a database component for use with the component registry.
func NewComponent(cfg Config, log *logger.Logger) *Component {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	return &Component{
		cfg: cfg,
		log: log.WithComponent("database"),
	}
}

// WithMigrations registers migrations applied on Start when AutoMigrate is on.
func (c *Component) WithMigrations(migrations ...migration.Migration) *Component {
	c.migrations = append(c.migrations, migrations...)
	return c
}

// DB returns the underlying *DB, or nil if not started.
func (c *Component) DB() *DB {
	return c.db
}

// Name returns the component name.
func (c *Component) Name() string { return "database" }

// Start connects to the database and applies pending migrations.
func (c *Component) Start(ctx context.Context) error {
	db, err := New(ctx, c.cfg, c.log)
	if err != nil {
		return fmt.Errorf("database start: %w", err)
	}
	c.db = db

	if c.cfg.AutoMigrate && len(c.migrations) > 0 {
		applied, err := migration.NewRunner(db.GormDB, c.log).Add(c.migrations...).Run(ctx)
		if err != nil {
			return fmt.Errorf("database migrate: %w", err)
		}
		c.log.Info("Migrations complete", map[string]interface{}{"applied": len(applied)})
	}
	return nil
}

// Stop gracefully closes the database connection.
func (c *Component) Stop(_ context.Context) error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Health returns the current health status of the database.
func (c *Component) Health(ctx context.Context) component.Health {
	if c.db == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "database not initialized",
		}
	}

	status := c.db.CheckHealth(ctx)
	if !status.Connected {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("ping failed: %s", status.Error),
		}
	}
	if status.InUseConns >= c.cfg.MaxOpenConns {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusDegraded,
			Message: "connection pool exhausted",
		}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns infrastructure summary info for the startup display.
func (c *Component) Describe() component.Description {
	details := fmt.Sprintf("%s pool=%d/%d", c.cfg.Driver, c.cfg.MaxOpenConns, c.cfg.MaxIdleConns)
	if c.cfg.AutoMigrate {
		details += fmt.Sprintf(" migrations=%d", len(c.migrations))
	}
	return component.Description{
		Name:    "Database",
		Type:    "database",
		Details: details,
	}
}
