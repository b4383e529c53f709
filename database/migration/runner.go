// Package migration applies versioned, GORM-based schema migrations and
// records them in a schema_migrations table. The table is managed through
// GORM, so the runner works on every supported driver.
package migration

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kbukum/socialfeed/logger"
)

// Migration describes a single GORM-based schema migration.
// IDs are applied in registration order and must be unique.
type Migration struct {
	ID          string
	Description string
	Up          func(*gorm.DB) error
}

// appliedMigration is a row of schema_migrations.
type appliedMigration struct {
	ID          string    `gorm:"primaryKey;size:255"`
	Description string    `gorm:"size:255"`
	AppliedAt   time.Time `gorm:"not null"`
}

func (appliedMigration) TableName() string { return "schema_migrations" }

// Runner applies migrations tracked in schema_migrations.
type Runner struct {
	db         *gorm.DB
	log        *logger.Logger
	migrations []Migration
}

// NewRunner creates a runner bound to the given database and logger.
func NewRunner(db *gorm.DB, log *logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{db: db, log: log}
}

// Add registers migrations to be applied.
func (r *Runner) Add(migrations ...Migration) *Runner {
	r.migrations = append(r.migrations, migrations...)
	return r
}

// Run applies all pending migrations in order, each in its own transaction.
// It returns the IDs that were applied by this call.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&appliedMigration{}); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	seen := make(map[string]bool, len(r.migrations))
	var applied []string
	for _, m := range r.migrations {
		if seen[m.ID] {
			return applied, fmt.Errorf("duplicate migration id %s", m.ID)
		}
		seen[m.ID] = true

		done, err := r.isApplied(db, m.ID)
		if err != nil {
			return applied, fmt.Errorf("failed to check migration %s: %w", m.ID, err)
		}
		if done {
			r.log.Debug("Migration already applied", map[string]interface{}{"id": m.ID})
			continue
		}

		r.log.Info("Applying migration", map[string]interface{}{
			"id":          m.ID,
			"description": m.Description,
		})
		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&appliedMigration{
				ID:          m.ID,
				Description: m.Description,
				AppliedAt:   time.Now().UTC(),
			}).Error
		}); err != nil {
			return applied, fmt.Errorf("failed to apply migration %s: %w", m.ID, err)
		}
		applied = append(applied, m.ID)
	}
	return applied, nil
}

// Applied returns the IDs recorded in schema_migrations, oldest first.
func (r *Runner) Applied(ctx context.Context) ([]string, error) {
	var rows []appliedMigration
	if err := r.db.WithContext(ctx).Order("applied_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

func (r *Runner) isApplied(db *gorm.DB, id string) (bool, error) {
	var count int64
	err := db.Model(&appliedMigration{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// AutoMigrate returns an Up func that auto-migrates the given models.
func AutoMigrate(models ...interface{}) func(*gorm.DB) error {
	return func(tx *gorm.DB) error {
		return tx.AutoMigrate(models...)
	}
}
