package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/kbukum/socialfeed/component"
	"github.com/kbukum/socialfeed/database/migration"
	apperrors "github.com/kbukum/socialfeed/errors"
)

type widget struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:50;uniqueIndex;not null"`
}

func memoryConfig(t *testing.T) Config {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return Config{
		Driver:       DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		MaxRetries:   1,
		AutoMigrate:  true,
		LogLevel:     "silent",
	}
}

func startComponent(t *testing.T, migrations ...migration.Migration) *Component {
	t.Helper()
	comp := NewComponent(memoryConfig(t), nil).WithMigrations(migrations...)
	if err := comp.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	t.Cleanup(func() { _ = comp.Stop(context.Background()) })
	return comp
}

func TestComponent_Interface(t *testing.T) {
	var _ component.Component = NewComponent(Config{}, nil)
	if got := NewComponent(Config{}, nil).Name(); got != "database" {
		t.Errorf("Name() = %q, want %q", got, "database")
	}
}

func TestComponent_Lifecycle(t *testing.T) {
	comp := NewComponent(memoryConfig(t), nil).WithMigrations(migration.Migration{
		ID: "0001_widgets", Description: "create widgets", Up: migration.AutoMigrate(&widget{}),
	})

	if comp.DB() != nil {
		t.Error("DB() should be nil before Start")
	}
	if h := comp.Health(context.Background()); h.Status != component.StatusUnhealthy {
		t.Errorf("expected unhealthy before start, got %s", h.Status)
	}

	if err := comp.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if comp.DB() == nil {
		t.Fatal("DB() should be set after Start")
	}
	if h := comp.Health(context.Background()); h.Status != component.StatusHealthy {
		t.Errorf("expected healthy, got %s (%s)", h.Status, h.Message)
	}
	if !comp.DB().GormDB.Migrator().HasTable(&widget{}) {
		t.Error("expected widgets table to be migrated")
	}
	if d := comp.Describe(); !strings.Contains(d.Details, "sqlite") || !strings.Contains(d.Details, "migrations=1") {
		t.Errorf("unexpected description %q", d.Details)
	}

	if err := comp.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	if err := comp.DB().Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}

func TestComponent_StartFailsOnBadDriver(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Driver = "oracle"
	if err := NewComponent(cfg, nil).Start(context.Background()); err == nil {
		t.Fatal("expected unsupported driver to fail")
	}
}

func TestWithTransaction(t *testing.T) {
	comp := startComponent(t, migration.Migration{ID: "0001", Up: migration.AutoMigrate(&widget{})})
	db := comp.DB()
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.WithTransaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&widget{Name: "rolled-back"}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if err := db.WithTransaction(ctx, func(tx *gorm.DB) error {
		return tx.Create(&widget{Name: "kept"}).Error
	}); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	var names []string
	db.WithContext(ctx).Model(&widget{}).Pluck("name", &names)
	if len(names) != 1 || names[0] != "kept" {
		t.Fatalf("expected only committed row, got %v", names)
	}
}

func TestFromDatabase_TranslatedErrors(t *testing.T) {
	comp := startComponent(t, migration.Migration{ID: "0001", Up: migration.AutoMigrate(&widget{})})
	gdb := comp.DB().WithContext(context.Background())

	if err := gdb.Create(&widget{Name: "dup"}).Error; err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := gdb.Create(&widget{Name: "dup"}).Error
	if !IsDuplicateError(err) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if appErr := FromDatabase(err, "widget"); appErr.Code != apperrors.ErrCodeConflict {
		t.Errorf("expected CONFLICT, got %s", appErr.Code)
	}

	var w widget
	err = gdb.First(&w, "name = ?", "missing").Error
	if !IsNotFoundError(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if appErr := FromDatabase(err, "widget"); appErr.HTTPStatus != 404 {
		t.Errorf("expected 404, got %d", appErr.HTTPStatus)
	}
}

func TestFromDatabase_Mapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code apperrors.ErrorCode
	}{
		{"canceled", context.Canceled, apperrors.ErrCodeTimeout},
		{"connection", errors.New("dial tcp: connection refused"), apperrors.ErrCodeServiceUnavailable},
		{"generic", errors.New("syntax error"), apperrors.ErrCodeDatabaseError},
		{"app error passthrough", apperrors.Precondition("Post not found"), apperrors.ErrCodePreconditionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromDatabase(tt.err, "post"); got.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, got.Code)
			}
		})
	}
	if FromDatabase(nil, "post") != nil {
		t.Error("expected nil for nil error")
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Driver != DriverSQLite || cfg.DSN == "" {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad driver", func(c *Config) { c.Driver = "oracle" }},
		{"missing dsn", func(c *Config) { c.DSN = "" }},
		{"idle above open", func(c *Config) { c.MaxIdleConns = c.MaxOpenConns + 1 }},
		{"bad duration", func(c *Config) { c.ConnMaxLifetime = "forever" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cfg
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverPostgres, DriverMySQL} {
		d, err := Dialector(Config{Driver: driver, DSN: "x"})
		if err != nil {
			t.Fatalf("%s: %v", driver, err)
		}
		if d.Name() != driver {
			t.Errorf("expected dialector %s, got %s", driver, d.Name())
		}
	}
	if _, err := Dialector(Config{Driver: "oracle"}); err == nil {
		t.Error("expected unsupported driver error")
	}
}
