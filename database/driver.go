package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DialectorFunc builds a GORM dialector from a DSN.
type DialectorFunc func(dsn string) gorm.Dialector

var dialectors = map[string]DialectorFunc{
	DriverSQLite:   sqlite.Open,
	DriverPostgres: postgres.Open,
	DriverMySQL:    mysql.Open,
}

// Dialector returns the dialector for the configured driver.
func Dialector(cfg Config) (gorm.Dialector, error) {
	open, ok := dialectors[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("database: unsupported driver %q", cfg.Driver)
	}
	return open(cfg.DSN), nil
}
