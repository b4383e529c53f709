// Package database provides a GORM-based database component with driver
// selection, connection pooling, health checks, transactions and versioned
// migrations.
//
// # Drivers
//
// The driver is chosen by configuration:
//
//	database:
//	  driver: "sqlite"     # sqlite | postgres | mysql
//	  dsn: "file:socialfeed.db?_foreign_keys=on"
//
// MySQL's default collation compares strings case-insensitively, so unique
// indexes there reject values differing only in case.
//
// # Lifecycle
//
//	comp := database.NewComponent(cfg, log).WithMigrations(migrations...)
//	registry.Register(comp)
//
// Start connects with retries and applies pending migrations; Health pings
// the pool; Stop closes it.
package database
