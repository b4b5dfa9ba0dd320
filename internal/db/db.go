// Package db owns the database connection, schema migration and the
// RBAC seed procedure.
package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-crm/internal/config"
)

// Connect opens the configured database. The sqlite driver is the
// development default; postgres is selected with DB_DRIVER=postgres.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	switch cfg.Driver {
	case "sqlite", "":
		return gorm.Open(sqlite.Open(cfg.Path), gormCfg)
	case "postgres":
		return gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	}
	return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
}
