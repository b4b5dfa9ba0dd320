package db

import (
	"gorm.io/gorm"

	"github.com/diewo77/go-crm/internal/models"
)

// Migrate runs AutoMigrate for all models.
// Call this at application startup or as part of a migration step.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth & Authorization
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		// Business entities
		&models.Client{},
		&models.Contract{},
		&models.Event{},
	)
}
