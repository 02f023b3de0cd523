package database

import (
	"gorm.io/gorm"

	"github.com/orgdhq/orgd/internal/models"
)

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Organization{},
		&models.User{},
	)
}
