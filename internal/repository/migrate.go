package repository

import (
	"fmt"

	"gymbooking/internal/database"

	"gorm.io/gorm"
)

// Migrate creates the schema and then installs the overlap and range rules
// that gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&storeModel{},
		&profileModel{},
		&staffModel{},
		&serviceModel{},
		&slotModel{},
		&bookingModel{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return database.ApplyConstraints(db)
}
