package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the tables backing the repositories.
// Used by cmd/seed and the test suites; production schemas are managed
// the same way for now.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&scheduleModel{},
		&scheduleTraineeModel{},
		&bookingModel{},
	)
}
