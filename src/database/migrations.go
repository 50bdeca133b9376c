package database

import (
	"idproof/pkg/logger"
	"idproof/src/model"

	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.ClaimCommitment{},
		&model.Challenge{},
		&model.ProofRecord{},
		&model.ProofFailure{},
		&model.OutboxEvent{},
	)
}

func RunMigrations() {
	db := GetDatabaseConnection()
	migrationLogger := logger.Default()
	migrationLogger.Info("Running migrations for tables... ")

	if err := AutoMigrate(db); err != nil {
		migrationLogger.Fatal(err, "Migrating database failed")
	}

	migrationLogger.Info("All tables created (or already exist).")
}
