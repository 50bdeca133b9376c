package database

import (
	"sync"

	"idproof/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	databaseConnection *gorm.DB
	onceDatabase       sync.Once
)

func InitializeDatabaseConnection(connectionString string) {
	onceDatabase.Do(func() {
		db, err := gorm.Open(postgres.Open(connectionString), &gorm.Config{})
		if err != nil {
			logger.Default().Fatal(err, "Cannot establish database connection")
		}
		databaseConnection = db
	})
}

func GetDatabaseConnection() *gorm.DB {
	if databaseConnection == nil {
		panic("Database not initialized: call InitializeDatabaseConnection() first")
	}
	return databaseConnection
}
