package db

import (
	"github.com/glebarez/sqlite"
	"github.com/routegate/routegate/internal/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the SQLite database and runs migrations.
func InitDB(dbPath string) (*gorm.DB, error) {
	database, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate all models
	if err := database.AutoMigrate(&models.Model{}, &models.RoutingRule{}, &models.FileRoutingRule{}); err != nil {
		return nil, err
	}

	return database, nil
}
