package db

import (
	"github.com/routegate/routegate/internal/db/models"
	"gorm.io/gorm"
)

// GetAvailableModels returns "provider/model" strings for all available
// catalog entries, in insertion order.
func GetAvailableModels(database *gorm.DB) ([]string, error) {
	var entries []models.Model
	if err := database.Where("is_available = ?", true).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Provider+"/"+entry.ModelName)
	}
	return names, nil
}
