package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/routegate/routegate/internal/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetFileRules returns active file routing rules in insertion order.
func GetFileRules(database *gorm.DB) ([]models.FileRoutingRule, error) {
	var rules []models.FileRoutingRule
	err := database.Where("is_active = ?", true).Order("id ASC").Find(&rules).Error
	return rules, err
}

// UpsertFileRule inserts a file rule, or when a row for fileType already
// exists (active or not) retargets and reactivates it. The insert-or-update
// runs as a single ON CONFLICT statement so concurrent writers cannot create
// duplicate active rows for one file type. Returns the surviving row's id.
func UpsertFileRule(database *gorm.DB, fileType, redirectProvider, redirectModel string) (uint, error) {
	if strings.TrimSpace(fileType) == "" ||
		strings.TrimSpace(redirectProvider) == "" ||
		strings.TrimSpace(redirectModel) == "" {
		return 0, fmt.Errorf("%w: missing required file rule fields", ErrValidation)
	}

	var id uint
	err := database.Transaction(func(tx *gorm.DB) error {
		rule := models.FileRoutingRule{
			FileType:         fileType,
			RedirectProvider: redirectProvider,
			RedirectModel:    redirectModel,
			IsActive:         true,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "file_type"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"redirect_provider": redirectProvider,
				"redirect_model":    redirectModel,
				"is_active":         true,
			}),
		}).Create(&rule).Error; err != nil {
			return err
		}

		// On the conflict path gorm does not report the updated row's id, so
		// read it back inside the same transaction.
		var existing models.FileRoutingRule
		if err := tx.Where("file_type = ?", fileType).First(&existing).Error; err != nil {
			return err
		}
		id = existing.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteFileRule soft-deletes a file rule. Same leniency as DeleteRule:
// a known id reports success even when the rule is already inactive.
func DeleteFileRule(database *gorm.DB, id uint) (bool, error) {
	result := database.Model(&models.FileRoutingRule{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindFileRouting returns the redirect target for a file type, or ok=false
// when no active rule covers it.
func FindFileRouting(database *gorm.DB, fileType string) (provider, model string, ok bool, err error) {
	var rule models.FileRoutingRule
	result := database.Where("file_type = ? AND is_active = ?", fileType, true).First(&rule)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", "", false, nil
		}
		return "", "", false, result.Error
	}
	return rule.RedirectProvider, rule.RedirectModel, true, nil
}
