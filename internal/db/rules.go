package db

import (
	"fmt"
	"strings"

	"github.com/routegate/routegate/internal/db/models"
	"gorm.io/gorm"
)

// GetAllRules returns active text routing rules in insertion order.
func GetAllRules(database *gorm.DB) ([]models.RoutingRule, error) {
	var rules []models.RoutingRule
	err := database.Where("is_active = ?", true).Order("id ASC").Find(&rules).Error
	return rules, err
}

// GetRulesForTarget returns active text rules matching the requested
// provider/model pair, in insertion order. The routing engine evaluates them
// first-match-wins, so the ordering here is part of the contract.
func GetRulesForTarget(database *gorm.DB, provider, model string) ([]models.RoutingRule, error) {
	var rules []models.RoutingRule
	err := database.
		Where("original_provider = ? AND original_model = ? AND is_active = ?", provider, model, true).
		Order("id ASC").
		Find(&rules).Error
	return rules, err
}

// AddRule inserts a new active text routing rule and returns its id.
// All five fields are required.
func AddRule(database *gorm.DB, rule *models.RoutingRule) (uint, error) {
	if err := validateRuleFields(rule); err != nil {
		return 0, err
	}
	rule.ID = 0
	rule.IsActive = true
	if err := database.Create(rule).Error; err != nil {
		return 0, err
	}
	return rule.ID, nil
}

// UpdateRule replaces all fields of an active rule. Returns false when no
// active rule with that id exists; callers treat that as not-found, not an
// error.
func UpdateRule(database *gorm.DB, id uint, rule *models.RoutingRule) (bool, error) {
	if err := validateRuleFields(rule); err != nil {
		return false, err
	}
	result := database.Model(&models.RoutingRule{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{
			"original_provider": rule.OriginalProvider,
			"original_model":    rule.OriginalModel,
			"regex_pattern":     rule.RegexPattern,
			"redirect_provider": rule.RedirectProvider,
			"redirect_model":    rule.RedirectModel,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteRule soft-deletes a rule by flipping is_active. Deleting an already
// inactive rule still succeeds as long as the id exists; only unknown ids
// report false.
func DeleteRule(database *gorm.DB, id uint) (bool, error) {
	result := database.Model(&models.RoutingRule{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func validateRuleFields(rule *models.RoutingRule) error {
	missing := make([]string, 0, 5)
	for field, value := range map[string]string{
		"original_provider": rule.OriginalProvider,
		"original_model":    rule.OriginalModel,
		"regex_pattern":     rule.RegexPattern,
		"redirect_provider": rule.RedirectProvider,
		"redirect_model":    rule.RedirectModel,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required rule fields", ErrValidation)
	}
	return nil
}
