package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/routegate/routegate/internal/db"
	"github.com/routegate/routegate/internal/db/models"
	"gorm.io/gorm"
)

// RulesHandler returns all active text routing rules
func RulesHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules, err := db.GetAllRules(database)
		if err != nil {
			http.Error(w, `{"error": "Failed to load rules"}`, http.StatusInternalServerError)
			return
		}
		if rules == nil {
			rules = []models.RoutingRule{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rules)
	}
}

// CreateRuleHandler adds a new text routing rule
func CreateRuleHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rule models.RoutingRule
		if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
			http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
			return
		}

		id, err := db.AddRule(database, &rule)
		if err != nil {
			if errors.Is(err, db.ErrValidation) {
				http.Error(w, `{"error": "All rule fields are required"}`, http.StatusBadRequest)
				return
			}
			http.Error(w, `{"error": "Failed to create rule"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      id,
			"message": "Rule added successfully",
		})
	}
}

// UpdateRuleHandler replaces all fields of an active rule
func UpdateRuleHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ruleIDParam(r)
		if err != nil {
			http.Error(w, `{"error": "Invalid rule ID"}`, http.StatusBadRequest)
			return
		}

		var rule models.RoutingRule
		if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
			http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
			return
		}

		updated, err := db.UpdateRule(database, id, &rule)
		if err != nil {
			if errors.Is(err, db.ErrValidation) {
				http.Error(w, `{"error": "All rule fields are required"}`, http.StatusBadRequest)
				return
			}
			http.Error(w, `{"error": "Failed to update rule"}`, http.StatusInternalServerError)
			return
		}
		if !updated {
			http.Error(w, `{"error": "Rule not found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Rule updated successfully"})
	}
}

// DeleteRuleHandler soft-deletes a rule
func DeleteRuleHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ruleIDParam(r)
		if err != nil {
			http.Error(w, `{"error": "Invalid rule ID"}`, http.StatusBadRequest)
			return
		}

		deleted, err := db.DeleteRule(database, id)
		if err != nil {
			http.Error(w, `{"error": "Failed to delete rule"}`, http.StatusInternalServerError)
			return
		}
		if !deleted {
			http.Error(w, `{"error": "Rule not found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Rule deleted successfully"})
	}
}

// ResetRulesHandler restores the seed catalog and rule set
func ResetRulesHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.ResetAndSeed(database); err != nil {
			http.Error(w, `{"error": "Failed to reset rules"}`, http.StatusInternalServerError)
			return
		}

		rules, err := db.GetAllRules(database)
		if err != nil {
			http.Error(w, `{"error": "Failed to load rules"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"rules":   rules,
			"count":   len(rules),
		})
	}
}

func ruleIDParam(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
