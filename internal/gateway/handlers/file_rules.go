package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/routegate/routegate/internal/db"
	"github.com/routegate/routegate/internal/db/models"
	"gorm.io/gorm"
)

// FileRulesHandler returns all active file routing rules
func FileRulesHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules, err := db.GetFileRules(database)
		if err != nil {
			http.Error(w, `{"error": "Failed to load file rules"}`, http.StatusInternalServerError)
			return
		}
		if rules == nil {
			rules = []models.FileRoutingRule{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rules)
	}
}

// CreateFileRuleHandler adds a file routing rule, retargeting the existing
// rule when one already covers the file type
func CreateFileRuleHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			FileType         string `json:"file_type"`
			RedirectProvider string `json:"redirect_provider"`
			RedirectModel    string `json:"redirect_model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
			return
		}

		id, err := db.UpsertFileRule(database, body.FileType, body.RedirectProvider, body.RedirectModel)
		if err != nil {
			if errors.Is(err, db.ErrValidation) {
				http.Error(w, `{"error": "file_type, redirect_provider and redirect_model are required"}`, http.StatusBadRequest)
				return
			}
			http.Error(w, `{"error": "Failed to create file rule"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      id,
			"message": "File rule added successfully",
		})
	}
}

// DeleteFileRuleHandler soft-deletes a file routing rule
func DeleteFileRuleHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := ruleIDParam(r)
		if err != nil {
			http.Error(w, `{"error": "Invalid rule ID"}`, http.StatusBadRequest)
			return
		}

		deleted, err := db.DeleteFileRule(database, id)
		if err != nil {
			http.Error(w, `{"error": "Failed to delete file rule"}`, http.StatusInternalServerError)
			return
		}
		if !deleted {
			http.Error(w, `{"error": "Rule not found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "File rule deleted successfully"})
	}
}
