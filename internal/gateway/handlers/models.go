package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/routegate/routegate/internal/db"
	"gorm.io/gorm"
)

// ModelsHandler lists available models as "provider/model" strings
func ModelsHandler(database *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names, err := db.GetAvailableModels(database)
		if err != nil {
			http.Error(w, `{"error": "Failed to load models"}`, http.StatusInternalServerError)
			return
		}
		if names == nil {
			names = []string{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(names)
	}
}
