package models

import (
	"time"
)

// RoutingRule redirects chat requests for a specific (provider, model) pair to a
// different target when the prompt matches RegexPattern.
// Patterns are stored as raw RE2 source; inline flags such as "(?i)" are honored
// at evaluation time.
// Rules are never physically removed: deletion flips IsActive and inactive rows
// are excluded from listing and evaluation.
type RoutingRule struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	OriginalProvider string    `gorm:"not null" json:"original_provider"` // e.g., "openai"
	OriginalModel    string    `gorm:"not null" json:"original_model"`    // e.g., "gpt-4"
	RegexPattern     string    `gorm:"not null" json:"regex_pattern"`
	RedirectProvider string    `gorm:"not null" json:"redirect_provider"`
	RedirectModel    string    `gorm:"not null" json:"redirect_model"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
