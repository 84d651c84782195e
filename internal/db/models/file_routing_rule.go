package models

import "time"

// FileRoutingRule redirects requests that carry an uploaded file of FileType to
// a fixed target, regardless of the requested provider/model.
// FileType is unique: creating a rule for an existing type retargets and
// reactivates the existing row instead of inserting a duplicate.
type FileRoutingRule struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	FileType         string    `gorm:"uniqueIndex;not null" json:"file_type"` // e.g., "PDF", "Word Document"
	RedirectProvider string    `gorm:"not null" json:"redirect_provider"`
	RedirectModel    string    `gorm:"not null" json:"redirect_model"`
	IsActive         bool      `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
