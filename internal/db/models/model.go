package models

import "time"

// Model is a catalog entry for a provider/model pair clients may request.
// Only available entries are advertised as routing and generation targets.
type Model struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Provider    string    `gorm:"not null" json:"provider"`
	ModelName   string    `gorm:"not null" json:"model_name"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
