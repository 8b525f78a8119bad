package models

import (
	"time"

	"gorm.io/gorm"
)

// Base contains common columns for all tables. Primary keys are numeric
// auto-increments: the finance list projection derives synthetic display IDs
// from record IDs, so keys must stay integer-valued.
type Base struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
