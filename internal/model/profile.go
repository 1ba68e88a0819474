package model

import (
	"time"

	"gorm.io/gorm"
)

// Profile is the unified model for a user profile (used for both PostgreSQL
// and Redis).
type Profile struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"size:255;not null;uniqueIndex"`
	Email    string `json:"email" gorm:"size:255;not null"`
	FullName string `json:"full_name" gorm:"size:255"`

	// Saved home location shown on the map page.
	HomeLat     float64 `json:"home_lat" gorm:""`
	HomeLng     float64 `json:"home_lng" gorm:""`
	HomeAddress string  `json:"home_address" gorm:"type:text"`

	// Opaque to this service; session handling lives elsewhere.
	PasswordHash string `json:"-" gorm:"size:255"`

	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	CreatedAt time.Time      `json:"-" gorm:"column:created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

// ToLightVersion returns a copy without the password hash for Redis storage.
func (p *Profile) ToLightVersion() *Profile {
	return &Profile{
		ID:          p.ID,
		Username:    p.Username,
		Email:       p.Email,
		FullName:    p.FullName,
		HomeLat:     p.HomeLat,
		HomeLng:     p.HomeLng,
		HomeAddress: p.HomeAddress,
		UpdatedAt:   p.UpdatedAt,
	}
}
