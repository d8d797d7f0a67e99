package models

import "time"

// UserLocation is the most recent reported position per identity.
// One row per user id, overwritten in place on every report.
type UserLocation struct {
	UserID        string    `gorm:"primaryKey;size:191" json:"user_id"`
	Name          string    `gorm:"size:255" json:"name"`
	Role          string    `gorm:"size:32" json:"role"`
	Longitude     float64   `gorm:"type:decimal(11,8);not null" json:"longitude"`
	Latitude      float64   `gorm:"type:decimal(10,8);not null" json:"latitude"`
	LastUpdatedAt time.Time `gorm:"not null;index" json:"last_updated_at"`
}

func (UserLocation) TableName() string {
	return "user_locations"
}
