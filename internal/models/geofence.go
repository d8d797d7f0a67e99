package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PolygonCoords holds GeoJSON Polygon coordinates: one or more linear rings
// of [lng, lat] pairs. Stored as a JSON column so the geometry round-trips
// without a PostGIS-style type.
type PolygonCoords [][][]float64

func (p PolygonCoords) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PolygonCoords) Scan(v interface{}) error {
	switch b := v.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		return json.Unmarshal(b, p)
	case string:
		return json.Unmarshal([]byte(b), p)
	}
	return errors.New("unsupported polygon column type")
}

// Geofence is a named polygon matched against reported positions.
// Immutable after creation.
type Geofence struct {
	ID          string        `gorm:"primaryKey;size:36" json:"id"`
	Name        string        `gorm:"not null;size:255" json:"name"`
	Coordinates PolygonCoords `gorm:"type:json;not null" json:"coordinates"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (g *Geofence) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

func (Geofence) TableName() string {
	return "geofences"
}
