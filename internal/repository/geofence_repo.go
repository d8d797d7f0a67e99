package repository

import (
	"github.com/Lraccc/campus-eats-sub003/internal/models"

	"gorm.io/gorm"
)

type GeofenceRepository struct {
	db *gorm.DB
}

func NewGeofenceRepository(db *gorm.DB) *GeofenceRepository {
	return &GeofenceRepository{db: db}
}

func (r *GeofenceRepository) Create(g *models.Geofence) error {
	return r.db.Create(g).Error
}

func (r *GeofenceRepository) ListAll() ([]models.Geofence, error) {
	var fences []models.Geofence
	if err := r.db.Find(&fences).Error; err != nil {
		return nil, err
	}
	return fences, nil
}
