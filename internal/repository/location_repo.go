package repository

import (
	"github.com/Lraccc/campus-eats-sub003/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// Upsert writes the row for loc.UserID, overwriting any existing position.
// Last write wins; concurrent first reports for the same identity cannot
// race a duplicate-key failure.
func (r *LocationRepository) Upsert(loc *models.UserLocation) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "role", "longitude", "latitude", "last_updated_at"}),
	}).Create(loc).Error
}

func (r *LocationRepository) GetByUserID(userID string) (*models.UserLocation, error) {
	var loc models.UserLocation
	err := r.db.Where("user_id = ?", userID).First(&loc).Error
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) ListAll() ([]models.UserLocation, error) {
	var locs []models.UserLocation
	if err := r.db.Find(&locs).Error; err != nil {
		return nil, err
	}
	return locs, nil
}
