package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Lraccc/campus-eats-sub003/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

func TestLocationUpsert_InsertOrUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepository(db)

	mock.ExpectExec("INSERT INTO `user_locations` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(&models.UserLocation{
		UserID:        "u1",
		Name:          "Ana",
		Role:          "courier",
		Longitude:     10,
		Latitude:      20,
		LastUpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestLocationGetByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLocationRepository(db)

	updated := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"user_id", "name", "role", "longitude", "latitude", "last_updated_at"}).
		AddRow("u1", "Ana", "courier", 10.0, 20.0, updated)
	mock.ExpectQuery("SELECT \\* FROM `user_locations` WHERE user_id = \\?").
		WithArgs("u1", 1).
		WillReturnRows(rows)

	loc, err := repo.GetByUserID("u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loc.Longitude != 10 || loc.Latitude != 20 || loc.Role != "courier" {
		t.Errorf("unexpected row: %+v", loc)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGeofenceCreate_AssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGeofenceRepository(db)

	mock.ExpectExec("INSERT INTO `geofences`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	fence := &models.Geofence{
		Name:        "Campus",
		Coordinates: models.PolygonCoords{{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}},
	}
	if err := repo.Create(fence); err != nil {
		t.Fatalf("create: %v", err)
	}
	if fence.ID == "" {
		t.Error("create must assign an id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestGeofenceListAll_ScansGeometry(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGeofenceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "coordinates"}).
		AddRow("f1", "Campus", []byte(`[[[0,0],[0,1],[1,1],[1,0],[0,0]]]`))
	mock.ExpectQuery("SELECT \\* FROM `geofences`").WillReturnRows(rows)

	fences, err := repo.ListAll()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(fences) != 1 {
		t.Fatalf("expected 1 fence, got %d", len(fences))
	}
	ring := fences[0].Coordinates[0]
	if len(ring) != 5 || ring[2][0] != 1 || ring[2][1] != 1 {
		t.Errorf("geometry did not round-trip: %v", fences[0].Coordinates)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
