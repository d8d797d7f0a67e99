package service

import (
	"errors"
	"strings"
	"sync"

	"github.com/Lraccc/campus-eats-sub003/internal/geo"
	"github.com/Lraccc/campus-eats-sub003/internal/models"
)

var (
	ErrNameRequired        = errors.New("geofence name is required")
	ErrCoordinatesRequired = errors.New("geofence coordinates are required")
	ErrRingTooSmall        = errors.New("each ring needs at least 3 distinct points")
	ErrBadVertex           = errors.New("each vertex needs [lng, lat] coordinates")
)

// IsValidation reports whether err is a client-input validation failure,
// as opposed to a store error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrCoordinatesRequired) ||
		errors.Is(err, ErrRingTooSmall) ||
		errors.Is(err, ErrBadVertex)
}

type GeofenceStore interface {
	Create(g *models.Geofence) error
	ListAll() ([]models.Geofence, error)
}

// GeofenceMatch identifies a geofence containing a reported point.
type GeofenceMatch struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GeofenceService validates and creates geofences and answers containment
// queries against an in-memory snapshot of the stored set. The snapshot is
// loaded at boot and extended on every create; geofences are immutable, so
// it never goes stale. A linear scan per location event is fine at the
// geofence counts this service targets.
type GeofenceService struct {
	store GeofenceStore

	mu       sync.RWMutex
	snapshot []models.Geofence
}

func NewGeofenceService(store GeofenceStore) *GeofenceService {
	return &GeofenceService{store: store}
}

// LoadSnapshot reads every stored geofence into memory. Called at boot;
// a failure here is fatal for the process.
func (s *GeofenceService) LoadSnapshot() error {
	fences, err := s.store.ListAll()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = fences
	s.mu.Unlock()
	return nil
}

// Create validates the polygon, closes any open ring, persists it and adds
// it to the matcher snapshot.
func (s *GeofenceService) Create(name string, rings models.PolygonCoords) (*models.Geofence, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if len(rings) == 0 {
		return nil, ErrCoordinatesRequired
	}
	closed := make(models.PolygonCoords, 0, len(rings))
	for _, ring := range rings {
		// Every vertex must carry both components before any geometry
		// helper indexes into it.
		for _, v := range ring {
			if len(v) < 2 {
				return nil, ErrBadVertex
			}
		}
		if geo.CountDistinct(ring) < 3 {
			return nil, ErrRingTooSmall
		}
		closed = append(closed, geo.CloseRing(ring))
	}
	fence := &models.Geofence{Name: name, Coordinates: closed}
	if err := s.store.Create(fence); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.snapshot = append(s.snapshot, *fence)
	s.mu.Unlock()
	return fence, nil
}

// ListAll reads the durable store, not the snapshot.
func (s *GeofenceService) ListAll() ([]models.Geofence, error) {
	return s.store.ListAll()
}

// Containing returns every geofence whose polygon contains (lng, lat).
// Boundary behavior follows geo.PolygonContains.
func (s *GeofenceService) Containing(lng, lat float64) []GeofenceMatch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]GeofenceMatch, 0)
	for _, f := range s.snapshot {
		if geo.PolygonContains(f.Coordinates, lng, lat) {
			matches = append(matches, GeofenceMatch{ID: f.ID, Name: f.Name})
		}
	}
	return matches
}
