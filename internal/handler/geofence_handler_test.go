package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lraccc/campus-eats-sub003/internal/models"
	"github.com/Lraccc/campus-eats-sub003/internal/service"

	"github.com/gin-gonic/gin"
)

type mockGeofenceAdmin struct {
	fences   []models.Geofence
	createFn func(name string, rings models.PolygonCoords) (*models.Geofence, error)
	listErr  error
}

func (m *mockGeofenceAdmin) Create(name string, rings models.PolygonCoords) (*models.Geofence, error) {
	if m.createFn != nil {
		return m.createFn(name, rings)
	}
	return nil, errors.New("not configured")
}

func (m *mockGeofenceAdmin) ListAll() ([]models.Geofence, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.fences, nil
}

func geofenceRouter(svc geofenceAdmin) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewGeofenceHandler(svc)
	r.GET("/api/geofences", h.List)
	r.POST("/api/geofences", h.Create)
	return r
}

func TestCreateGeofence_Created(t *testing.T) {
	svc := &mockGeofenceAdmin{createFn: func(name string, rings models.PolygonCoords) (*models.Geofence, error) {
		return &models.Geofence{ID: "f1", Name: name, Coordinates: rings}, nil
	}}
	r := geofenceRouter(svc)

	body := `{"name":"Campus","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/geofences", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Location struct {
			Type        string               `json:"type"`
			Coordinates models.PolygonCoords `json:"coordinates"`
		} `json:"location"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.ID != "f1" || resp.Name != "Campus" || resp.Location.Type != "Polygon" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.Location.Coordinates[0]) != 5 {
		t.Errorf("expected the closed ring back, got %v", resp.Location.Coordinates)
	}
}

func TestCreateGeofence_ValidationError(t *testing.T) {
	svc := &mockGeofenceAdmin{createFn: func(string, models.PolygonCoords) (*models.Geofence, error) {
		return nil, service.ErrRingTooSmall
	}}
	r := geofenceRouter(svc)

	body := `{"name":"Bad","coordinates":[[[0,0],[0,1]]]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/geofences", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var resp map[string]string
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] == "" {
		t.Error("400 response must carry a descriptive error")
	}
}

func TestCreateGeofence_StoreErrorIsGeneric(t *testing.T) {
	svc := &mockGeofenceAdmin{createFn: func(string, models.PolygonCoords) (*models.Geofence, error) {
		return nil, errors.New("dial tcp 10.0.0.5:3306: connection refused")
	}}
	r := geofenceRouter(svc)

	body := `{"name":"Campus","coordinates":[[[0,0],[0,1],[1,1],[1,0],[0,0]]]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/geofences", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Error("500 response must not echo the underlying cause")
	}
}

func TestListGeofences(t *testing.T) {
	svc := &mockGeofenceAdmin{fences: []models.Geofence{
		{ID: "f1", Name: "Campus", Coordinates: models.PolygonCoords{{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}}},
		{ID: "f2", Name: "Depot", Coordinates: models.PolygonCoords{{{5, 5}, {5, 6}, {6, 6}, {5, 5}}}},
	}}
	r := geofenceRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/geofences", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp []struct {
		ID       string `json:"id"`
		Location struct {
			Type string `json:"type"`
		} `json:"location"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if len(resp) != 2 || resp[0].Location.Type != "Polygon" {
		t.Errorf("unexpected list: %+v", resp)
	}
}
