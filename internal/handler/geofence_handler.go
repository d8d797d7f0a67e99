package handler

import (
	"net/http"

	"github.com/Lraccc/campus-eats-sub003/internal/models"
	"github.com/Lraccc/campus-eats-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type geofenceAdmin interface {
	Create(name string, rings models.PolygonCoords) (*models.Geofence, error)
	ListAll() ([]models.Geofence, error)
}

type GeofenceHandler struct {
	svc geofenceAdmin
}

func NewGeofenceHandler(svc geofenceAdmin) *GeofenceHandler {
	return &GeofenceHandler{svc: svc}
}

type geometry struct {
	Type        string               `json:"type"`
	Coordinates models.PolygonCoords `json:"coordinates"`
}

type geofenceResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location geometry `json:"location"`
}

func toGeofenceResponse(g *models.Geofence) geofenceResponse {
	return geofenceResponse{
		ID:   g.ID,
		Name: g.Name,
		Location: geometry{
			Type:        "Polygon",
			Coordinates: g.Coordinates,
		},
	}
}

func (h *GeofenceHandler) List(c *gin.Context) {
	fences, err := h.svc.ListAll()
	if err != nil {
		log.Error().Err(err).Msg("geofence list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]geofenceResponse, 0, len(fences))
	for i := range fences {
		out = append(out, toGeofenceResponse(&fences[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *GeofenceHandler) Create(c *gin.Context) {
	var req struct {
		Name        string               `json:"name"`
		Coordinates models.PolygonCoords `json:"coordinates"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	fence, err := h.svc.Create(req.Name, req.Coordinates)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Str("name", req.Name).Msg("geofence create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, toGeofenceResponse(fence))
}
