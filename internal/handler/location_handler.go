package handler

import (
	"net/http"
	"time"

	"github.com/Lraccc/campus-eats-sub003/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type locationLister interface {
	ListAll() ([]models.UserLocation, error)
}

// LocationHandler exposes the last-known-location table to operational
// tooling. updatedAt doubles as the staleness signal for entries whose
// session is long gone.
type LocationHandler struct {
	locs locationLister
}

func NewLocationHandler(locs locationLister) *LocationHandler {
	return &LocationHandler{locs: locs}
}

type pointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type locationResponse struct {
	UserID    string        `json:"userId"`
	Name      string        `json:"name,omitempty"`
	Role      string        `json:"role,omitempty"`
	Location  pointGeometry `json:"location"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func (h *LocationHandler) List(c *gin.Context) {
	locs, err := h.locs.ListAll()
	if err != nil {
		log.Error().Err(err).Msg("location list failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]locationResponse, 0, len(locs))
	for _, loc := range locs {
		out = append(out, locationResponse{
			UserID: loc.UserID,
			Name:   loc.Name,
			Role:   loc.Role,
			Location: pointGeometry{
				Type:        "Point",
				Coordinates: [2]float64{loc.Longitude, loc.Latitude},
			},
			UpdatedAt: loc.LastUpdatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
