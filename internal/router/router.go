package router

import (
	"net/http"

	"github.com/Lraccc/campus-eats-sub003/config"
	"github.com/Lraccc/campus-eats-sub003/internal/handler"
	"github.com/Lraccc/campus-eats-sub003/internal/metrics"
	"github.com/Lraccc/campus-eats-sub003/internal/middleware"
	"github.com/Lraccc/campus-eats-sub003/internal/repository"
	"github.com/Lraccc/campus-eats-sub003/internal/service"
	"github.com/Lraccc/campus-eats-sub003/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires stores, services, the hub and all routes. The geofence
// snapshot load happens here so a boot against an unreachable store fails
// before the server starts listening.
func Setup(cfg *config.Config, db *gorm.DB) (*gin.Engine, error) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	m := metrics.New()
	geofenceRepo := repository.NewGeofenceRepository(db)
	locationRepo := repository.NewLocationRepository(db)

	geofenceSvc := service.NewGeofenceService(geofenceRepo)
	if err := geofenceSvc.LoadSnapshot(); err != nil {
		return nil, err
	}

	hub := ws.NewHub(m)
	geofenceHandler := handler.NewGeofenceHandler(geofenceSvc)
	locationHandler := handler.NewLocationHandler(locationRepo)
	trackHandler := handler.NewTrackHandler(&cfg.JWT, &cfg.Realtime, hub, locationRepo, geofenceSvc, m)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitWindow)))
	{
		api.GET("/geofences", geofenceHandler.List)
		api.POST("/geofences", geofenceHandler.Create)
		api.GET("/locations", locationHandler.List)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/ws/track", trackHandler.Serve)

	return r, nil
}
