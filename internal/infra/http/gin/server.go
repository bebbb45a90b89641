package ginserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"roomly/internal/infra/config"
	"roomly/internal/infra/obs"
)

type AvailabilityHTTP interface {
	Search(c *gin.Context)
}

type RoomHTTP interface {
	Calendar(c *gin.Context)
	ImportCalendar(c *gin.Context)
	ExportICS(c *gin.Context)
	ImportICS(c *gin.Context)
	CreateEvent(c *gin.Context)
	UpdateEvent(c *gin.Context)
	DeleteEvent(c *gin.Context)
	FreeSlots(c *gin.Context)
	Occurrences(c *gin.Context)
}

type Handlers struct {
	Availability AvailabilityHTTP
	Room         RoomHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Availability != nil {
		api.GET("/availability", h.Availability.Search)
	}
	if h.Room != nil {
		api.GET("/rooms/:id/calendar", h.Room.Calendar)
		api.PUT("/rooms/:id/calendar", h.Room.ImportCalendar)
		api.GET("/rooms/:id/calendar.ics", h.Room.ExportICS)
		api.POST("/rooms/:id/ics", h.Room.ImportICS)
		api.POST("/rooms/:id/events", h.Room.CreateEvent)
		api.PUT("/rooms/:id/events/:eventId", h.Room.UpdateEvent)
		api.DELETE("/rooms/:id/events/:eventId", h.Room.DeleteEvent)
		api.GET("/rooms/:id/slots", h.Room.FreeSlots)
		api.GET("/rooms/:id/occurrences", h.Room.Occurrences)
	}

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func configureGinMode(env string) string {
	mode := gin.ReleaseMode
	if env == "dev" {
		mode = gin.DebugMode
	}
	gin.SetMode(mode)
	return mode
}
