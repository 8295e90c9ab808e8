// Package server assembles repositories, services and handlers into the
// HTTP API.
package server

import (
	"context"
	"net/http"
	"time"

	"gymbooking/internal/events"
	"gymbooking/internal/middleware"
	"gymbooking/internal/modules/booking"
	"gymbooking/internal/modules/catalog"
	"gymbooking/internal/modules/query"
	"gymbooking/internal/modules/slot"
	"gymbooking/internal/pkg/jwt"
	"gymbooking/internal/pkg/response"
	"gymbooking/internal/realtime"
	"gymbooking/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Deps struct {
	DB          *gorm.DB
	Tokens      *jwt.Service
	Location    *time.Location
	Log         *zap.Logger
	CORSOrigins []string

	// Sink receives post-commit events in addition to Hub. Nil means none.
	Sink events.Sink
	// Hub serves the admin websocket feed. Nil disables the route.
	Hub *realtime.Hub
}

func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Location == nil {
		d.Location = time.UTC
	}

	sinks := events.Multi{}
	if d.Sink != nil {
		sinks = append(sinks, d.Sink)
	}
	if d.Hub != nil {
		sinks = append(sinks, d.Hub)
	}

	storeRepo := repository.NewStoreRepository(d.DB)
	staffRepo := repository.NewStaffRepository(d.DB)
	serviceRepo := repository.NewServiceRepository(d.DB)
	profileRepo := repository.NewProfileRepository(d.DB)
	slotRepo := repository.NewSlotRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	queryRepo := repository.NewQueryRepository(d.DB)

	slotHandler := slot.NewHandler(slot.NewService(slotRepo, staffRepo, serviceRepo, sinks, d.Log.Named("slot")))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, slotRepo, sinks, d.Log.Named("booking")))
	queryHandler := query.NewHandler(query.NewService(queryRepo, d.Location))
	catalogHandler := catalog.NewHandler(catalog.NewService(storeRepo, staffRepo, serviceRepo, profileRepo, d.Log.Named("catalog")))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.ErrorLogger(d.Log),
		middleware.CORS(d.CORSOrigins),
	)

	r.GET("/healthz", healthz(d.DB))

	v1 := r.Group("/api/v1")

	if d.Hub != nil {
		realtime.NewHandler(d.Hub, d.Tokens, d.CORSOrigins).RegisterRoutes(v1)
	}

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(d.Tokens))
	{
		catalogHandler.RegisterRoutes(protected)
		queryHandler.RegisterRoutes(protected)
		bookingHandler.RegisterRoutes(protected)

		adminGroup := protected.Group("/admin")
		adminGroup.Use(middleware.AdminOnly())
		{
			slotHandler.RegisterAdminRoutes(adminGroup)
			bookingHandler.RegisterAdminRoutes(adminGroup)
			queryHandler.RegisterAdminRoutes(adminGroup)
			catalogHandler.RegisterAdminRoutes(adminGroup)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	return r
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
