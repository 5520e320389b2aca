package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anurakx/villadesk/api"
	"github.com/anurakx/villadesk/config"
	"github.com/anurakx/villadesk/internal/auth"
	"github.com/anurakx/villadesk/internal/domain"
	"github.com/anurakx/villadesk/internal/observability/metrics"
	"github.com/anurakx/villadesk/internal/repository"
	"github.com/anurakx/villadesk/internal/service/bookings"
	"github.com/anurakx/villadesk/internal/service/dashboard"
)

type Services struct {
	Dashboard dashboard.DashboardUseCase
	Bookings  bookings.BookingUseCase
	Auth      *auth.Service
	Audit     repository.AuditRepository
	Inventory []domain.Room
	Logger    *zap.Logger
}

// Run starts the HTTP server and blocks until the context is canceled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, deps Services) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(deps),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	deps.Logger.Info("http server started", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(deps Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")

	api.NewAuthHandler(deps.Auth).Register(v1.Group("/auth"))

	// Stats downgrade for anonymous viewers; booking mutations carry
	// the actor name when a token is present.
	optional := v1.Group("", auth.Optional(deps.Auth))
	api.NewDashboardHandler(deps.Dashboard).Register(optional.Group("/dashboard"))
	api.NewBookingHandler(deps.Bookings).Register(optional.Group("/bookings"))
	api.NewRoomHandler(deps.Inventory, deps.Bookings).Register(optional.Group("/rooms"))

	required := v1.Group("", auth.Required(deps.Auth))
	api.NewReportHandler(deps.Dashboard).Register(required.Group("/reports"))
	if deps.Audit != nil {
		api.NewAuditHandler(deps.Audit).Register(required.Group("/audit"))
	}

	return router
}

// InventoryFromConfig projects the configured room list into domain
// rooms for the services and handlers.
func InventoryFromConfig(cfg config.HotelConfig) []domain.Room {
	rooms := make([]domain.Room, 0, len(cfg.Rooms))
	for _, r := range cfg.Rooms {
		rooms = append(rooms, domain.Room{
			ID:            r.ID,
			Number:        r.Number,
			Type:          domain.RoomType(r.Type),
			PricePerNight: r.PricePerNight,
			Status:        domain.RoomStatus(r.Status),
			Amenities:     r.Amenities,
		})
	}
	return rooms
}
