package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dvelez-dev/travelbook/api"
	"github.com/dvelez-dev/travelbook/config"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth     *api.AuthHandler
	Travels  *api.TravelHandler
	Bookings *api.BookingHandler
	Payments *api.PaymentHandler
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, handlers Handlers) error {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	root := router.Group("/api")
	handlers.Auth.Register(root.Group("/auth"))

	secured := root.Group("")
	secured.Use(api.AuthRequired(cfg.Auth))
	handlers.Travels.Register(secured.Group("/travels"))
	handlers.Bookings.Register(secured.Group("/bookings"))
	handlers.Payments.Register(secured.Group("/payments"))

	httpServer := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
