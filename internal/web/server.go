// Package web serves the health and availability HTTP APIs.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drewfead/calavail/internal/config"
)

const shutdownTimeout = 5 * time.Second

// NewHealthHandler builds the health service: GET / and GET /health.
func NewHealthHandler(cfg *config.Config) http.Handler {
	engine := newEngine()
	engine.GET("/", handleRoot)
	engine.GET("/health", handleHealth)
	return withCORS(cfg, engine)
}

// NewAvailabilityHandler builds the availability service: GET /check and GET /health.
func NewAvailabilityHandler(cfg *config.Config, checker Checker) http.Handler {
	h := &availabilityHandler{checker: checker}

	engine := newEngine()
	engine.GET("/check", h.check)
	engine.GET("/health", handleHealth)
	return withCORS(cfg, engine)
}

func newEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(requestID(), accessLog(), recovery())
	return engine
}

// ListenAndServe serves handler on addr until ctx is cancelled, then shuts down gracefully.
func ListenAndServe(ctx context.Context, name, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting HTTP server", "service", name, "listen", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutting down HTTP server", "service", name)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
