package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/lunch-spot/internal/config"
	"github.com/ukydev/lunch-spot/internal/events"
	"github.com/ukydev/lunch-spot/internal/handlers"
	"github.com/ukydev/lunch-spot/internal/middleware"
	"github.com/ukydev/lunch-spot/internal/places"
	"github.com/ukydev/lunch-spot/internal/relay"
	"github.com/ukydev/lunch-spot/web"
)

const shutdownTimeout = 10 * time.Second

// newMux routes the relay endpoint, the health check and the static UI.
func newMux(finder handlers.SpotFinder, static fs.FS) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/get-lunch-spot", handlers.NewLunchSpotHandler(finder))
	mux.HandleFunc("GET /health", handlers.HandleHealth)
	mux.Handle("/", http.FileServerFS(static))
	return mux
}

func newServer(addr string, mux http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           middleware.Chain(mux, middleware.RequestID, middleware.Logging, middleware.Recover),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if cfg.GoogleMapsAPIKey == "" {
		log.Warn("GOOGLE_MAPS_API_KEY is not set, upstream calls will be rejected")
	}

	publisher, err := events.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create events publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.WithError(err).Warn("Failed to close events publisher")
		}
	}()

	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("failed to load static assets: %w", err)
	}

	placesClient := places.NewClient(cfg.GoogleMapsAPIKey, cfg.PlacesBaseURL, cfg.PlacesTimeout)
	service := relay.NewService(placesClient, nil, publisher)
	srv := newServer(cfg.Addr(), newMux(service, static))

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Received termination signal, starting graceful shutdown...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	config.LoadEnv()
	cfg := config.Load()
	cfg.ConfigureLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, cfg)
	stop()
	if err != nil {
		log.WithError(err).Error("Server stopped")
		os.Exit(1)
	}
}
