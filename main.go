package main

import (
	"context"
	"errors"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrops-br/storefront-api/internal/app/service"
	"github.com/mrops-br/storefront-api/internal/infrastructure/catalog"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/storefront-api/internal/infrastructure/notify"
	"github.com/mrops-br/storefront-api/internal/infrastructure/repository/memory"
	"github.com/mrops-br/storefront-api/internal/infrastructure/telemetry"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize OpenTelemetry
	newTelemetry := telemetry.NewNoOpTelemetry
	if cfg.OTLP.Enabled {
		newTelemetry = telemetry.NewTelemetry
	}
	telem, err := newTelemetry(&cfg.OTLP, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to initialize telemetry: %v", err)
	}

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ensure telemetry is shutdown on exit
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	// Get tracer, meter, and logger instances
	tracer := telem.TracerProvider.Tracer("storefront-api")
	meter := telem.MeterProvider.Meter("storefront-api")
	logger := telem.Logger

	logger.Info("Starting Storefront API")

	// Catalog client and session store (dependency injection)
	catalogClient := catalog.NewClient(&cfg.Catalog, tracer, logger)
	repo := memory.NewSessionRepository(tracer, logger)

	// Initialize services
	catalogService := service.NewCatalogService(catalogClient, tracer, meter, logger)
	sessionService := service.NewSessionService(repo, catalogClient, cfg.Cart.ShippingFee,
		notify.Wrapper(logger, meter), tracer, meter, logger)
	cartService := service.NewCartService(repo, tracer, meter, logger)
	viewService := service.NewProductViewService(repo, tracer, meter, logger)

	// Initialize HTTP server
	server := http.NewServer(&cfg.Server, http.Handlers{
		Products: handler.NewProductHandler(catalogService, logger),
		Sessions: handler.NewSessionHandler(sessionService, logger),
		Cart:     handler.NewCartHandler(cartService, logger),
		View:     handler.NewViewHandler(viewService, logger),
	}, logger, telem)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Error("Server error", "error", err.Error())
			cancel()
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err.Error())
	}

	logger.Info("Server stopped")
}
