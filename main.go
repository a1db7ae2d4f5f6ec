package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hairrap/config"
	"hairrap/database/storage"
	"hairrap/handlers"
	"hairrap/routes"
	"hairrap/services/backend"
	"hairrap/services/bookings"
	"hairrap/services/catalog"
	"hairrap/services/favorites"
	ai "hairrap/services/intelligence"
	"hairrap/services/transport"
	"hairrap/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newStorage(logger *zap.Logger) storage.Storage {
	switch config.AppConfig.StorageBackend {
	case config.StorageRedis:
		client, err := utils.GetStorageClient()
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize redis storage: %v", err)
		}
		return storage.NewRedisStorage(client)
	case config.StorageMemory:
		return storage.NewMemoryStorage()
	default:
		st, err := storage.NewFileStorage(config.AppConfig.StorageDir)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize file storage: %v", err)
		}
		return st
	}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	ctx := context.Background()

	// Mock booking API.
	mockAPI := backend.New(logger.Named("backend"), backend.WithLatency(config.AppConfig.MockLatency))

	var tr transport.Transport
	switch config.AppConfig.Transport {
	case config.TransportHTTP:
		tr = transport.NewHTTPClient(config.AppConfig.APIBaseURL, nil)
	default:
		tr = transport.NewInProcess(mockAPI)
	}

	// Client-side stores.
	local := newStorage(logger)
	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, config.AppConfig.StorageBackend, utils.StorageClient, time.Minute)
	servicesStore := catalog.NewStore(tr, logger.Named("catalog"))
	bookingsStore := bookings.NewStore(tr, logger.Named("bookings"))
	favoritesStore, err := favorites.NewStore(ctx, local, logger.Named("favorites"))
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load favorites: %v", err)
	}

	// Assistant. Without an API key every reply is the fallback text.
	var responder ai.Responder
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, config.AppConfig.GeminiAPIKey, config.AppConfig.Models(), logger.Named("gemini"))
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize gemini: %v", err)
		}
		defer gemini.Close()
		responder = gemini
	} else {
		logger.Warn("main: GEMINI_API_KEY not set, assistant will use fallback replies")
	}
	assistant := ai.NewAssistant(
		responder,
		ai.NewSessionStore(local, logger.Named("sessions")),
		config.AppConfig.HistoryWindow,
		utils.NewSystemClock(),
		logger.Named("assistant"),
	)

	// Create the Gin router.
	router := gin.New()
	routes.ApplyMiddleware(router, logger, config.AppConfig.MaxRequestsPerMin)

	handlerBundle := &handlers.HandlerBundle{
		Backend:   handlers.NewBackendHandler(mockAPI, logger),
		State:     handlers.NewStateHandler(servicesStore, bookingsStore, favoritesStore, logger),
		Assistant: handlers.NewAssistantHandler(assistant, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.AppConfig.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s (transport=%s, storage=%s)...",
		srv.Addr, config.AppConfig.Transport, config.AppConfig.StorageBackend)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if utils.StorageClient != nil {
		_ = utils.StorageClient.Close()
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
