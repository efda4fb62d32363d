package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rfp-similarity/internal/config"
	"rfp-similarity/internal/handler"
	"rfp-similarity/pkg/logger"

	"github.com/google/gops/agent"
	"github.com/joho/godotenv"
	_ "github.com/viant/afsc/gs"
	_ "github.com/viant/afsc/s3"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.NewConfig()
	appLogger := logger.NewLogger(cfg.GetLogLevel(), cfg.GetLogFormat())

	if cfg.IsGopsEnabled() {
		if err := agent.Listen(agent.Options{ShutdownCleanup: true}); err != nil {
			appLogger.Warn("gops agent not started", "error", err)
		}
	}

	// Wiring
	container, err := config.NewContainer(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize service", err,
			"reference_path", cfg.GetReferencePath(),
			"pdf_engine", cfg.GetPDFEngine(),
		)
		os.Exit(1)
	}

	// Handlers
	analysisHandler := handler.NewAnalysisHandler(
		container.AnalysisService,
		container.StatusMode,
		container.Config.GetMaxUploadSize(),
		container.Logger,
	)

	requestMiddleware := handler.NewRequestMiddleware(container.Logger)

	// Router
	router := handler.NewRouter(
		analysisHandler,
		requestMiddleware.RequestID,
		requestMiddleware.Logging,
		requestMiddleware.Recover,
	)

	// start server
	server := &http.Server{
		Addr:              ":" + container.Config.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening",
			"address", server.Addr,
			"pdf_engine", container.Config.GetPDFEngine(),
			"error_status_mode", string(container.StatusMode),
			"reference", container.Reference.Source,
			"reference_pages", container.Reference.PageCount,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()
	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), container.Config.GetShutdownTimeout())
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		container.Logger.Error("Graceful shutdown failed", err)
		_ = server.Close()
	}

	container.Logger.Info("Server exited")
}
