package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/itchan-dev/hoots/backend/internal/router"
	"github.com/itchan-dev/hoots/backend/internal/setup"
	"github.com/itchan-dev/hoots/shared/config"
	"github.com/itchan-dev/hoots/shared/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Parse()
	cfg := config.MustLoad(configFolder)

	logger.Initialize(logger.Options{
		Level:      cfg.Public.Log.Level,
		JSON:       cfg.Public.Log.JSON,
		File:       cfg.Public.Log.File,
		MaxSizeMB:  cfg.Public.Log.MaxSizeMB,
		MaxBackups: cfg.Public.Log.MaxBackups,
		MaxAgeDays: cfg.Public.Log.MaxAgeDays,
	})

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	stop := make(chan struct{})
	if deps.RateLimiter != nil {
		deps.RateLimiter.StartCleanup(10*time.Minute, stop)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Public.HttpPort),
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("server started", "addr", server.Addr, "storage", cfg.Public.StorageDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Error("server forced to shutdown", "error", err)
		return
	}
	logger.Log.Info("server stopped gracefully")
}
