package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"blitz/internal/app"
	"blitz/internal/config"
	"blitz/internal/ports/httpapi"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	configPath := os.Getenv("BLITZ_CONFIG")
	if configPath == "" {
		configPath = "data/server_config.json"
	}
	if err := config.LoadServerConfig(configPath); err != nil {
		logger.Warn("could not load server config, using defaults", zap.Error(err))
	}
	cfg := config.GetServerConfig()

	registry := app.NewRegistry()
	service := app.NewService(registry, logger, nil)
	router := httpapi.NewRouter(service, cfg, logger)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("blitz server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.ShutdownGraceSeconds)*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown incomplete", zap.Error(err))
	}
}
