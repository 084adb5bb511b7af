package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"stockfolio/internal/alphavantage"
	"stockfolio/internal/config"
	"stockfolio/internal/logger"
	"stockfolio/internal/portfolio"
	"stockfolio/internal/server"
	"stockfolio/internal/store"
)

const _trackerCfgFilePath = "./configs/tracker.yaml"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("can't detect .env file")
	}

	cfg, err := config.LoadTrackerConfig(_trackerCfgFilePath)
	if err != nil {
		log.Fatalf("%s: can't load tracker cfg", err)
	}

	zapLogger, loggerSync, err := logger.NewZapLogger(logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	st, err := store.NewStore(cfg.Storage)
	if err != nil {
		zapLogger.Fatalf("%s: can't init store", err)
	}

	pricer := alphavantage.NewClient(cfg.Market, zapLogger)
	defer pricer.Close()

	manager := portfolio.NewManager(st, pricer, zapLogger)
	if _, err := manager.Holdings(ctx); err != nil {
		zapLogger.Fatalf("%s: can't load portfolio", err)
	}

	srv := server.NewHTTPServer(ctx, cfg.Server.Port, server.Router(manager, zapLogger))

	zapLogger.Infof("portfolio server listening on :%s", cfg.Server.Port)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zapLogger.Fatalf("%s: server stopped", err)
	}
}
