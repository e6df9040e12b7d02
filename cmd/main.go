package main

import (
	"context"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"marketplace-analytics/internal/analytics"
	"marketplace-analytics/internal/config"
	"marketplace-analytics/internal/controller"
	"marketplace-analytics/internal/db"
	httpserver "marketplace-analytics/internal/http"
	"marketplace-analytics/internal/logger"
	"marketplace-analytics/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := db.Open(ctx, cfg, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("open data source")
	}
	defer func() {
		if err := closeSource(); err != nil {
			appLog.WithError(err).Warn("close data source")
		}
	}()

	forecaster, err := analytics.NewForecaster(cfg.ForecastModel, rand.NewSource(time.Now().UnixNano()))
	if err != nil {
		appLog.WithError(err).Fatal("init forecaster")
	}

	opts := service.DefaultOptions()
	opts.LowStockThreshold = cfg.LowStockThreshold
	opts.ChurnWindow = time.Duration(cfg.ChurnWindowDays) * 24 * time.Hour
	opts.FetchTimeout = cfg.FetchTimeout

	reportService := service.NewReportService(source, forecaster, appLog, opts)
	reportController := controller.NewReportController(reportService, appLog)

	server := httpserver.NewServer(cfg, appLog, reportController)

	errCh := make(chan error, 1)
	go func() {
		appLog.WithFields(logrus.Fields{
			"addr":        cfg.HTTPPort,
			"data_source": cfg.DataSource,
			"forecast":    cfg.ForecastModel,
			"mode":        cfg.AppMode,
		}).Info("starting server")
		errCh <- server.Listen(cfg.HTTPPort)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			appLog.WithError(err).Error("server stopped")
		}
	case <-ctx.Done():
		appLog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("shutdown")
		}
	}
}
