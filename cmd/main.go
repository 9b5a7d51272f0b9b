package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-service/internal/server"
	"catalog-service/pkg/config"
	"catalog-service/pkg/database"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	resetDB := flag.Bool("reset-db", false, "drop and recreate the vendor and product tables, then exit")
	flag.Parse()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting catalog-service", appConfig.LogConfig()...)

	// Initialize database
	db, err := database.Open(&appConfig.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close(db)
	log.Info("Database connection established", zap.String("driver", appConfig.DB.Driver))

	if *resetDB {
		if err := database.Reset(db); err != nil {
			log.Fatal("Failed to reset database", zap.Error(err))
		}
		log.Info("Database tables recreated")
		return
	}

	// Initialize Prometheus metrics
	metrics := prometheus.NewMetrics(promclient.DefaultRegisterer, appConfig.Metrics.Prefix)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	e := server.New(appConfig, db, metrics, log, server.Options{})

	srv := &http.Server{
		Addr:         ":" + appConfig.Server.Port,
		ReadTimeout:  appConfig.Server.ReadTimeout,
		WriteTimeout: appConfig.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info("Starting server", zap.String("port", appConfig.Server.Port))
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}
