package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/tatianab/edge-trail/internal/config"
	"github.com/tatianab/edge-trail/internal/content"
	"github.com/tatianab/edge-trail/internal/engine"
	"github.com/tatianab/edge-trail/internal/logger"
	"github.com/tatianab/edge-trail/internal/metrics"
	"github.com/tatianab/edge-trail/internal/server"
	"github.com/tatianab/edge-trail/internal/telemetry"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, OutputPath: cfg.LogFile})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx, "server")
		if err != nil {
			log.Fatal("Failed to set up telemetry", zap.Error(err))
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				log.Warn("Telemetry shutdown failed", zap.Error(err))
			}
		}()
	}

	tbl, err := content.Load()
	if err != nil {
		log.Fatal("Failed to load trail", zap.Error(err))
	}
	eng := engine.NewEngine(tbl,
		engine.WithRules(cfg.Rules()),
		engine.WithSeed(cfg.Seed),
		engine.WithLogger(log),
		engine.WithMetrics(metrics.New(prometheus.DefaultRegisterer)),
	)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(eng, log, server.Options{
		SessionTTL:  cfg.SessionTTL,
		CORSOrigins: cfg.CORSOrigins,
		Prometheus:  true,
	})
	srv.StartEviction(ctx)

	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info("Trail server starting", zap.String("port", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
