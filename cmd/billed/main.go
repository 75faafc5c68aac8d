package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"billed/internal/config"
	"billed/internal/controller"
	"billed/internal/handler"
	"billed/internal/model"
	"billed/internal/service"
	"billed/internal/session"
	"billed/internal/worker"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.New(os.Args[1:])
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(reg)

	// Services
	api := service.NewAPIClient(cfg.APIURL, metrics)
	sessions := session.NewStore(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookie)
	pages := controller.NewRegistry(metrics.OpenPages)

	// Worker
	sweeper := worker.NewPageSweeper(pages, time.Minute, cfg.PageTTL, logger)

	r := handler.Router(handler.Deps{
		Auth: api,
		StoreFor: func(u model.User) controller.Store {
			return api.Bills(u.Token)
		},
		Sessions:   sessions,
		Pages:      pages,
		Rejections: metrics.FileRejections,
		Metrics:    promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Logger:     logger,
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go sweeper.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("starting server", "addr", cfg.RunAddress, "api", cfg.APIURL)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	logger.Info("shutting down...")

	cancel() // stop sweeper
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}
