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

	"stunden/internal/amqp"
	"stunden/internal/backend"
	"stunden/internal/config"
	apphttp "stunden/internal/http"
	"stunden/internal/log"
	"stunden/internal/services"
	"stunden/internal/store"
)

func main() {
	// Optional .env file for local development.
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	blobs, err := backend.Open(cfg, logger)
	if err != nil {
		logger.Error("failed to open data backend",
			log.FieldError, err,
			log.FieldBackend, cfg.DataBackend,
		)
		os.Exit(1)
	}
	defer blobs.Close()

	var events services.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("failed to connect to AMQP broker", log.FieldError, err)
			os.Exit(1)
		}
		events = client
		logger.Info("change events enabled", log.FieldOperation, log.OpStartup)
	}

	svc := services.NewTrackerService(store.New(blobs), events, cfg.SummaryCacheSize, cfg.SummaryCacheTTL, logger)
	defer svc.Close()

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := svc.Load(loadCtx); err != nil {
		loadCancel()
		logger.Error("failed to load stored data", log.FieldError, err)
		os.Exit(1)
	}
	loadCancel()

	srv := apphttp.NewServer(":"+cfg.Port, svc, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received",
			log.FieldOperation, log.OpShutdown,
			"signal", sig.String(),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("starting stunden server",
		log.FieldOperation, log.OpStartup,
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully", log.FieldOperation, log.OpShutdown)
}
