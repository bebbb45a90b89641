package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomly/internal/app/booking"
	"roomly/internal/domain/room"
	"roomly/internal/infra/broker/kafka"
	"roomly/internal/infra/config"
	mongodb "roomly/internal/infra/db/mongo"
	ginserver "roomly/internal/infra/http/gin"
	"roomly/internal/infra/obs"
	"roomly/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		cfg.Env = "dev"
		cfg.HTTPAddr = ":8080"
	}
	logger := obs.NewLogger(cfg.Env)

	repo, ready, err := buildRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	publisher := buildPublisher(cfg, logger)
	service := booking.NewService(repo, publisher, logger)

	handlers := ginserver.Handlers{
		Availability: ginserver.AvailabilityHandler{Repo: repo},
		Room:         ginserver.RoomHandler{Service: service, Repo: repo},
	}
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageDriver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (room.Repository, func() error, error) {
	if cfg.StorageDriver == "mongo" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		ready := func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		return mongodb.NewCalendarRepository(client.DB), ready, nil
	}

	repo := memory.NewCalendarRepository()
	if cfg.FixturesPath != "" {
		count, err := repo.SeedFromFile(ctx, cfg.FixturesPath)
		if err != nil {
			logger.Warn("room fixtures load failed", "error", err, "path", cfg.FixturesPath)
		} else {
			logger.Info("room fixtures loaded", "count", count, "path", cfg.FixturesPath)
		}
	}
	return repo, func() error { return nil }, nil
}

func buildPublisher(cfg config.Config, logger *slog.Logger) booking.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka brokers not configured, calendar events will not be published")
		return booking.NopPublisher{}
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		logger.Warn("kafka producer init failed, calendar events will not be published", "error", err)
		return booking.NopPublisher{}
	}
	return kafka.EventPublisher{Producer: producer, Topic: cfg.KafkaTopic}
}
