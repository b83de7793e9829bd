package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/address-search/internal/config"
	"github.com/address-search/internal/pkg/logger"
	redisRepo "github.com/address-search/internal/repository/redis"
	"github.com/address-search/internal/worker"
	"github.com/address-search/internal/worker/selection"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Стрим выбора существует только при включенном Redis
	if !cfg.Redis.Enabled {
		fmt.Println("Redis is disabled in configuration. Set REDIS_ENABLED=true to consume selection events.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Output)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Location Selection Worker")
	log.Info("Configuration loaded",
		zap.String("stream", cfg.Redis.SelectionStream),
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("batch_size", cfg.Worker.BatchSize))

	// 3. Connect to Redis
	redisClient, err := redisRepo.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 4. Workers
	selectionWorker := selection.NewSelectionWorker(
		streamRepo,
		cfg.Redis.SelectionStream,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		nil,
		log,
	)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(selectionWorker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 5. Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
