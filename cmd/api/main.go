package main

// @title Address Search API
// @version 1.0.0
// @description Поиск адресов с подсказками по мере ввода поверх Nominatim.
// @description
// @description Основные возможности:
// @description - Разовый сгруппированный поиск
// @description - Сессии поиска с дебаунсом и отбрасыванием устаревших ответов
// @description - Публикация выбора в Redis Stream stream:location:selected

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/address-search/docs"
	"github.com/address-search/internal/config"
	httpDelivery "github.com/address-search/internal/delivery/http"
	"github.com/address-search/internal/delivery/http/handler"
	"github.com/address-search/internal/domain/repository"
	"github.com/address-search/internal/infrastructure/nominatim"
	"github.com/address-search/internal/pkg/logger"
	redisRepo "github.com/address-search/internal/repository/redis"
	"github.com/address-search/internal/usecase"
	"github.com/address-search/internal/usecase/search"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Output)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Address Search")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("geocoder", cfg.Geocoder.BaseURL),
		zap.Duration("debounce", cfg.Search.DebounceDelay),
	)

	// 3. Redis (опционально): события выбора уходят в стрим
	var streamRepo repository.StreamRepository
	healthChecks := map[string]handler.HealthCheck{}

	if cfg.Redis.Enabled {
		redisClient, err := redisRepo.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), log)
		healthChecks["redis"] = redisClient.Health
	} else {
		log.Info("Redis disabled, selection events are only logged")
	}

	// 4. Geocoder
	geocoder := nominatim.NewNominatimClient(&cfg.Geocoder, log)

	// 5. Use cases
	searchUC := usecase.NewSearchUseCase(geocoder, cfg.Search.MinQueryLength, log)
	sessionUC := usecase.NewSessionUseCase(
		geocoder,
		search.RegistryConfig{
			Controller: search.ControllerConfig{
				DebounceDelay:  cfg.Search.DebounceDelay,
				MinQueryLength: cfg.Search.MinQueryLength,
			},
			IdleTimeout: cfg.Session.IdleTimeout,
		},
		streamRepo,
		cfg.Redis.SelectionStream,
		log,
	)

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	sessionUC.StartSweeper(sweepCtx, cfg.Session.SweepInterval)

	log.Info("Use cases initialized")

	// 6. HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewHealthHandler(healthChecks, log),
		handler.NewSearchHandler(searchUC, log),
		handler.NewSessionHandler(sessionUC, log),
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	stopSweeper()
	sessionUC.Shutdown()

	log.Info("Server stopped successfully")
}
