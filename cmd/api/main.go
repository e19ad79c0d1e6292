package main

// @title Venue Finder API
// @version 1.0.0
// @description In-memory geospatial registry of named venues with radius queries.
// @description
// @description Основные возможности:
// @description - Поиск точек в радиусе (GET / и /api/v1/venues/nearby)
// @description - Регистрация точек через HTTP и Redis stream:venue:add
// @description - Массовая загрузка случайных точек или таблицы venues

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8085
// @BasePath /
// @schemes http

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	_ "github.com/venue-finder/docs/swagger"
	"github.com/venue-finder/internal/config"
	httpDelivery "github.com/venue-finder/internal/delivery/http"
	"github.com/venue-finder/internal/delivery/http/handler"
	"github.com/venue-finder/internal/domain"
	"github.com/venue-finder/internal/domain/repository"
	"github.com/venue-finder/internal/geoindex"
	"github.com/venue-finder/internal/metrics"
	"github.com/venue-finder/internal/pkg/logger"
	"github.com/venue-finder/internal/repository/cache"
	"github.com/venue-finder/internal/repository/postgres"
	redisRepo "github.com/venue-finder/internal/repository/redis"
	"github.com/venue-finder/internal/seed"
	"github.com/venue-finder/internal/usecase"
	"github.com/venue-finder/internal/worker"
	"github.com/venue-finder/internal/worker/venue"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting Venue Finder")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Float64("gateway_radius_m", cfg.Gateway.RadiusMeters),
		zap.Int("cell_step", cfg.Index.CellStep),
	)

	// appCtx живёт до сигнала остановки; от него наследуются фоновые загрузки и воркеры
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	// 3. Metrics
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector, err = metrics.New(prometheus.DefaultRegisterer)
		if err != nil {
			log.Fatal("Failed to register metrics", zap.Error(err))
		}
	}

	// 4. Index and use cases
	index := geoindex.New(
		geoindex.WithStep(uint8(cfg.Index.CellStep)),
		geoindex.WithShards(cfg.Index.Shards),
	)
	registry := usecase.NewVenueRegistry(index, collector, log)
	loader := usecase.NewBulkLoader(registry, log)

	newRandomSource := func(count int) repository.VenueSource {
		bounds := domain.BoundingBox{
			MinLat: cfg.Seed.MinLat,
			MinLon: cfg.Seed.MinLon,
			MaxLat: cfg.Seed.MaxLat,
			MaxLon: cfg.Seed.MaxLon,
		}
		return seed.NewGenerator(bounds, count, cfg.Seed.NameLength, cfg.Seed.RandomSeed)
	}

	healthChecks := make(map[string]handler.HealthChecker)

	// 5. Initial bulk load (async, the gateway starts immediately)
	var db *postgres.DB
	if cfg.Seed.Enabled {
		var src repository.VenueSource
		switch cfg.Seed.Source {
		case config.SeedSourcePostgres:
			db, err = postgres.New(&cfg.Database, log)
			if err != nil {
				log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
			}
			healthChecks["postgres"] = db
			src = postgres.NewVenueRepository(db)
		default:
			src = newRandomSource(cfg.Seed.Count)
		}

		if err := loader.Start(appCtx, src, false); err != nil {
			log.Fatal("Failed to start bulk load", zap.Error(err))
		}
		log.Info("Bulk load started", zap.String("source", cfg.Seed.Source))
	}

	// 6. Incremental ingest from Redis streams
	var redisClient *cache.Redis
	var workerManager *worker.WorkerManager
	if cfg.Worker.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		healthChecks["redis"] = redisClient

		streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.BlockTimeout, log)

		workerManager = worker.NewWorkerManager(log)
		workerManager.Register(venue.NewIngestWorker(
			streamRepo,
			registry,
			cfg.Worker.ConsumerGroup,
			cfg.Worker.BatchSize,
			log,
		))
		if err := workerManager.Start(appCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 7. HTTP server
	server := httpDelivery.NewServer(cfg, log, collector, httpDelivery.Handlers{
		Venue:  handler.NewVenueHandler(registry, cfg.Gateway.RadiusMeters, log),
		Seed:   handler.NewSeedHandler(appCtx, loader, newRandomSource, cfg.Seed.Count, log),
		Stats:  handler.NewStatsHandler(registry, loader, log),
		Health: handler.NewHealthHandler(healthChecks, log),
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// Stop background work
	cancelApp()
	if workerManager != nil {
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}
	loader.Wait()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}
	if db != nil {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully", zap.Int("venues", registry.Len()))
}
