package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/platefull/recommendation-service/internal/cache"
	"github.com/platefull/recommendation-service/internal/config"
	"github.com/platefull/recommendation-service/internal/engine"
	"github.com/platefull/recommendation-service/internal/handler"
	"github.com/platefull/recommendation-service/internal/repository"
	"github.com/platefull/recommendation-service/internal/router"
	"github.com/platefull/recommendation-service/internal/service"
	"github.com/platefull/recommendation-service/seeds"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Named("server")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to parse database config", zap.Error(err))
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool, log); err != nil {
		log.Fatal("database not ready", zap.Error(err))
	}
	log.Info("connected to PostgreSQL")

	// ------------ Run Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := runMigration(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
			log.Fatal("failed to migrate down", zap.Error(err))
		}
		log.Info("migrations dropped")
		return
	}

	if err := runMigration(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
		log.Fatal("failed to migrate up", zap.Error(err))
	}
	log.Info("migrations applied")

	// ------------ Seed Data ---------------
	if err := checkSeed(ctx, pool, logger.Named("seed")); err != nil {
		log.Fatal("failed to seed", zap.Error(err))
	}

	// ------------ Redis ---------------
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatal("failed to parse redis url", zap.Error(err))
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	bundleCache := cache.NewCache(redisClient, cfg.CacheTTL)
	if err := bundleCache.Ping(ctx); err != nil {
		log.Fatal("redis not ready", zap.Error(err))
	}
	log.Info("connected to Redis")

	// ---------------- Wiring --------------------
	repo := repository.NewRepository(pool)
	svc := service.NewService(
		repo,
		bundleCache,
		engine.New(),
		engine.NewRandomWeather(cfg.WeatherSeed),
		time.Now,
		logger.Named("service"),
		cfg.BatchConcurrency,
	)
	h := handler.NewHandler(svc, logger.Named("handler"))

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router.Setup(h),
	}

	// ---------------- Server --------------------
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown on interrupt
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc
	log.Info("received shutdown signal, draining connections")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
	log.Info("server stopped")
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info("waiting for database", zap.Int("attempt", i+1))
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func runMigration(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM restaurants").Scan(&count); err != nil {
		return fmt.Errorf("check restaurant count: %w", err)
	}
	if count > 0 {
		log.Info("database already seeded, skipping", zap.Int("restaurants", count))
		return nil
	}
	return seeds.Setup(ctx, pool, log)
}
