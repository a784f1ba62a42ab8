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
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/pokernight/stats-api/internal/config"
	"github.com/pokernight/stats-api/internal/handlers"
	"github.com/pokernight/stats-api/internal/logic"
	"github.com/pokernight/stats-api/internal/store"
	"github.com/pokernight/stats-api/internal/worker"
)

func main() {
	// Optional .env for local development; real deployments set the vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("failed to connect to postgres", "error", err)
	}
	defer pg.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("invalid redis url", "error", err)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	history := store.NewHistory(pg)
	cache := store.NewCache(rdb, cfg.StatsCacheTTL, logger)

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount: cfg.WorkerCount,
		QueueSize:   cfg.QueueSize,
		Store:       history,
		Cache:       cache,
		Logger:      logger,
	})
	pool.Start(ctx)
	defer pool.Stop()

	statsService := logic.NewStatsService(history, cache)
	milestoneService := logic.NewMilestoneService(statsService)
	forecastService := logic.NewForecastService(statsService, 0)

	handler := handlers.New(handlers.Config{
		WorkerPool: pool,
		Postgres:   pg,
		Redis:      rdb,
		Logger:     logger,
		Stats:      statsService,
		Milestones: milestoneService,
		Forecast:   forecastService,
	})

	// Warm every player's snapshot before the usual game-night hours.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.CacheWarmSchedule, func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := statsService.GetGroupStats(warmCtx, time.Now()); err != nil {
			sugar.Warnw("cache warm-up failed", "error", err)
		}
	}); err != nil {
		sugar.Fatalw("invalid cache warm schedule", "schedule", cfg.CacheWarmSchedule, "error", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler.Routes(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		sugar.Infow("server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("server shutdown failed", "error", err)
	}
}
