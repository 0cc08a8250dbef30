package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasksearch/configs"
	"tasksearch/delivery/rest"
	"tasksearch/domain/repository"
	"tasksearch/infrastructure/circuitbreaker"
	"tasksearch/infrastructure/logger"
	"tasksearch/replica"
	"tasksearch/search"
	"tasksearch/server"
	"tasksearch/syncer"
	"tasksearch/upstream"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	if err := logger.InitFromEnv(); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.Named("main")

	cfg, err := configs.LoadConfig("")
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	replicaRepo, cleanup, err := buildReplica(cfg)
	if err != nil {
		log.Fatal("failed to initialize replica store", zap.Error(err))
	}
	defer cleanup()

	taskSource := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, logger.Named("upstream"))

	cb := circuitbreaker.NewCircuitBreaker(
		cfg.Breaker.MaxFailures,
		cfg.Breaker.ResetTimeout,
		logger.Named("breaker"),
	)

	syncService := syncer.NewService(taskSource, replicaRepo, logger.Named("syncer"))
	searchService := search.NewService(replicaRepo, syncService, cb, logger.Named("search"))

	h := rest.NewHandler(searchService, syncService, logger.Named("rest"))
	srv := server.NewServer(cfg.Server, h, logger.Named("http"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	log.Info("server started",
		zap.String("address", cfg.Server.Address()),
		zap.String("replica_backend", cfg.Replica.Backend),
		zap.String("upstream", cfg.Upstream.BaseURL),
	)

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}

// buildReplica constructs the configured replica backend and its cleanup
func buildReplica(cfg *configs.Config) (repository.ReplicaRepository, func(), error) {
	switch cfg.Replica.Backend {
	case "postgres":
		pool, err := pgxpool.New(context.Background(), cfg.Replica.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return replica.NewPostgresRepository(pool), pool.Close, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Replica.Redis.Addr,
			Password: cfg.Replica.Redis.Password,
			DB:       cfg.Replica.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return replica.NewRedisRepository(rdb, cfg.Replica.TTL), func() { rdb.Close() }, nil

	default: // memory
		return replica.NewMemoryRepository(), func() {}, nil
	}
}
