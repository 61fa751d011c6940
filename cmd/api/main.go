package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"shopfront/internal/config"
	"shopfront/internal/database"
	"shopfront/internal/logger"
	"shopfront/internal/server"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	done <- true
}

func openBackends(ctx context.Context, cfg *config.Config, log *zap.Logger) (server.Deps, error) {
	var deps server.Deps

	if cfg.Database.URL != "" {
		db, err := database.Open(ctx, cfg.Database.URL)
		if err != nil {
			return deps, err
		}
		if err := database.RunMigrations(db, log); err != nil {
			db.Close()
			return deps, err
		}
		version, err := database.Version(db)
		if err != nil {
			db.Close()
			return deps, err
		}
		log.Info("Using PostgreSQL credential store",
			zap.Int64("schema_version", version),
			zap.Any("pool", database.Stats(db)),
		)
		deps.DB = db
	} else {
		log.Info("Using in-memory credential store")
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			rdb.Close()
			if deps.DB != nil {
				deps.DB.Close()
			}
			return server.Deps{}, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("Using Redis cart store", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TTL()))
		deps.Redis = rdb
	} else {
		log.Info("Using in-memory cart store")
	}

	return deps, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting ecommerce API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
	)

	if cfg.JWT.DevSecret {
		log.Warn("JWT_SECRET is not set, signing tokens with the development secret")
	}
	if cfg.JWT.TokenTTL() == 0 {
		log.Warn("JWT_ACCESS_EXPIRY disables expiry, session tokens never expire")
	}

	deps, err := openBackends(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize backends", zap.Error(err))
	}

	srv := server.NewServer(cfg, log, deps)

	done := make(chan bool, 1)
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
