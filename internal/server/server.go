package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"shopfront/internal/config"
	"shopfront/internal/health"
	"shopfront/internal/metrics"
	custommiddleware "shopfront/internal/middleware"
	"shopfront/internal/repository"
	"shopfront/internal/service"
	"shopfront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps holds the optional external backends. A nil DB keeps users in
// memory; a nil Redis client keeps carts in memory.
type Deps struct {
	DB    *sql.DB
	Redis *redis.Client
}

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	deps   Deps
}

func NewServer(cfg *config.Config, logger *zap.Logger, deps Deps) *Server {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	router := chi.NewRouter()

	router.Use(custommiddleware.CORSMiddleware(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.MetricsMiddleware(m))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Stores
	userRepo, cartRepo, pingers := newStores(cfg, deps)
	productRepo := repository.NewCatalogRepository(repository.SeedProducts())

	// Services
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenTTL())
	userService := service.NewUserService(userRepo, tokens, cfg.Auth.BcryptCost, m)
	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo, m)

	// Handlers
	userHandler := transport.NewUserHandler(userService, logger)
	productHandler := transport.NewProductHandler(catalogService, logger)
	cartHandler := transport.NewCartHandler(cartService, logger)

	authMiddleware := custommiddleware.AuthMiddleware(tokens, logger)

	checker := health.NewChecker(pingers, logger, registry)
	router.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, checker.Liveness(r.Context()))
	})
	router.Get("/api/health/ready", func(w http.ResponseWriter, r *http.Request) {
		result := checker.Readiness(r.Context())
		status := http.StatusOK
		if result.Status != health.StatusHealthy {
			status = http.StatusServiceUnavailable
		}
		custommiddleware.RespondWithJSON(w, status, result)
	})
	router.Method(http.MethodGet, "/metrics", m.Handler())

	userHandler.RegisterRoutes(router, authMiddleware)
	productHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router, authMiddleware)

	return &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		deps:   deps,
	}
}

func newStores(cfg *config.Config, deps Deps) (repository.UserRepository, repository.CartRepository, map[string]health.Pinger) {
	pingers := map[string]health.Pinger{}

	userRepo := repository.NewMemoryUserRepository()
	if deps.DB != nil {
		userRepo = repository.NewUserRepository(deps.DB)
		pingers["postgres"] = health.PingFunc(deps.DB.PingContext)
	}

	cartRepo := repository.NewMemoryCartRepository()
	if deps.Redis != nil {
		cartRepo = repository.NewRedisCartRepository(deps.Redis, cfg.Redis.TTL())
		rdb := deps.Redis
		pingers["redis"] = health.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}

	return userRepo, cartRepo, pingers
}

// Close releases the database and Redis clients
func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.deps.DB != nil {
		if err := s.deps.DB.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}
	if s.deps.Redis != nil {
		if err := s.deps.Redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
