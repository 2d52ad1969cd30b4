package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LoganMichel/logmi-app/internal/config"
	"github.com/LoganMichel/logmi-app/internal/handler"
	"github.com/LoganMichel/logmi-app/internal/logger"
	"github.com/LoganMichel/logmi-app/internal/middleware"
	"github.com/LoganMichel/logmi-app/internal/repository/postgres"
	redisRepo "github.com/LoganMichel/logmi-app/internal/repository/redis"
	"github.com/LoganMichel/logmi-app/internal/service"
	"github.com/LoganMichel/logmi-app/pkg/geoip"
	"github.com/LoganMichel/logmi-app/pkg/qr"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Initialize(cfg.Log); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	log := logger.Get()
	log.Info("Starting logmi service",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	dbPool, err := setupDatabase(cfg)
	if err != nil {
		log.Error("Failed to setup database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient, err := setupRedis(cfg)
	if err != nil {
		log.Error("Failed to setup redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	linkRepo := postgres.NewLinkRepository(dbPool)
	clickRepo := postgres.NewClickRepository(dbPool)
	linkCache := redisRepo.NewLinkCache(redisClient)
	geoResolver := geoip.NewResolver(cfg.App.GeoIPEndpoint, cfg.App.GeoIPTimeout)

	linkService := service.NewLinkService(linkRepo, linkCache, cfg.App)
	resolverService := service.NewResolverService(
		linkRepo, clickRepo, linkCache, geoResolver,
		cfg.App.ReservedPaths, cfg.App.CacheTTL,
	)
	statsService := service.NewStatsService(linkRepo, clickRepo, cfg.App.Timezone())

	qrEncoder := qr.NewEncoder(cfg.App.QRSize)
	redirectHandler := handler.NewRedirectHandler(resolverService)
	tinyURLHandler := handler.NewTinyURLHandler(linkService, qrEncoder, cfg.Server.BaseURL)
	linktreeHandler := handler.NewLinktreeHandler(linkService, qrEncoder, cfg.Server.BaseURL)
	statsHandler := handler.NewStatsHandler(statsService)
	healthHandler := handler.NewHealthHandler(dbPool, redisClient)

	router := setupRouter(redirectHandler, tinyURLHandler, linktreeHandler, statsHandler, healthHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	gracefulShutdown(srv, cfg.Server.ShutdownTimeout, dbPool, redisClient, log)
}

func setupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	dbConfig := cfg.Database
	poolConfig, err := pgxpool.ParseConfig(dbConfig.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(dbConfig.MaxConns)
	poolConfig.MinConns = int32(dbConfig.MinConns)
	poolConfig.MaxConnLifetime = dbConfig.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = dbConfig.MaxConnIdleTime

	dbPool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}

	return dbPool, nil
}

func setupRedis(cfg *config.Config) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return redisClient, nil
}

func setupRouter(
	redirectHandler *handler.RedirectHandler,
	tinyURLHandler *handler.TinyURLHandler,
	linktreeHandler *handler.LinktreeHandler,
	statsHandler *handler.StatsHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger())

	// health check
	router.GET("/healthz", healthHandler.Healthz)
	router.GET("/readyz", healthHandler.Readyz)

	api := router.Group("/api")
	{
		tinyurl := api.Group("/tinyurl")
		{
			tinyurl.POST("/urls", tinyURLHandler.Shorten)
			tinyurl.GET("/urls", tinyURLHandler.List)
			tinyurl.GET("/urls/:shortCode", tinyURLHandler.Get)
			tinyurl.DELETE("/urls/:shortCode", tinyURLHandler.Delete)
			tinyurl.GET("/urls/:shortCode/stats", statsHandler.ShortCodeStats)
			tinyurl.GET("/dashboard", statsHandler.TinyURLDashboard)
		}

		linktree := api.Group("/linktree")
		{
			linktree.POST("/links", linktreeHandler.Create)
			linktree.GET("/links", linktreeHandler.List)
			linktree.GET("/links/:linkID", linktreeHandler.Get)
			linktree.PATCH("/links/:linkID", linktreeHandler.Update)
			linktree.DELETE("/links/:linkID", linktreeHandler.Delete)
			linktree.GET("/links/:linkID/stats", statsHandler.LinkStats)
			linktree.GET("/dashboard", statsHandler.LinktreeDashboard)
		}
	}

	// public redirect routes; the bare short code must be registered last
	router.GET("/links/go/:linkID", redirectHandler.RedirectLink)
	router.GET("/:shortCode", redirectHandler.RedirectShortCode)

	return router
}

func gracefulShutdown(srv *http.Server, timeout time.Duration, dbPool *pgxpool.Pool, redisClient *redis.Client, log *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", "error", err)
	}

	dbPool.Close()
	log.Info("Database connection closed")

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis", "error", err)
	}

	log.Info("Graceful shutdown completed")
}
