package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/config"
	httpapi "storefront-service/internal/controllers/http"
	"storefront-service/internal/infra/cache"
	"storefront-service/internal/infra/database"
	"storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/logger"
	"storefront-service/internal/repository/gormrepo"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := cfg.Validate(); err != nil {
		zl.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DB)
	if err != nil {
		zl.Fatal("db: connect", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("db: migrate", zap.Error(err))
	}

	var catalogCache cache.CatalogCache = cache.NopCatalogCache{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     50,
			MinIdleConns: 5,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			zl.Warn("redis unreachable, catalog cache disabled", zap.Error(err))
		} else {
			catalogCache = cache.NewRedisCatalogCache(rdb, cfg.Redis.CacheTTL, zl)
		}
		cancel()
	}

	var publisher rabbitmq.PublisherInterface = rabbitmq.NopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, zl)
		if err != nil {
			zl.Fatal("failed to init publisher", zap.Error(err))
		}
		defer pub.Close()
		publisher = pub
	}

	productRepo := gormrepo.NewProductRepository(db)
	profileRepo := gormrepo.NewProfileRepository(db)
	orderRepo := gormrepo.NewOrderRepository(db)

	gate := services.NewAccessGate(profileRepo)
	catalog := services.NewCatalogService(productRepo, gormrepo.NewTestimonialRepository(db), catalogCache, zl)
	carts := services.NewCartService(gormrepo.NewCartRepository(db), productRepo, gate, zl)
	profiles := services.NewProfileService(profileRepo, gate, zl)

	handler := httpapi.NewHandler(httpapi.Services{
		Catalog:      catalog,
		CatalogAdmin: services.NewCatalogAdminService(productRepo, catalogCache, gate, publisher, zl),
		Carts:        carts,
		Orders:       services.NewOrderService(orderRepo, carts, gate, publisher, zl),
		OrderAdmin:   services.NewOrderAdminService(orderRepo, gate, publisher, zl, cfg.StrictStatusTransitions),
		Profiles:     profiles,
	})

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := httpapi.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go sweepLimiter(ctx, limiter)

	verifier := auth.NewVerifier(cfg.JWT.Secret, cfg.JWT.Audience)
	router := httpapi.NewRouter(httpapi.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
	}, handler, httpapi.Authenticate(verifier, profiles, zl), zl)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zl.Info("starting storefront service", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server run", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func sweepLimiter(ctx context.Context, rl *httpapi.RateLimiter) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			rl.Sweep(now)
		}
	}
}
