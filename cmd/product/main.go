package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"google.golang.org/grpc/health"

	_ "github.com/tair/catalog-service/docs"
	"github.com/tair/catalog-service/internal/config"
	"github.com/tair/catalog-service/internal/product"
	grpcDelivery "github.com/tair/catalog-service/internal/product/delivery/grpc"
	httpDelivery "github.com/tair/catalog-service/internal/product/delivery/http"
	"github.com/tair/catalog-service/internal/product/enrichment"
	"github.com/tair/catalog-service/internal/product/repository"
	"github.com/tair/catalog-service/kafka"
	"github.com/tair/catalog-service/pkg/auth"
	"github.com/tair/catalog-service/pkg/database"
	"github.com/tair/catalog-service/pkg/logger"
	"github.com/tair/catalog-service/pkg/tracing"
)

const productGaugeInterval = 30 * time.Second

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Str("store", cfg.StoreDriver).
		Msg("Starting catalog service")

	// Initialize tracer
	tp, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.ServiceName,
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
		Enabled:        cfg.Tracing.Enabled,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	redisClient := connectRedis(cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	}

	stores, db, closeStores := openStores(cfg, redisClient)
	defer closeStores()

	app, err := product.InitializeApp(stores, cfg.Endpoints, enrichment.Config{
		MaxCategoryDepth: cfg.Catalog.CategoryMaxDepth,
		Concurrency:      cfg.Catalog.EnrichConcurrency,
	}, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize catalog")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go refreshProductGauge(ctx, app.Handler)

	httpServer := newHTTPServer(cfg, app.Handler, redisClient, db)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	healthSrv := health.NewServer()
	grpcServer := grpcDelivery.NewServer(healthSrv, grpcDelivery.NewMetrics(prometheus.DefaultRegisterer))
	go grpcDelivery.NewHealthWatcher(healthSrv, db, 10*time.Second).Run(ctx)
	go func() {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			logger.Logger.Fatal().Err(err).Str("port", cfg.GRPCPort).Msg("Failed to listen for gRPC")
		}
		logger.Logger.Info().Str("port", cfg.GRPCPort).Msg("gRPC health server started")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Logger.Error().Err(err).Msg("gRPC server stopped")
		}
	}()

	var consumer *kafka.Consumer
	if cfg.Kafka.Enabled() {
		consumer, err = kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topics)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Kafka consumer unavailable, sales counts will not update")
		} else {
			consumer.RegisterHandler(kafka.EventTypeProductPurchased, kafka.ProductPurchasedHandler(app.RecordSale))
			consumer.Start(ctx)
		}
	}

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server forced to shutdown")
	}
	grpcServer.GracefulStop()
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka consumer")
		}
	}
	logger.Logger.Info().Msg("Catalog service stopped")
}

func connectRedis(cfg config.RedisConfig) *redis.Client {
	if !cfg.Enabled() {
		logger.Logger.Info().Msg("Redis disabled, recent keywords stay empty and rate limiting is off")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Error().Err(err).Str("addr", cfg.Addr).Msg("Redis unreachable, continuing without it")
		client.Close()
		return nil
	}
	logger.Logger.Info().Str("addr", cfg.Addr).Msg("Connected to Redis")
	return client
}

// openStores returns the stores, a pinger for health checks (nil for the
// in-memory store) and a close function.
func openStores(cfg *config.Config, redisClient *redis.Client) (product.Stores, httpDelivery.Pinger, func()) {
	if cfg.StoreDriver == "memory" {
		logger.Logger.Warn().Msg("Using in-memory store, data is lost on restart")
		return product.NewMemoryStores(redisClient, cfg.Redis.RecentKeywordsMax), nil, func() {}
	}

	db, err := database.NewGormConnection(database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}

	// Run migrations
	if err := repository.NewGormProductRepository(db).AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	return product.NewGormStores(db, redisClient, cfg.Redis.RecentKeywordsMax), sqlDB, func() { sqlDB.Close() }
}

func newHTTPServer(cfg *config.Config, handler *httpDelivery.ProductHandler, redisClient *redis.Client, db httpDelivery.Pinger) *http.Server {
	router := mux.NewRouter()

	var tokens *auth.TokenManager
	if cfg.JWTSecret != "" {
		tokens = auth.NewTokenManager(cfg.JWTSecret, 24*time.Hour)
	}
	var limiter *httpDelivery.RateLimiter
	if redisClient != nil {
		limiter = httpDelivery.NewRateLimiter(redisClient, cfg.Redis.RateLimitMax, cfg.Redis.RateLimitWindow)
	}

	middlewareConfig := httpDelivery.DefaultMiddlewareConfig(tokens, limiter)
	middlewareConfig.TimeoutDuration = cfg.RequestTimeout
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	handler.RegisterRoutes(router)
	httpDelivery.RegisterHealthCheck(router, db)
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           httpDelivery.SetupCORS(middlewareConfig)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func refreshProductGauge(ctx context.Context, handler *httpDelivery.ProductHandler) {
	ticker := time.NewTicker(productGaugeInterval)
	defer ticker.Stop()
	for {
		handler.RefreshProductCount(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
