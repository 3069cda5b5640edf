package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/catering/gstbill/internal/application/invoicing"
	"github.com/catering/gstbill/internal/infrastructure/cache"
	"github.com/catering/gstbill/internal/infrastructure/config"
	"github.com/catering/gstbill/internal/infrastructure/logger"
	"github.com/catering/gstbill/internal/infrastructure/persistence"
	"github.com/catering/gstbill/internal/infrastructure/telemetry"
	"github.com/catering/gstbill/internal/interfaces/http/handler"
	"github.com/catering/gstbill/internal/interfaces/http/middleware"
	"github.com/catering/gstbill/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/catering/gstbill/docs"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			GST Billing API
//	@version		1.0
//	@description	Tax invoice backend for a catering business: draft computation, invoice commit with unique bill numbers, invoice history and item suggestions.

//	@contact.name	Billing Support

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Environment:       cfg.App.Env,
		Insecure:          cfg.Telemetry.Insecure,
	}

	// The OTLP log bridge has to exist before the zap logger that tees into it
	logsCfg := telemetryCfg
	logsCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled
	loggerProvider, err := telemetry.NewLoggerProvider(context.Background(), logsCfg)
	if err != nil {
		panic("Failed to initialize OTLP logs: " + err.Error())
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	var extraCores []zapcore.Core
	if loggerProvider.IsEnabled() {
		extraCores = append(extraCores, loggerProvider.ZapCore(level))
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}, extraCores...)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting GST billing service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	metricsCfg := telemetryCfg
	metricsCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled
	meterProvider, err := telemetry.NewMeterProvider(context.Background(), metricsCfg, cfg.Telemetry.MetricsInterval, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	invoiceMetrics, err := telemetry.NewInvoiceMetrics(meterProvider.Meter("gstbill/invoicing"))
	if err != nil {
		log.Fatal("Failed to register invoice metrics", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	if _, err := telemetry.RegisterDBPoolMetrics(meterProvider.Meter("gstbill/database"), db.Stats, log); err != nil {
		log.Fatal("Failed to register database pool metrics", zap.Error(err))
	}

	dbSystem := "postgresql"
	if cfg.Database.Driver == config.DriverSQLite {
		dbSystem = "sqlite"
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        dbSystem,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Redis is optional: without it idempotency keys live in process memory
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Warn("Redis unreachable, continuing without it",
				zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
			redisClient = nil
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Error("Error closing Redis client", zap.Error(err))
				}
			}()
		}
	}

	storeFactory := cache.NewStoreFactory(redisClient,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	)
	idempotencyStore, err := storeFactory.CreateIdempotencyStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	if closer, ok := idempotencyStore.(io.Closer); ok {
		defer closer.Close()
	}
	catalogStore, err := storeFactory.CreateCatalogStore(cfg.Invoice.CatalogBackend, persistence.NewGormCatalogStore(db.DB))
	if err != nil {
		log.Fatal("Failed to create item catalog store", zap.Error(err))
	}
	catalogBackend := cfg.Invoice.CatalogBackend
	if catalogBackend == config.CatalogBackendRedis && redisClient == nil {
		catalogBackend = config.CatalogBackendDatabase
	}

	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	allocator := persistence.NewGormBillNumberAllocator(db.DB)

	catalogService := invoicing.NewCatalogService(catalogStore, catalogBackend, invoiceMetrics)
	commitService := invoicing.NewCommitService(invoiceRepo, allocator, catalogService,
		invoicing.WithMaxAttempts(cfg.Invoice.MaxCommitAttempts),
		invoicing.WithIdempotencyStore(idempotencyStore, cfg.Invoice.IdempotencyTTL),
		invoicing.WithMetrics(invoiceMetrics),
	)
	invoiceService := invoicing.NewInvoiceService(invoiceRepo, allocator, commitService)

	healthChecks := []handler.HealthCheck{{Name: "database", Check: db.Ping}}
	if redisClient != nil {
		healthChecks = append(healthChecks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.NewEngine(router.EngineConfig{
		Logger: log,
		HTTP:   cfg.HTTP,
		Swagger: middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		},
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tracerProvider.IsEnabled(),
		},
		Profiling: middleware.ProfilingConfig{
			Enabled:          profiler.IsEnabled(),
			SkipPathPrefixes: middleware.DefaultProfilingConfig().SkipPathPrefixes,
		},
		MeterProvider: meterProvider,
	}, router.Handlers{
		Invoice: handler.NewInvoiceHandler(invoiceService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Health:  handler.NewHealthHandler(version, healthChecks...),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Flush telemetry after the last request has finished
	if err := profiler.Stop(); err != nil {
		log.Warn("Profiler stop failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(ctx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(ctx, log); err != nil {
		log.Warn("Logger provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
