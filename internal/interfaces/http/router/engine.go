package router

import (
	"time"

	"github.com/catering/gstbill/internal/infrastructure/config"
	"github.com/catering/gstbill/internal/infrastructure/logger"
	"github.com/catering/gstbill/internal/infrastructure/telemetry"
	"github.com/catering/gstbill/internal/interfaces/http/handler"
	"github.com/catering/gstbill/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// EngineConfig carries everything the HTTP stack needs besides handlers
type EngineConfig struct {
	Logger        *zap.Logger
	HTTP          config.HTTPConfig
	Swagger       middleware.SwaggerConfig
	Tracing       middleware.TracingConfig
	Profiling     middleware.ProfilingConfig
	MeterProvider *telemetry.MeterProvider
}

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	Invoice *handler.InvoiceHandler
	Catalog *handler.CatalogHandler
	Health  *handler.HealthHandler
}

// NewEngine builds the gin engine with the full middleware stack, /health,
// /swagger and the versioned invoicing API.
func NewEngine(cfg EngineConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()
	engine := gin.New()

	// RequestID must run first and tracing must precede the request logger.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(cfg.Tracing))
	engine.Use(middleware.TraceAttributes())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(cfg.MeterProvider, log))
	engine.Use(middleware.Profiling(cfg.Profiling))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDKey},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
	}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := NewRouter(engine, WithAPIVersion("v1"))

	if h.Invoice != nil {
		invoiceRoutes := NewDomainGroup("invoices", "/invoices")
		invoiceRoutes.POST("", h.Invoice.Create)
		invoiceRoutes.GET("", h.Invoice.List)
		invoiceRoutes.POST("/preview", h.Invoice.Preview)
		invoiceRoutes.GET("/bill/:billNo", h.Invoice.GetByBillNo)
		invoiceRoutes.GET("/:id", h.Invoice.Get)
		invoiceRoutes.PUT("/:id", h.Invoice.Update)
		invoiceRoutes.DELETE("/:id", h.Invoice.Delete)

		numbering := NewDomainGroup("numbering", "")
		numbering.GET("/next-bill-number", h.Invoice.NextBillNumber)

		r.Register(invoiceRoutes).Register(numbering)
	}

	if h.Catalog != nil {
		catalogRoutes := NewDomainGroup("item-catalog", "/item-catalog")
		catalogRoutes.GET("", h.Catalog.List)
		catalogRoutes.GET("/suggestions", h.Catalog.Suggestions)
		r.Register(catalogRoutes)
	}

	r.Setup()

	log.Info("HTTP routes registered",
		zap.String("base_path", r.BasePath()),
		zap.Int("route_count", len(engine.Routes())),
	)
	return engine
}
