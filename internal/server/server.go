// Package server assembles the catalog API: storage-backed services, middleware and routes.
package server

import (
	"net/http"

	"catalog-service/internal/enrichment"
	"catalog-service/internal/handler"
	mid "catalog-service/internal/middleware"
	"catalog-service/internal/repository"
	"catalog-service/internal/service"
	"catalog-service/pkg/config"
	"catalog-service/pkg/jwtutil"
	"catalog-service/pkg/logger"
	"catalog-service/pkg/password"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options overrides collaborators built from the configuration
type Options struct {
	// TextGenerator replaces the Gemini client when set
	TextGenerator enrichment.TextGenerator
}

// New builds the echo instance serving the catalog API on db
func New(cfg *config.Config, db *gorm.DB, metrics *prometheus.Metrics, log *zap.Logger, opts Options) *echo.Echo {
	hasher := password.NewHasher(cfg.Security.BcryptCost)
	tokens := jwtutil.NewJWTUtil(&cfg.JWT)

	vendors := repository.NewVendorRepository(db, hasher, metrics)
	products := repository.NewProductRepository(db, metrics)

	text := opts.TextGenerator
	if text == nil && cfg.Enrichment.GeminiAPIKey != "" {
		text = enrichment.NewGeminiClient(&cfg.Enrichment, log)
	}
	if text == nil {
		log.Warn("GEMINI_API_KEY not set, product descriptions will use the fallback template")
	}
	enricher := enrichment.NewEnricher(text, metrics, log)

	authService := service.NewAuthService(vendors, hasher, tokens, metrics, log)
	productService := service.NewProductService(products, enricher, cfg.Product.MaxPageSize, metrics, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	healthHandler := handler.NewHealthHandler(db)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	// Middleware
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(metrics.Middleware())

	// Routes
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/health", healthHandler.HealthCheck)

	e.POST("/register", authHandler.Register)
	e.POST("/token", authHandler.Token)

	productAPI := e.Group("/productos", mid.AuthMiddleware(authService))
	productAPI.GET("", productHandler.ListProducts)
	productAPI.POST("", productHandler.CreateProduct)
	productAPI.PUT("/:id", productHandler.UpdateProduct)
	productAPI.DELETE("/:id", productHandler.DeleteProduct)

	return e
}
