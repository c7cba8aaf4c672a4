package main

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/fortuna/fortuna-web/internal/apiclient"
	"github.com/dafibh/fortuna/fortuna-web/internal/config"
	"github.com/dafibh/fortuna/fortuna-web/internal/handler"
	"github.com/dafibh/fortuna/fortuna-web/internal/middleware"
	"github.com/dafibh/fortuna/fortuna-web/internal/service"
	"github.com/dafibh/fortuna/fortuna-web/internal/tracing"
	"github.com/dafibh/fortuna/fortuna-web/web"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Tracing
	shutdownTracing, err := tracing.Init(context.Background(), cfg.OTelServiceName, cfg.TracingEnabled)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize tracing")
	}

	// REST API client
	client, err := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create REST API client")
	}
	log.Info().Str("api_base_url", client.BaseURL()).Msg("Using REST API")

	// Initialize services
	categoryService := service.NewCategoryService(client, cfg.API.CategoriesPath)
	entryService := service.NewEntryService(client, cfg.API.EntriesPath, categoryService)

	// Initialize handlers
	flash := handler.NewFlash(cfg.FlashCookieName, cfg.CookieSecure)
	categoryHandler := handler.NewCategoryHandler(categoryService, flash)
	entryHandler := handler.NewEntryHandler(entryService, categoryService, flash)

	renderer, err := handler.NewRenderer(web.TemplatesFS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open static assets")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewMetrics(registry)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register metrics")
	}

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewFormValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	// Client IP for rate limiting: X-Forwarded-For only through trusted proxies
	ipExtractor, err := middleware.ClientIPExtractor(cfg.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure client IP extraction")
	}
	e.IPExtractor = ipExtractor

	// Request ID middleware
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.PropagateRequestID())

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(middleware.RequestLogger())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	e.Use(metrics.Handler())

	// CSRF protection of form posts
	e.Use(echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "form:" + handler.CSRFContextKey,
		ContextKey:     handler.CSRFContextKey,
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: http.SameSiteLaxMode,
	}))

	// Rate limiting of form posts
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Register page routes
	handler.RegisterRoutes(e, static, categoryHandler, entryHandler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(e, cfg.OTelServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	rateLimiter.Stop()
	if err := shutdownTracing(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to flush traces")
	}

	log.Info().Msg("Server exited")
}
