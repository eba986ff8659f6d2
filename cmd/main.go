package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/capgen/backend/internal/cache"
	"github.com/capgen/backend/internal/config"
	"github.com/capgen/backend/internal/handler"
	"github.com/capgen/backend/internal/metrics"
	"github.com/capgen/backend/internal/middleware"
	"github.com/capgen/backend/internal/provider"
	"github.com/capgen/backend/internal/service"
	"github.com/capgen/backend/internal/validator"

	_ "github.com/capgen/backend/docs"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Caption Generator API
// @version 1.0.0
// @description Generates social media captions from uploaded images via Gemini or OpenAI.
// @BasePath /api/v1
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.Default()

	registry := provider.NewRegistry(cfg)
	if len(registry.List()) == 0 {
		logger.Println("warning: no provider credentials configured, caption requests will fail")
	}

	captionService := service.NewCaptionService(
		logger,
		validator.New(cfg.Upload.MaxSizeBytes()),
		registry,
		cfg.ProviderTimeout,
	)

	if cfg.CacheEnable {
		captionService.SetCacheClient(cache.NewRedisCache(cfg.RedisConfig))
		logger.Println("set redis as result cache")
	}

	h := handler.NewCaptionHandler(logger, captionService, cfg.Upload.MaxSizeBytes())
	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		chimw.Logger,
		chimw.Recoverer,
		chimw.Timeout(cfg.Server.Timeout),
		metrics.Middleware,
		middleware.CORS(cfg.CORSOrigins),
	}...)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Get("/", h.Health)
		r.Get("/providers", h.ListProviders)
		r.Post("/generate-caption", h.GenerateCaption)
	})
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Printf("server started :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Println("server stopped")
}
