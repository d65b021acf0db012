package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sony/gobreaker"

	httpapi "github.com/i474232898/weather-client/internal/api/http"
	"github.com/i474232898/weather-client/internal/cache"
	"github.com/i474232898/weather-client/internal/config"
	"github.com/i474232898/weather-client/internal/geo"
	"github.com/i474232898/weather-client/internal/scheduler"
	"github.com/i474232898/weather-client/internal/weather"
	"github.com/i474232898/weather-client/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Per-attempt timeouts are applied by the executor.
	httpClient := &http.Client{}

	var circuit *gobreaker.CircuitBreaker
	if cfg.CircuitBreaker {
		circuit = providers.NewCircuitBreaker(providers.BreakerConfig{
			Name:    "weather-api",
			Timeout: 30 * time.Second,
		})
	}

	executor := providers.NewExecutor(httpClient, providers.BackoffConfig{
		InitialInterval: cfg.BackoffInitial,
		MaxInterval:     cfg.BackoffMax,
	}, circuit)
	provider := providers.NewAPIProvider(cfg.APIBaseURL, executor)

	memCache := cache.NewMemory[any](cfg.CacheTTL)
	service := weather.NewService(provider, cfg.Defaults,
		weather.WithCache(memCache),
		weather.WithBatchLimit(cfg.BatchConcurrency),
	)
	log.Printf("INFO: weather client using %s (%s, units=%s, timeout=%s, retries=%d)",
		cfg.APIBaseURL, cfg.Environment, cfg.Defaults.Units, cfg.Defaults.Timeout, cfg.Defaults.MaxRetries)

	// Keeps the configured cities warm in the cache.
	sched := scheduler.New(cfg.WarmCities, cfg.WarmInterval, cfg.CacheTTL, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	var geocoder httpapi.Geocoder
	if cfg.GeocoderAPIKey != "" {
		geocoder = geo.NewResolver(cfg.GeocoderAPIKey)
	}

	app := fiber.New(fiber.Config{
		AppName:               "weather-client",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Long enough for a full retry sequence.
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-client",
		})
	})

	httpapi.RegisterRoutes(app, service, memCache, geocoder)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
