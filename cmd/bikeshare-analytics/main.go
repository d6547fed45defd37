package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/bikeshare-analytics/internal/api/http"
	"github.com/i474232898/bikeshare-analytics/internal/config"
	"github.com/i474232898/bikeshare-analytics/internal/log"
	"github.com/i474232898/bikeshare-analytics/internal/rental"
	"github.com/i474232898/bikeshare-analytics/internal/rental/sources"
	"github.com/i474232898/bikeshare-analytics/internal/scheduler"
	"github.com/i474232898/bikeshare-analytics/internal/store"
)

func main() {
	// Load configuration (.env, optional YAML file, environment).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := log.Init(cfg.Debug); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer log.Sync()

	// Shared HTTP client for the remote dataset source.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	source, err := sources.New(cfg, httpClient)
	if err != nil {
		log.Fatalf("failed to create dataset source: %v", err)
	}

	service := rental.NewService(store.NewMemoryStore(), source)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 2*time.Minute)
	_, err = service.Reload(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	// Optional periodic reload.
	sched := scheduler.New(cfg.ReloadInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "bikeshare-analytics",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(httpapi.RequestLogger())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"status":  "ok",
			"service": "bikeshare-analytics",
		}
		if ds, err := service.Dataset(); err == nil {
			resp["datasetVersion"] = ds.Version
			resp["loadedAt"] = ds.LoadedAt
		}
		return c.JSON(resp)
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Infof("listening on :%s (source %s)", cfg.Port, source.Name())
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
