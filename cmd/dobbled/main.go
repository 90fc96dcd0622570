package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/istinmth/dobble-generator/internal/adapters/export"
	httpadapter "github.com/istinmth/dobble-generator/internal/adapters/http"
	"github.com/istinmth/dobble-generator/internal/adapters/icons"
	"github.com/istinmth/dobble-generator/internal/adapters/jobs"
	"github.com/istinmth/dobble-generator/internal/app"
	"github.com/istinmth/dobble-generator/internal/config"
	"github.com/istinmth/dobble-generator/internal/domain"
	"github.com/istinmth/dobble-generator/internal/ports"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int   { return rand.IntN(n) }
func (stdRNG) Float64() float64 { return rand.Float64() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	iconStore, err := icons.NewStore(cfg.IconsDir)
	if err != nil {
		logger.Error("failed to open icon store", "error", err)
		os.Exit(1)
	}

	var jobStore ports.JobStore
	switch cfg.JobStore {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		store, err := jobs.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			logger.Error("failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		jobStore = store
	default:
		store, err := jobs.NewFSStore(cfg.ExportsDir)
		if err != nil {
			logger.Error("failed to open job store", "error", err)
			os.Exit(1)
		}
		jobStore = store
	}

	packer := domain.NewPacker()
	renderer, err := export.NewRenderer(cfg.ExportsDir, cfg.CardPixels, packer, stdRNG{}, logger)
	if err != nil {
		logger.Error("failed to open exports dir", "error", err)
		os.Exit(1)
	}

	svc := app.NewGeneratorService(iconStore, jobStore, renderer, packer, stdRNG{})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc)
	handler.Register(e)

	e.Static("/exports", cfg.ExportsDir)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "job_store", cfg.JobStore)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
