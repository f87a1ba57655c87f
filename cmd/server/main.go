package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maniwar/plantfacts/internal/api"
	"github.com/maniwar/plantfacts/internal/cache"
	"github.com/maniwar/plantfacts/internal/config"
	"github.com/maniwar/plantfacts/internal/images"
	"github.com/maniwar/plantfacts/internal/llm"
	"github.com/maniwar/plantfacts/internal/plants"
	"github.com/maniwar/plantfacts/internal/search"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize clients.
	stats := llm.NewStats(cfg.StatsWindow)
	openai := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIMaxTokens, stats)
	store := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheKeyPrefix, cfg.CacheTTL, log)
	img := images.NewClient(log)
	sug := search.NewClient(log)

	svc := plants.NewService(openai, store, log)

	// Initialize HTTP server.
	srv := api.NewServer(svc, img, sug, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // streamed reports can run long
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		openai.Close()
		img.Close()
		sug.Close()
		store.Close()
	}()

	log.Info("starting plantfacts", "port", cfg.Port, "cache_enabled", store.Enabled())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
