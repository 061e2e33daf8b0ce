package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/flashgen/internal/api"
	"github.com/dgallion1/flashgen/internal/config"
	"github.com/dgallion1/flashgen/internal/generate"
	"github.com/dgallion1/flashgen/internal/pipeline"
	"github.com/dgallion1/flashgen/internal/splitter"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stats := generate.NewStats(cfg.StatsWindow)

	gen, err := buildGenerator(ctx, cfg, stats)
	if err != nil {
		log.Error("generator init failed", "error", err)
		os.Exit(1)
	}

	split := splitter.Config{
		ThresholdPages: cfg.ThresholdPages,
		ChunkPages:     cfg.ChunkPages,
	}
	pipe := pipeline.New(gen, split, log)

	srv := api.NewServer(pipe, stats, log, cfg)

	httpServer := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     srv,
		ReadTimeout: 30 * time.Second,
		// Large documents mean many sequential generator calls in one request.
		WriteTimeout: 30 * time.Minute,
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

		if closer, ok := gen.(io.Closer); ok {
			closer.Close()
		}
	}()

	log.Info("starting flashgen", "port", cfg.Port, "provider", cfg.Provider, "model", cfg.ActiveModel())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func buildGenerator(ctx context.Context, cfg config.Config, stats *generate.Stats) (generate.Generator, error) {
	switch cfg.Provider {
	case "openai":
		return generate.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.GenerateTimeout, cfg.PDFFallbackPdftotext, stats), nil
	case "anthropic":
		return generate.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.GenerateTimeout, stats), nil
	default:
		return generate.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GenerateTimeout, stats)
	}
}
