package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/audiorelay/tts-gateway/internal/appinfo"
	"github.com/audiorelay/tts-gateway/internal/config"
	"github.com/audiorelay/tts-gateway/internal/elevenlabs"
	"github.com/audiorelay/tts-gateway/internal/logging"
	"github.com/audiorelay/tts-gateway/internal/prompt"
	"github.com/audiorelay/tts-gateway/internal/server"
	"github.com/audiorelay/tts-gateway/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Absent .env is fine; real environments configure the process directly.
	_ = godotenv.Load()

	cfg, err := config.Loader{}.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Environment, cfg.LogLevel,
		logging.WithLogToFile(cfg.LogFilePath != ""),
		logging.WithLogFile(cfg.LogFilePath),
	)
	slog.SetDefault(logger)

	meta, err := appinfo.Load()
	if err != nil {
		logger.Error("failed to load application manifest", "error", err)
		os.Exit(1)
	}

	logger.Info("starting gateway",
		"name", meta.Name,
		"version", meta.Version,
		"listen_addr", cfg.ListenAddr(),
		"environment", cfg.Environment,
		"default_voice_id", cfg.DefaultVoiceID,
		"default_model_id", cfg.DefaultModelID,
		"voice_aliases", len(cfg.VoiceAliases),
		"prompt_system", cfg.PromptsEnabled,
	)

	recorder := telemetry.NewRecorder(logger)

	var synthesizer elevenlabs.Synthesizer
	if cfg.UseStubSynthesizer {
		synthesizer = elevenlabs.NewStubSynthesizer(logger)
		logger.Info("using STUB synthesizer — responses are deterministic, NOT from ElevenLabs API")
	} else {
		synthesizer = elevenlabs.NewClient(cfg.APIKey, cfg.BaseURL, elevenlabs.Defaults{
			ModelID:         cfg.DefaultModelID,
			Stability:       cfg.DefaultStability,
			SimilarityBoost: cfg.DefaultSimilarityBoost,
			Style:           cfg.DefaultStyle,
			UseSpeakerBoost: cfg.DefaultUseSpeakerBoost,
		}, logger)
		logger.Info("ElevenLabs client initialized")
	}

	// Connectivity probe. The gateway starts either way; a dead upstream
	// surfaces per request.
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if synthesizer.CheckConnection(probeCtx) {
		logger.Info("ElevenLabs API reachable")
	} else {
		logger.Warn("ElevenLabs API not reachable at startup, requests may fail")
	}
	cancel()

	prompts := prompt.NewStore(cfg.PromptsEnabled, cfg.DefaultPromptTemplate, logger)

	srv := server.New(cfg, logger, synthesizer, prompts, recorder, meta)
	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("server terminated with error", "error", err)
		os.Exit(1)
	case <-ctx.Done():
	}

	logger.Info("shutdown requested, draining connections")
	drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(drainCtx); err != nil {
		logger.Warn("graceful shutdown timed out, forcing close", "error", err)
		httpServer.Close()
	}

	recorder.LogTotals()
	logger.Info("gateway stopped")
}
