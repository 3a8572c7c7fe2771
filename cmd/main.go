package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	grpcapi "ai-voice-guard-service/internal/api/grpc"
	"ai-voice-guard-service/internal/app"
	"ai-voice-guard-service/internal/config"
	"ai-voice-guard-service/internal/events"
	httpapi "ai-voice-guard-service/internal/http"
	"ai-voice-guard-service/internal/observability"
	"ai-voice-guard-service/internal/observability/logging"
	"ai-voice-guard-service/internal/observability/metrics"
	"ai-voice-guard-service/internal/service/audio"
	"ai-voice-guard-service/internal/service/stt"
	"ai-voice-guard-service/internal/service/stt/elevenlabs"
	"ai-voice-guard-service/internal/service/stt/google"
	"ai-voice-guard-service/internal/service/stt/mock"
	"ai-voice-guard-service/internal/service/verdict"
)

func main() {
	envFile := flag.String("env", ".env", "Optional .env file to load before reading the environment")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", *envFile, err)
		os.Exit(1)
	}
	cfg := config.Load()

	logging.Init(logging.Config{
		Level:      cfg.Observability.LogLevel,
		Format:     cfg.Observability.LogFormat,
		TimeFormat: time.RFC3339,
		Service:    "ai-voice-guard-service",
		Env:        cfg.Service.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	transcriber, err := newTranscriber(ctx, cfg.STT)
	if err != nil {
		log.Fatal().Err(err).Str("provider", cfg.STT.Provider).Msg("Failed to create STT provider")
	}
	log.Info().Str("provider", transcriber.Name()).Msg("STT provider configured")

	// Kafka publisher for verdict events; log-only when disabled
	publisher := events.New(&events.Config{
		Enabled:   cfg.Kafka.Enabled,
		Brokers:   cfg.Kafka.Brokers,
		Topic:     cfg.Kafka.TopicVerdict,
		Principal: cfg.Kafka.Principal,
	})

	svc := verdict.New(transcriber, publisher, verdict.Options{
		Limits:  audio.Limits{MaxAudioBytes: cfg.Limits.MaxAudioBytes},
		Timeout: cfg.Limits.RequestTimeout,
		Metrics: metrics.DefaultMetrics,
	})

	closers := []io.Closer{publisher}
	if c, ok := transcriber.(io.Closer); ok {
		closers = append(closers, c)
	}
	application := app.New(cfg, svc, closers...)

	obs := observability.NewServer(":" + cfg.Service.MetricsPort)
	obs.Start()

	grpcServer := grpcapi.New(metrics.DefaultMetrics)
	lis, err := net.Listen("tcp", ":"+cfg.Service.GRPCPort)
	if err != nil {
		log.Fatal().Err(err).Str("port", cfg.Service.GRPCPort).Msg("Failed to listen for gRPC")
	}
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Error().Err(err).Msg("gRPC serve failed")
		}
	}()

	httpServer := &http.Server{
		Addr:              ":" + cfg.Service.HTTPPort,
		Handler:           httpapi.NewRouter(application),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Limits.RequestTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("AI Voice Guard HTTP server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP serve failed")
		}
	}()

	if err := application.Start(); err != nil {
		log.Fatal().Err(err).Msg("Application start failed")
	}
	obs.SetReady(true)
	grpcServer.SetServing(true)

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	obs.SetReady(false)
	grpcServer.SetServing(false)
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	grpcServer.GracefulStop()
	application.Shutdown()
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Observability server shutdown error")
	}
}

// newTranscriber builds the STT provider named in cfg.Provider.
func newTranscriber(ctx context.Context, cfg config.STTConfig) (stt.Transcriber, error) {
	switch cfg.Provider {
	case "elevenlabs":
		a, err := elevenlabs.New(elevenlabs.Config{
			APIKey:         cfg.ElevenLabs.APIKey,
			BaseURL:        cfg.ElevenLabs.BaseURL,
			ModelID:        cfg.ElevenLabs.ModelID,
			TagAudioEvents: cfg.ElevenLabs.TagAudioEvents,
			Diarize:        cfg.ElevenLabs.Diarize,
			Timeout:        cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return a, nil
	case "google":
		a, err := google.New(ctx, google.Config{
			LanguageCode:  cfg.Google.LanguageCode,
			SampleRateHz:  cfg.Google.SampleRateHz,
			AudioEncoding: cfg.Google.AudioEncoding,
		})
		if err != nil {
			return nil, err
		}
		return a, nil
	case "mock", "":
		return mock.New(), nil
	default:
		return nil, fmt.Errorf("unknown STT provider %q", cfg.Provider)
	}
}
