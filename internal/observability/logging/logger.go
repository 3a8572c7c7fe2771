// Package logging provides structured logging with zerolog.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logging configuration.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	TimeFormat string // RFC3339, Unix, etc.
	Service    string
	Env        string // deployment environment, e.g. dev, prod
}

// DefaultConfig returns sensible default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "json",
		TimeFormat: time.RFC3339,
		Service:    "ai-voice-guard-service",
	}
}

// Init initializes the global zerolog logger.
func Init(cfg Config) {
	InitWithWriter(cfg, os.Stdout)
}

// InitWithWriter initializes the global logger writing to out.
func InitWithWriter(cfg Config, out io.Writer) {
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = time.RFC3339
	}
	zerolog.TimeFieldFormat = cfg.TimeFormat

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := out
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
		}
	}

	ctx := zerolog.New(output).
		With().
		Timestamp().
		Caller()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	if cfg.Env != "" {
		ctx = ctx.Str("env", cfg.Env)
	}
	log.Logger = ctx.Logger()
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	return log.Logger
}

// WithComponent returns a logger with a component tag.
func WithComponent(component string) zerolog.Logger {
	return log.With().
		Str("component", component).
		Logger()
}

// WithRequest returns a logger with request context.
func WithRequest(requestID string) zerolog.Logger {
	return log.With().
		Str("requestId", requestID).
		Logger()
}

// WithAnalysis returns a logger with request and analysis context.
func WithAnalysis(requestID, analysisID, provider string) zerolog.Logger {
	return log.With().
		Str("requestId", requestID).
		Str("analysisId", analysisID).
		Str("sttProvider", provider).
		Logger()
}
