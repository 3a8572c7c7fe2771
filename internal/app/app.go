package app

import (
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"ai-voice-guard-service/internal/analysis"
	"ai-voice-guard-service/internal/config"
	"ai-voice-guard-service/internal/models"
	"ai-voice-guard-service/internal/observability/logging"
)

// Analyzer turns one analyze request into a verdict.
type Analyzer interface {
	Analyze(ctx context.Context, requestID string, req *models.AnalyzeRequest) (*analysis.Verdict, error)
}

// Application holds process-wide state for the service.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Config
	Analyzer    Analyzer

	closers []io.Closer
	ready   atomic.Bool
}

// New constructs a new Application. closers are closed in order on Shutdown.
func New(cfg *config.Config, analyzer Analyzer, closers ...io.Closer) *Application {
	a := &Application{
		Cfg:      cfg,
		Analyzer: analyzer,
		closers:  closers,
		Logger:   logging.WithComponent("application"),
	}

	a.Logger.Info().
		Str("method", "New").
		Msg("AI Voice Guard service application created")
	return a
}

// Start performs any startup work required before serving traffic.
func (a *Application) Start() error {
	startLogger := a.Logger.With().
		Str("method", "Start").
		Logger()

	a.StartupTime = time.Now().UTC()
	a.ready.Store(true)
	startLogger.Info().
		Time("startupTime", a.StartupTime).
		Msg("AI Voice Guard service starting")

	return nil
}

// Ready reports whether the application accepts analysis traffic.
func (a *Application) Ready() bool {
	return a.ready.Load()
}

// Shutdown marks the application not ready and releases its resources.
func (a *Application) Shutdown() {
	shutdownLogger := a.Logger.With().
		Str("method", "Shutdown").
		Logger()

	a.ready.Store(false)
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			shutdownLogger.Error().Err(err).Msg("Error releasing resource")
		}
	}

	shutdownLogger.Info().
		Dur("uptime", time.Since(a.StartupTime)).
		Msg("AI Voice Guard service shutting down")
}
