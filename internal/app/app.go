// Package app holds process-wide state for the voice assistant client.
package app

import (
	"time"

	"github.com/rs/zerolog"

	"voice-assistant-client/internal/config"
	"voice-assistant-client/internal/observability/logging"
)

// Application holds process-wide state for the client.
type Application struct {
	StartupTime time.Time
	Logger      zerolog.Logger
	Cfg         *config.Configuration
}

// New constructs a new Application from the provided configuration and
// initializes the global logger.
func New(cfg *config.Configuration) *Application {
	logging.Init(logging.Config{
		Level:      cfg.Observability.LogLevel,
		Format:     cfg.Observability.LogFormat,
		TimeFormat: time.RFC3339,
	})

	a := &Application{
		Cfg:    cfg,
		Logger: logging.WithComponent("application"),
	}

	a.Logger.Info().
		Str("principal", cfg.Service.Principal).
		Str("source", cfg.Session.Source).
		Msg("Voice assistant client created")
	return a
}

// Start performs any startup work required before the session begins.
func (a *Application) Start() error {
	a.StartupTime = time.Now().UTC()
	a.Logger.Info().
		Time("startupTime", a.StartupTime).
		Dur("connectTimeout", a.Cfg.Session.ConnectTimeout).
		Msg("Voice assistant client starting")
	return nil
}

// Shutdown performs a best-effort cleanup before process exit.
func (a *Application) Shutdown() {
	a.Logger.Info().Msg("Voice assistant client shutting down")
}
