package app

import (
	"io"
	"log/slog"

	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/config"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/session"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	sessions session.SessionFactory
}

// NewApp is the constructor for the main application. Reports are written to
// outW and log records to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, sessions session.SessionFactory) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("App: Logger configured.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		sessions: sessions,
	}
}
