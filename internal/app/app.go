package app

import (
	"errors"
	"io"
	"log/slog"
)

// Config holds everything an App needs to run one conversion.
type Config struct {
	InputPath string
	OutPath   string // empty derives the name from InputPath
	MultiTop  bool
	Nest      int

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.Nest < 0 {
		return nil, errors.New("Nest must be non-negative")
	}
	return &cfg, nil
}

// App encapsulates the converter's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the application. The returned App carries
// its own isolated logger; nothing global is configured.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")
	return &App{outW: outW, logger: logger, config: cfg}
}
