// Package cli provides common CLI initialization utilities shared by
// cmd/splitter and cmd/splitctl.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/auburus/expense-splitter/internal/config"
	applog "github.com/auburus/expense-splitter/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SetupLogger builds the application logger from cfg, writes it to out and
// installs it as the slog default. An unparsable level falls back to info.
func SetupLogger(cfg *config.Config, out io.Writer) *applog.Logger {
	level, _ := cfg.SlogLevel()
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
		JSON:      cfg.LogFormat == "json",
		Output:    out,
	})
	applog.SetDefault(logger)
	return logger
}

// ShutdownContext returns a context cancelled on SIGINT or SIGTERM.
func ShutdownContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
