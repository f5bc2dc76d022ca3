// Package bootstrap builds the process wide dependencies shared by the catalog binaries.
package bootstrap

import (
	"io"
	"log/slog"

	"github.com/abgdnv/gocatalog/pkg/config"
	"github.com/abgdnv/gocatalog/pkg/logger"
)

// NewLogger creates a JSON slog.Logger writing to w at the configured level.
// Records carry the request ID found in their context.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	logLevel := cfg.SlogLevel()
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := slog.NewJSONHandler(w, loggerOpts)
	return slog.New(logger.NewContextHandler(logHandler))
}
