package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// LogConfig selects the minimum level of the JSON logger. An empty level means info.
type LogConfig struct {
	Level string `koanf:"level"`
}

// String returns a string representation of the log configuration.
func (c *LogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Log ---\n")
	b.WriteString(fmt.Sprintf("  level: %s\n", c.Level))
	return b.String()
}

func (c *LogConfig) Validate() error {
	if _, ok := levels[c.Level]; !ok {
		return fmt.Errorf("invalid log level: %s", c.Level)
	}
	return nil
}

var levels = map[string]slog.Level{
	"":      slog.LevelInfo,
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// SlogLevel returns the configured level, info when it is unknown.
func (c *LogConfig) SlogLevel() slog.Level {
	if level, ok := levels[c.Level]; ok {
		return level
	}
	return slog.LevelInfo
}
