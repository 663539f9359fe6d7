// Package logs holds the logging section of the cornflakes settings file.
package logs

import (
	"fmt"
	"log/slog"
)

const (
	FormatUnspecified Format = ""
	FormatText        Format = "text"
	FormatJSON        Format = "json"
)

const (
	LevelUnspecified Level = ""
	LevelDebug       Level = "debug"
	LevelInfo        Level = "info"
	LevelWarn        Level = "warn"
	LevelError       Level = "error"
)

// Config contains logging-related configuration options. Empty fields defer
// to the command line defaults.
type Config struct {
	Format Format `mapstructure:"format"`
	Level  Level  `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// Format represents the logging output format
type Format string

// Level represents the logging verbosity level
type Level string

func (f Format) String() string {
	return string(f)
}

func (l Level) String() string {
	return string(l)
}

// IsValid checks if the Format is valid
func (f Format) IsValid() bool {
	switch f {
	case FormatUnspecified, FormatText, FormatJSON:
		return true
	default:
		return false
	}
}

// IsValid checks if the Level is valid
func (l Level) IsValid() bool {
	switch l {
	case LevelUnspecified, LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true
	default:
		return false
	}
}

// SlogLevel maps the level onto slog. Unspecified and unknown levels map to Info.
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FormatFromString converts a string to a Format
func FormatFromString(format string) (Format, error) {
	switch format {
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	case "":
		return FormatUnspecified, nil
	default:
		return FormatUnspecified, fmt.Errorf("%w: %s", ErrInvalidLogFormat, format)
	}
}

// LevelFromString converts a string to a Level
func LevelFromString(level string) (Level, error) {
	switch level {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "":
		return LevelUnspecified, nil
	default:
		return LevelUnspecified, fmt.Errorf("%w: %s", ErrInvalidLogLevel, level)
	}
}

// Merge returns c with empty fields filled from fallback.
func (c Config) Merge(fallback Config) Config {
	if c.Format == FormatUnspecified {
		c.Format = fallback.Format
	}
	if c.Level == LevelUnspecified {
		c.Level = fallback.Level
	}
	if c.Output == "" {
		c.Output = fallback.Output
	}
	return c
}
