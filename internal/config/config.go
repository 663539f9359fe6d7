// Package config holds the cornflakes settings: where the linter lives, when
// it runs and how the process is logged.
package config

import (
	"time"

	"github.com/atlanticdynamic/cornflakes/internal/config/logs"
	"github.com/atlanticdynamic/cornflakes/internal/trigger"
)

const (
	// VersionLatest is the settings file schema version.
	VersionLatest = "v1"

	// VersionUnknown is used when no version is specified.
	VersionUnknown = "unknown"

	// Section is the editor settings section the keys live under.
	Section = "cornflakes"

	DefaultExecutablePath = "flake8"
	DefaultLanguageID     = "python"
	// DefaultMaxOutputBytes of zero reads linter output to completion.
	DefaultMaxOutputBytes = 0
)

// Settings is the full settings document.
type Settings struct {
	Version string      `mapstructure:"version"`
	Logging logs.Config `mapstructure:"logging"`
	Linter  Linter      `mapstructure:"linter"`
}

// Linter is the configuration surface read by the lint orchestrator.
type Linter struct {
	ExecutablePath string        `mapstructure:"executablePath"`
	Run            string        `mapstructure:"run"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxOutputBytes int           `mapstructure:"maxOutputBytes"`
	LanguageID     string        `mapstructure:"languageId"`
}

// RunConfig is the immutable snapshot a lint run is performed with. A new
// snapshot fully replaces the previous one.
type RunConfig struct {
	Executable     string
	Trigger        trigger.Trigger
	Timeout        time.Duration
	MaxOutputBytes int
}

// NewDefault returns settings populated with every default.
func NewDefault() *Settings {
	return &Settings{
		Version: VersionLatest,
		Linter: Linter{
			ExecutablePath: DefaultExecutablePath,
			Run:            trigger.OnSaveValue,
			MaxOutputBytes: DefaultMaxOutputBytes,
			LanguageID:     DefaultLanguageID,
		},
	}
}

// RunConfig takes a snapshot of the linter settings. A nil receiver yields
// the defaults.
func (s *Settings) RunConfig() RunConfig {
	if s == nil {
		s = NewDefault()
	}
	return RunConfig{
		Executable:     s.Linter.ExecutablePath,
		Trigger:        trigger.Parse(s.Linter.Run),
		Timeout:        s.Linter.Timeout,
		MaxOutputBytes: s.Linter.MaxOutputBytes,
	}
}

// LanguageID returns the target language, falling back to python.
func (s *Settings) LanguageID() string {
	if s == nil || s.Linter.LanguageID == "" {
		return DefaultLanguageID
	}
	return s.Linter.LanguageID
}

// Equals reports whether two settings documents are identical.
func (s *Settings) Equals(other *Settings) bool {
	if s == nil || other == nil {
		return s == other
	}
	return *s == *other
}

// Clone returns a copy that can be modified independently.
func (s *Settings) Clone() *Settings {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
