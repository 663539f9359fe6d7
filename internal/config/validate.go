package config

import (
	"errors"
	"fmt"

	"github.com/atlanticdynamic/cornflakes/internal/trigger"
)

// Validate checks the settings and reports every problem at once.
func (s *Settings) Validate() error {
	if s.Version == "" {
		s.Version = VersionUnknown
	}

	if s.Version != VersionLatest {
		return fmt.Errorf("%w: %s", ErrUnsupportedConfigVer, s.Version)
	}

	errz := []error{}

	if err := s.Logging.Validate(); err != nil {
		errz = append(errz, fmt.Errorf("logging: %w", err))
	}

	if err := s.Linter.Validate(); err != nil {
		errz = append(errz, fmt.Errorf("linter: %w", err))
	}

	return errors.Join(errz...)
}

// Validate checks the linter section. An unknown run value is rejected here
// even though trigger.Parse would quietly treat it as off.
func (l *Linter) Validate() error {
	errz := []error{}

	if l.ExecutablePath == "" {
		errz = append(errz, ErrEmptyExecutable)
	}

	switch l.Run {
	case trigger.OnSaveValue, trigger.OnTypeValue, trigger.OffValue:
	default:
		errz = append(errz, fmt.Errorf("%w: %q", ErrInvalidRunTrigger, l.Run))
	}

	if l.Timeout < 0 {
		errz = append(errz, fmt.Errorf("timeout %s: %w", l.Timeout, ErrNegativeDuration))
	}

	if l.MaxOutputBytes < 0 {
		errz = append(errz, fmt.Errorf("%w: %d", ErrNegativeOutputLimit, l.MaxOutputBytes))
	}

	return errors.Join(errz...)
}
