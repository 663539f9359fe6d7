package logs

import (
	"errors"
	"fmt"
	"strings"
)

// Validate reports every invalid field at once.
func (lc *Config) Validate() error {
	var errs []error
	if !lc.Format.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidLogFormat, lc.Format))
	}
	if !lc.Level.IsValid() {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidLogLevel, lc.Level))
	}
	if err := validateOutput(lc.Output); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// validateOutput accepts the standard streams, file:// URLs and anything that
// contains a path separator. Other URL schemes are rejected.
func validateOutput(output string) error {
	switch output {
	case "", "stdout", "stderr":
		return nil
	}
	if scheme, rest, ok := strings.Cut(output, "://"); ok {
		if strings.EqualFold(scheme, "file") && rest != "" {
			return nil
		}
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLogOutput, scheme)
	}
	if strings.ContainsAny(output, `/\`) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidLogOutput, output)
}
