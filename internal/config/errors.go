package config

import "errors"

var (
	ErrFailedToLoadConfig     = errors.New("failed to load config")
	ErrFailedToValidateConfig = errors.New("failed to validate config")
	ErrUnsupportedConfigVer   = errors.New("unsupported config version")
	ErrEmptyExecutable        = errors.New("executablePath must not be empty")
	ErrNegativeDuration       = errors.New("duration must not be negative")
	ErrNegativeOutputLimit    = errors.New("maxOutputBytes must not be negative")
	ErrInvalidRunTrigger      = errors.New("invalid run trigger")
)
