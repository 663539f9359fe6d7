package config

import (
	"fmt"
	"io"

	"github.com/atlanticdynamic/cornflakes/internal/config/loader"
)

// NewConfig loads settings from a TOML or YAML file
func NewConfig(filePath string) (*Settings, error) {
	ld, err := loader.NewLoaderFromFilePath(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	return newFromLoader(ld)
}

// NewConfigFromBytes loads settings from TOML bytes
func NewConfigFromBytes(data []byte) (*Settings, error) {
	ld, err := loader.NewLoaderFromBytes(data, func(data []byte) loader.Loader {
		return loader.NewTomlLoader(data)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	return newFromLoader(ld)
}

// NewConfigFromReader loads settings from an io.Reader providing TOML data
func NewConfigFromReader(reader io.Reader) (*Settings, error) {
	ld, err := loader.NewLoaderFromReader(reader, func(data []byte) loader.Loader {
		return loader.NewTomlLoader(data)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	return newFromLoader(ld)
}

func newFromLoader(ld loader.Loader) (*Settings, error) {
	raw, err := ld.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}

	settings, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToValidateConfig, err)
	}

	return settings, nil
}
