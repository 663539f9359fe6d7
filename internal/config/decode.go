package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode converts a parsed settings map into Settings. Keys absent from raw
// keep their defaults; unknown keys are rejected.
func Decode(raw map[string]any) (*Settings, error) {
	settings := NewDefault()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused: true,
		Result:      settings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	if settings.Version == "" {
		settings.Version = VersionLatest
	}

	return settings, nil
}
