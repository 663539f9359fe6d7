package loader

import (
	"fmt"

	gotoml "github.com/pelletier/go-toml/v2"
)

// TomlLoader implements the Loader interface for TOML files.
type TomlLoader struct {
	source []byte
}

// NewTomlLoader creates a new TOML configuration loader
func NewTomlLoader(source []byte) *TomlLoader {
	return &TomlLoader{source: source}
}

func (l *TomlLoader) Load() (map[string]any, error) {
	if len(l.source) == 0 {
		return nil, ErrNoSourceProvided
	}

	var configMap map[string]any
	if err := gotoml.Unmarshal(l.source, &configMap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseToml, err)
	}
	return configMap, nil
}
