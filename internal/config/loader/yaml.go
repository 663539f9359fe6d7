package loader

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YamlLoader implements the Loader interface for YAML files.
type YamlLoader struct {
	source []byte
}

func NewYamlLoader(source []byte) *YamlLoader {
	return &YamlLoader{source: source}
}

func (l *YamlLoader) Load() (map[string]any, error) {
	if len(l.source) == 0 {
		return nil, ErrNoSourceProvided
	}

	var configMap map[string]any
	if err := yaml.Unmarshal(l.source, &configMap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseYaml, err)
	}
	if configMap == nil {
		configMap = map[string]any{}
	}
	return configMap, nil
}
