// Package loader reads a settings document from TOML or YAML into a generic
// map, leaving the typed decoding to the config package.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LoaderFunc func([]byte) Loader

// Loader parses one settings document.
type Loader interface {
	// Load parses the source into a map keyed by section.
	Load() (map[string]any, error)
}

// NewLoaderFromBytes creates a new Loader with the provided bytes
func NewLoaderFromBytes(data []byte, lodFunc LoaderFunc) (Loader, error) {
	if len(data) == 0 {
		return nil, ErrNoSourceProvided
	}
	return lodFunc(data), nil
}

// NewLoaderFromReader creates a new Loader from an io.Reader
func NewLoaderFromReader(reader io.Reader, lodFunc LoaderFunc) (Loader, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read config data from reader: %w", err)
	}
	return NewLoaderFromBytes(data, lodFunc)
}

// NewLoaderFromFilePath picks a Loader by file extension.
func NewLoaderFromFilePath(filePath string) (Loader, error) {
	lodFunc, err := LoaderForExtension(filepath.Ext(filePath))
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, FormatFileError(ErrFileNotFound, filePath)
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", filePath, err)
	}

	return NewLoaderFromBytes(data, lodFunc)
}

// LoaderForExtension returns the constructor for a file extension such as ".toml".
func LoaderForExtension(ext string) (LoaderFunc, error) {
	switch strings.ToLower(ext) {
	case ".toml":
		return func(data []byte) Loader { return NewTomlLoader(data) }, nil
	case ".yaml", ".yml":
		return func(data []byte) Loader { return NewYamlLoader(data) }, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedExtension, ext)
	}
}
