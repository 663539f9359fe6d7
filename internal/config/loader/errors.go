package loader

import (
	"errors"
	"fmt"
)

var (
	ErrNoSourceProvided     = errors.New("no source provided to loader")
	ErrFileNotFound         = errors.New("config file does not exist")
	ErrUnsupportedExtension = errors.New("unsupported config extension")
	ErrParseToml            = errors.New("failed to parse TOML")
	ErrParseYaml            = errors.New("failed to parse YAML")
)

// FormatFileError creates an error with file path context
func FormatFileError(err error, path string) error {
	return fmt.Errorf("%w: %s", err, path)
}
