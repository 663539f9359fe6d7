package editor

import (
	"path/filepath"
	"strings"
)

const (
	LanguagePython    = "python"
	LanguagePlaintext = "plaintext"
)

// LanguageForPath guesses the language of a file from its extension.
// Notebooks report python since their code cells are what gets linted.
func LanguageForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".pyi", ".pyw", ".ipynb":
		return LanguagePython
	default:
		return LanguagePlaintext
	}
}

// IsNotebook reports whether path names a Jupyter notebook.
func IsNotebook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".ipynb")
}

// LoadDocument builds the right Document kind for a file's content.
func LoadDocument(path string, data []byte) (Document, error) {
	if IsNotebook(path) {
		return LoadNotebook(path, data)
	}
	return NewTextDocument(path, LanguageForPath(path), string(data)), nil
}
