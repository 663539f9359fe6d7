// Package writers resolves the logging "output" setting to a writer.
package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriterType represents the type of writer to create
type WriterType string

const (
	WriterTypeStdout WriterType = "stdout"
	WriterTypeStderr WriterType = "stderr"
	WriterTypeFile   WriterType = "file"
)

// CreateWriter returns a writer for the logging output setting:
//   - "stderr" or "" - os.Stderr
//   - "stdout" - os.Stdout, mixed with lint results
//   - "file:///path/to/file" or a path containing a separator - appends to the file
//
// Closing a standard stream writer does nothing.
func CreateWriter(output string) (io.WriteCloser, error) {
	switch ParseWriterType(output) {
	case WriterTypeStderr:
		return nopCloser{os.Stderr}, nil
	case WriterTypeStdout:
		return nopCloser{os.Stdout}, nil
	}

	if strings.HasPrefix(output, "file://") {
		return createFileWriter(strings.TrimPrefix(output, "file://"))
	}
	if isFilePath(output) {
		return createFileWriter(output)
	}
	return nil, fmt.Errorf("unsupported output format: %s", output)
}

// ParseWriterType determines the writer type from an output string
func ParseWriterType(output string) WriterType {
	switch output {
	case "", "stderr":
		return WriterTypeStderr
	case "stdout":
		return WriterTypeStdout
	default:
		return WriterTypeFile
	}
}

func isFilePath(path string) bool {
	if strings.Contains(path, "://") {
		return false
	}
	return strings.ContainsAny(path, `/\`)
}

// createFileWriter opens path for appending, creating parent directories.
func createFileWriter(path string) (io.WriteCloser, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return file, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
