// Package editor models the host environment the linter runs inside: open
// documents, their lifecycle events and user-visible messages.
package editor

import (
	"net/url"
	"path/filepath"
)

// Document is an open text buffer.
type Document interface {
	// URI identifies the document; it is the key diagnostics are stored under.
	URI() string
	// FileName is the path on disk the document was opened from.
	FileName() string
	LanguageID() string
	Text() string
}

// TextDocument is a plain source file.
type TextDocument struct {
	uri        string
	fileName   string
	languageID string
	text       string
}

var _ Document = TextDocument{}

// NewTextDocument creates a document for a file on disk.
func NewTextDocument(fileName, languageID, text string) TextDocument {
	return TextDocument{
		uri:        URIForPath(fileName),
		fileName:   fileName,
		languageID: languageID,
		text:       text,
	}
}

func (d TextDocument) URI() string        { return d.uri }
func (d TextDocument) FileName() string   { return d.fileName }
func (d TextDocument) LanguageID() string { return d.languageID }
func (d TextDocument) Text() string       { return d.text }

// WithText returns a copy of the document holding new content.
func (d TextDocument) WithText(text string) TextDocument {
	d.text = text
	return d
}

// URIForPath builds a file URI. Relative paths are made absolute first when possible.
func URIForPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
