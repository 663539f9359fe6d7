package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidNotebook is returned when a notebook file cannot be decoded.
var ErrInvalidNotebook = errors.New("invalid notebook")

// cellSeparator joins the cells of a notebook into one lintable text.
const cellSeparator = "\n\n"

// Cell is one notebook cell.
type Cell struct {
	LanguageID string
	Source     string
}

// NotebookDocument is a document made of cells. Only the cells written in
// the notebook's language are linted.
type NotebookDocument struct {
	uri        string
	fileName   string
	languageID string
	cells      []Cell
}

var _ Document = NotebookDocument{}

// NewNotebookDocument creates a notebook whose target language is languageID.
func NewNotebookDocument(fileName, languageID string, cells []Cell) NotebookDocument {
	return NotebookDocument{
		uri:        URIForPath(fileName),
		fileName:   fileName,
		languageID: languageID,
		cells:      cells,
	}
}

func (n NotebookDocument) URI() string        { return n.uri }
func (n NotebookDocument) FileName() string   { return n.fileName }
func (n NotebookDocument) LanguageID() string { return n.languageID }

// Cells returns a copy of the notebook's cells.
func (n NotebookDocument) Cells() []Cell {
	out := make([]Cell, len(n.cells))
	copy(out, n.cells)
	return out
}

// Text joins the sources of the cells in the notebook's language with a blank line.
func (n NotebookDocument) Text() string {
	parts := make([]string, 0, len(n.cells))
	for _, c := range n.cells {
		if c.LanguageID == n.languageID {
			parts = append(parts, c.Source)
		}
	}
	return strings.Join(parts, cellSeparator)
}

// ipynb is the subset of the Jupyter notebook format cornflakes reads.
type ipynb struct {
	Cells []struct {
		CellType string          `json:"cell_type"`
		Source   json.RawMessage `json:"source"`
	} `json:"cells"`
	Metadata struct {
		KernelSpec struct {
			Language string `json:"language"`
		} `json:"kernelspec"`
		LanguageInfo struct {
			Name string `json:"name"`
		} `json:"language_info"`
	} `json:"metadata"`
}

// LoadNotebook decodes a .ipynb file. Code cells take the notebook's kernel
// language, python when the metadata does not say; other cells take their
// cell type as language.
func LoadNotebook(path string, data []byte) (NotebookDocument, error) {
	var nb ipynb
	if err := json.Unmarshal(data, &nb); err != nil {
		return NotebookDocument{}, fmt.Errorf("%w: %s: %w", ErrInvalidNotebook, path, err)
	}

	lang := nb.Metadata.LanguageInfo.Name
	if lang == "" {
		lang = nb.Metadata.KernelSpec.Language
	}
	if lang == "" {
		lang = LanguagePython
	}

	cells := make([]Cell, 0, len(nb.Cells))
	for i, c := range nb.Cells {
		src, err := cellSource(c.Source)
		if err != nil {
			return NotebookDocument{}, fmt.Errorf("%w: %s: cell %d: %w", ErrInvalidNotebook, path, i, err)
		}
		cellLang := c.CellType
		if c.CellType == "code" {
			cellLang = lang
		}
		cells = append(cells, Cell{LanguageID: cellLang, Source: src})
	}

	return NewNotebookDocument(path, lang, cells), nil
}

// cellSource accepts both encodings the format allows: a string or a list of lines.
func cellSource(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return "", err
	}
	return strings.Join(lines, ""), nil
}
