// Package lint turns the text printed by a flake8-compatible linter into diagnostics.
package lint

import (
	"fmt"
	"math"
)

// Source tags every diagnostic produced by this module.
const Source = "cornflakes"

// FullLineEnd is the end character used for ranges covering a whole line.
const FullLineEnd = math.MaxInt32

// Severity mirrors the editor severity scale.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityHint:
		return "hint"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Position is a zero-based line/character pair.
type Position struct {
	Line      int
	Character int
}

// Range is a half-open span inside a document.
type Range struct {
	Start Position
	End   Position
}

// LineRange returns a range spanning all of line.
func LineRange(line int) Range {
	return Range{
		Start: Position{Line: line, Character: 0},
		End:   Position{Line: line, Character: FullLineEnd},
	}
}

// Diagnostic is one finding reported for a document.
type Diagnostic struct {
	Range    Range
	Severity Severity
	Message  string
	Code     string
	Source   string
}

// Line returns the zero-based line the diagnostic starts on.
func (d Diagnostic) Line() int {
	return d.Range.Start.Line
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s %s", d.Line()+1, d.Code, d.Message)
}
