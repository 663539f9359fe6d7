package lint

import (
	"regexp"
	"strconv"
)

// StdinPath is the file name the linter prints for source read from standard input.
const StdinPath = "stdin"

var (
	summaryPattern = regexp.MustCompile(`Found a total of \d+ violations and reported (\d+)$`)
	findingPattern = regexp.MustCompile(`^(.+):(\d+):(\d+):\s(\S+\d+):?\s(.+)$`)
)

// Finding is one parsed "<path>:<line>:<column>: <code> <message>" line.
// Line and Column are 1-based as printed by the tool.
type Finding struct {
	Path    string
	Line    int
	Column  int
	Code    string
	Message string
}

// ParseSummary extracts the reported violation count from a verbose summary line.
func ParseSummary(line string) (int, bool) {
	m := summaryPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseFinding extracts a finding from a single output line.
func ParseFinding(line string) (Finding, bool) {
	m := findingPattern.FindStringSubmatch(line)
	if m == nil {
		return Finding{}, false
	}
	lineNo, err := strconv.Atoi(m[2])
	if err != nil {
		return Finding{}, false
	}
	col, err := strconv.Atoi(m[3])
	if err != nil {
		return Finding{}, false
	}
	return Finding{
		Path:    m[1],
		Line:    lineNo,
		Column:  col,
		Code:    m[4],
		Message: m[5],
	}, true
}

// Diagnostic converts f into a full-line informational diagnostic.
func (f Finding) Diagnostic() Diagnostic {
	return Diagnostic{
		Range:    LineRange(max(f.Line-1, 0)),
		Severity: SeverityInformation,
		Message:  f.Message,
		Code:     f.Code,
		Source:   Source,
	}
}
