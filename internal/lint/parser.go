package lint

import "strings"

// ViolationCount returns the reported count from the first summary line in
// lines, or 0 when the tool printed no summary.
func ViolationCount(lines []string) int {
	for _, line := range lines {
		if n, ok := ParseSummary(line); ok {
			return n
		}
	}
	return 0
}

// Process converts linter output for filePath into diagnostics.
//
// Findings are only trusted when the summary reports at least one violation;
// output without a summary, or with a zero count, yields no diagnostics even
// if finding lines are present. Findings for other paths are dropped.
func Process(lines []string, filePath string) []Diagnostic {
	if ViolationCount(lines) == 0 {
		return []Diagnostic{}
	}

	diagnostics := []Diagnostic{}
	for _, line := range lines {
		f, ok := ParseFinding(line)
		if !ok {
			continue
		}
		if f.Path != filePath && f.Path != StdinPath {
			continue
		}
		diagnostics = append(diagnostics, f.Diagnostic())
	}
	return diagnostics
}

// SplitLines splits raw tool output into non-empty lines, accepting both
// "\n" and "\r\n" endings.
func SplitLines(output string) []string {
	raw := strings.Split(output, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
