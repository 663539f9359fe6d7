package lint

type dedupeKey struct {
	line int
	code string
}

// Dedupe keeps the first diagnostic for each (line, code) pair, preserving order.
func Dedupe(diagnostics []Diagnostic) []Diagnostic {
	seen := make(map[dedupeKey]struct{}, len(diagnostics))
	out := make([]Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		k := dedupeKey{line: d.Line(), code: d.Code}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, d)
	}
	return out
}
