package fswatch

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/viant/afs"
)

// ignoreMatcher applies the .gitignore found at a watched root.
type ignoreMatcher struct {
	root    string
	matcher gitignore.Matcher
}

// loadIgnore reads root/.gitignore. A missing file yields a matcher that
// never ignores.
func loadIgnore(ctx context.Context, fs afs.Service, root string) *ignoreMatcher {
	m := &ignoreMatcher{root: root}

	data, err := fs.DownloadWithURL(ctx, filepath.Join(root, ".gitignore"))
	if err != nil || len(data) == 0 {
		return m
	}

	var patterns []gitignore.Pattern
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if len(patterns) > 0 {
		m.matcher = gitignore.NewMatcher(patterns)
	}
	return m
}

// ignored reports whether path, somewhere below the root, matches a pattern.
func (m *ignoreMatcher) ignored(path string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	rel, err := filepath.Rel(m.root, path)
	if err != nil || rel == "." {
		return false
	}
	return m.matcher.Match(splitPath(rel), isDir)
}

func splitPath(path string) []string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" && part != "." {
			segments = append(segments, part)
		}
	}
	return segments
}
