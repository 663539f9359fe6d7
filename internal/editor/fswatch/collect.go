package fswatch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atlanticdynamic/cornflakes/internal/editor"
	"github.com/viant/afs"
)

// Collect lists the python files and notebooks below roots in a stable
// order, the same set a Watcher would open. Hidden entries and paths matched
// by a root's .gitignore are skipped. Roots naming a file are always kept;
// missing roots are ignored.
func Collect(ctx context.Context, roots []string, includeHidden bool) ([]string, error) {
	return collectFiles(ctx, afs.New(), roots, includeHidden)
}

func collectFiles(ctx context.Context, service afs.Service, roots []string, includeHidden bool) ([]string, error) {
	var out []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, root)
			continue
		}

		ignore := loadIgnore(ctx, service, root)
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return err
			}
			if d.IsDir() {
				if path != root && (hidden(d.Name(), includeHidden) || ignore.ignored(path, true)) {
					return filepath.SkipDir
				}
				return nil
			}
			if hidden(d.Name(), includeHidden) ||
				editor.LanguageForPath(path) != editor.LanguagePython ||
				ignore.ignored(path, false) {
				return nil
			}
			out = append(out, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}

func hidden(name string, includeHidden bool) bool {
	return !includeHidden && strings.HasPrefix(name, ".")
}
