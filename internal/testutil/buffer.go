// Package testutil holds helpers shared by tests that capture output from
// goroutines, such as the watch loop publishing lint results.
package testutil

import (
	"bytes"
	"strings"
	"sync"
)

// SyncBuffer is an io.Writer that may be written and read concurrently.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Contains reports whether every substring has been written so far.
func (b *SyncBuffer) Contains(substrs ...string) bool {
	s := b.String()
	for _, sub := range substrs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// Lines returns the non-empty lines written so far.
func (b *SyncBuffer) Lines() []string {
	var lines []string
	for line := range strings.SplitSeq(b.String(), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
