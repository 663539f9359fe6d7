package orchestrator

import (
	"fmt"
	"io"
	"sync"

	"github.com/atlanticdynamic/cornflakes/internal/lint"
)

// Publisher receives the diagnostic set of a document each time it is
// replaced or removed. Calls are serialized; implementations must not call
// back into the Orchestrator.
type Publisher interface {
	Publish(uri string, diags []lint.Diagnostic)
	Clear(uri string)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, []lint.Diagnostic) {}
func (nopPublisher) Clear(string)                      {}

// WriterPublisher renders published diagnostics as a tree on a writer.
type WriterPublisher struct {
	mu sync.Mutex
	w  io.Writer
	// label maps a URI to the name printed for it.
	label func(uri string) string
}

// NewWriterPublisher prints to w. A nil label prints the URI.
func NewWriterPublisher(w io.Writer, label func(uri string) string) *WriterPublisher {
	if label == nil {
		label = func(uri string) string { return uri }
	}
	return &WriterPublisher{w: w, label: label}
}

func (p *WriterPublisher) Publish(uri string, diags []lint.Diagnostic) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.w, lint.Render(p.label(uri), diags))
}

// Clear prints nothing; closed documents simply stop being reported.
func (p *WriterPublisher) Clear(string) {}
