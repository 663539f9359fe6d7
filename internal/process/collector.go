package process

import (
	"bytes"
	"sync"
)

// collector gathers the combined output of a process. Writes from stdout and
// stderr land in the order they arrive. A positive maxBytes keeps only the
// last maxBytes bytes, since the linter's summary line comes last.
type collector struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	maxBytes  int
	truncated bool
}

func newCollector(maxBytes int) *collector {
	return &collector{maxBytes: maxBytes}
}

// Write implements io.Writer. It always reports len(p) so the process is
// never blocked by a full buffer.
func (c *collector) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(p)
	if c.maxBytes > 0 && len(p) > c.maxBytes {
		p = p[len(p)-c.maxBytes:]
		c.truncated = true
		c.buf.Reset()
	}
	if _, err := c.buf.Write(p); err != nil {
		return 0, err
	}
	if over := c.buf.Len() - c.maxBytes; c.maxBytes > 0 && over > 0 {
		c.buf.Next(over)
		c.truncated = true
	}
	return n, nil
}

func (c *collector) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

func (c *collector) Truncated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.truncated
}
