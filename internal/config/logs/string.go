package logs

import (
	"fmt"

	"github.com/atlanticdynamic/cornflakes/internal/fancy"
)

// String returns a string representation of the log configuration
func (lc *Config) String() string {
	return fmt.Sprintf("Log Config: format=%s, level=%s, output=%s", lc.Format, lc.Level, lc.Output)
}

// ToTree returns a tree visualization of the log configuration
func (lc *Config) ToTree() *fancy.ComponentTree {
	tree := fancy.NewComponentTree(fancy.HeaderStyle.Render("Logging"))

	tree.AddChild(fmt.Sprintf("Format: %s", orUnset(lc.Format.String())))
	tree.AddChild(fmt.Sprintf("Level: %s", orUnset(lc.Level.String())))
	tree.AddChild(fmt.Sprintf("Output: %s", orUnset(lc.Output)))

	return tree
}

func orUnset(s string) string {
	if s == "" {
		return fancy.InfoStyle.Render("(default)")
	}
	return s
}
