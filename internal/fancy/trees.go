package fancy

import (
	"github.com/charmbracelet/lipgloss/tree"
)

// ComponentTree is a styled subtree for one section of a rendered report.
type ComponentTree struct {
	tree *tree.Tree
}

// NewComponentTree creates a new component tree with appropriate styling
func NewComponentTree(title string) *ComponentTree {
	return &ComponentTree{tree: Tree().Root(title)}
}

// Tree returns the underlying tree
func (c *ComponentTree) Tree() *tree.Tree {
	return c.tree
}

// AddChild adds a child node to the root branch
func (c *ComponentTree) AddChild(child any) *tree.Tree {
	return c.tree.Child(child)
}

func (c *ComponentTree) String() string {
	return c.tree.String()
}

// FileTree creates a tree rooted at a file path
func FileTree(path string, count string) *ComponentTree {
	return &ComponentTree{tree: BranchNode(path, count)}
}
