package lint

import (
	"fmt"

	"github.com/atlanticdynamic/cornflakes/internal/fancy"
)

// Render draws the diagnostics of one file as a tree. Lines are shown 1-based.
func Render(path string, diags []Diagnostic) string {
	count := fmt.Sprintf("(%d violations)", len(diags))
	if len(diags) == 1 {
		count = "(1 violation)"
	}

	ft := fancy.FileTree(path, count)
	if len(diags) == 0 {
		ft.AddChild(fancy.ValidText("clean"))
	}
	for _, d := range diags {
		ft.AddChild(fmt.Sprintf("%d: %s %s %s",
			d.Line()+1,
			fancy.CodeText(d.Code),
			fancy.TruncateString(d.Message, 120),
			fancy.SeverityText(d.Severity.String()),
		))
	}
	return ft.String()
}
