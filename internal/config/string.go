package config

import (
	"fmt"

	"github.com/atlanticdynamic/cornflakes/internal/fancy"
)

// String returns a pretty-printed tree representation of the settings
func (s *Settings) String() string {
	return SettingsTree(s)
}

// SettingsTree renders the settings as a lipgloss tree.
func SettingsTree(s *Settings) string {
	t := fancy.Tree()
	t.Root(fancy.RootStyle.Render(fmt.Sprintf("Cornflakes Settings (%s)", s.Version)))

	t.Child(s.Logging.ToTree().Tree())

	rc := s.RunConfig()
	linter := fancy.NewComponentTree(fancy.HeaderStyle.Render("Linter"))
	linter.AddChild(fmt.Sprintf("Executable: %s", fancy.ExecutableText(rc.Executable)))
	linter.AddChild(fmt.Sprintf("Run: %s", fancy.TriggerText(rc.Trigger.String())))
	if d := rc.Trigger.Debounce(); d > 0 {
		linter.AddChild(fancy.InfoStyle.Render(fmt.Sprintf("debounce %s", d)))
	}
	if rc.Timeout > 0 {
		linter.AddChild(fmt.Sprintf("Timeout: %s", rc.Timeout))
	} else {
		linter.AddChild("Timeout: none")
	}
	if rc.MaxOutputBytes > 0 {
		linter.AddChild(fmt.Sprintf("Max output: %d bytes", rc.MaxOutputBytes))
	} else {
		linter.AddChild("Max output: unlimited")
	}
	linter.AddChild(fmt.Sprintf("Language: %s", s.LanguageID()))
	t.Child(linter.Tree())

	return t.String()
}
