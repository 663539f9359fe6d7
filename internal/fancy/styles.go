package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	RootStyle = lipgloss.NewStyle().
			Foreground(ColorFile).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorHeading).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorBranch)

	ComponentStyle = lipgloss.NewStyle().
			Foreground(ColorCount)

	ExecutableStyle = lipgloss.NewStyle().
			Foreground(ColorTool)

	TriggerStyle = lipgloss.NewStyle().
			Foreground(ColorTrigger)

	CodeStyle = lipgloss.NewStyle().
			Foreground(ColorCode).
			Bold(true)

	ValidStyle = lipgloss.NewStyle().
			Foreground(ColorClean)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorViolation)
)

// ExecutableText styles a linter executable path
func ExecutableText(text string) string {
	return ExecutableStyle.Render(text)
}

// TriggerText styles a run trigger name
func TriggerText(text string) string {
	return TriggerStyle.Render(text)
}

// CodeText styles a diagnostic code such as E501
func CodeText(text string) string {
	return CodeStyle.Render(text)
}

// ValidText styles valid status text (green)
func ValidText(text string) string {
	return ValidStyle.Render(text)
}

// ErrorText styles error text (red)
func ErrorText(text string) string {
	return ErrorStyle.Render(text)
}

// PathText styles file paths (gray)
func PathText(text string) string {
	return InfoStyle.Render(text)
}

// CountText styles count numbers (cyan)
func CountText(text string) string {
	return ComponentStyle.Render(text)
}

// SeverityText picks a style by severity name.
func SeverityText(severity string) string {
	switch severity {
	case "error":
		return ErrorStyle.Render(severity)
	case "warning":
		return WarningStyle.Render(severity)
	default:
		return InfoStyle.Render(severity)
	}
}
