package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette for lint output, named by what each color marks. ANSI 256 codes.
var (
	ColorFile      = lipgloss.Color("39")  // file names and tree roots
	ColorHeading   = lipgloss.Color("15")  // section headings
	ColorMuted     = lipgloss.Color("250") // paths, hints, information severity
	ColorBranch    = lipgloss.Color("240") // tree branches
	ColorCount     = lipgloss.Color("45")  // counts and components
	ColorTool      = lipgloss.Color("201") // linter executable
	ColorTrigger   = lipgloss.Color("228") // run trigger
	ColorCode      = lipgloss.Color("208") // diagnostic codes like F401
	ColorClean     = lipgloss.Color("82")  // files without findings
	ColorWarning   = lipgloss.Color("220") // warning severity
	ColorViolation = lipgloss.Color("196") // errors and launch failures
)
