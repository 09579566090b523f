package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic formatting to text.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if NoColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...any) string {
	return f.Sprint(fmt.Sprintf(format, a...))
}

// NoColor reports whether color output is disabled, either through the
// NO_COLOR environment variable or fatih/color's terminal detection.
func NoColor() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Semantic formatters for report output.
var (
	// Path formats file paths and sheet names.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Key formats record keys.
	// Cyan with color, 'single quotes' without.
	Key = Formatter{color.New(color.FgCyan), "'", "'"}

	// Added formats inserted records.
	Added = Formatter{color.New(color.FgGreen), "", ""}

	// Deleted formats removed records.
	Deleted = Formatter{color.New(color.FgRed), "", ""}

	// Kept formats records left untouched.
	Kept = Formatter{color.New(color.FgHiBlack), "", ""}

	// Success formats success indicators and messages.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Warning formats warnings.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Heading formats section titles.
	Heading = Formatter{color.New(color.Bold), "", ""}

	// Muted formats de-emphasized or secondary text.
	// Gray with color, (parentheses) without.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
