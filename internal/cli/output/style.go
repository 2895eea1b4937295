package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Heading writes a styled section heading. Headings are only written for
// table output so JSON and CSV stay machine-readable.
func Heading(w io.Writer, format Format, text string) {
	if format != FormatTable {
		return
	}
	_, _ = fmt.Fprintln(w, headingStyle.Render(text))
}

// Hint writes a dimmed note under the same conditions as Heading.
func Hint(w io.Writer, format Format, text string) {
	if format != FormatTable {
		return
	}
	_, _ = fmt.Fprintln(w, hintStyle.Render(text))
}
