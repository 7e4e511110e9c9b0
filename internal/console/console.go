// Package console prints the heading banner and the exit prompt.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Title is the default heading text.
const Title = "CheckGPU"

var headingStyle = lipgloss.NewStyle().
	Bold(true).
	Border(lipgloss.NormalBorder()).
	Padding(0, 4)

// Heading prints a boxed title followed by a blank line.
func Heading(w io.Writer, title string) {
	if title == "" {
		title = Title
	}
	fmt.Fprintln(w, headingStyle.Render(title))
	fmt.Fprintln(w)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Prompt prints msg and waits for a line on in. It returns immediately
// when in is not a terminal.
func Prompt(in *os.File, out io.Writer, msg string) {
	if !IsTerminal(in) {
		return
	}
	fmt.Fprint(out, msg)
	_, _ = bufio.NewReader(in).ReadString('\n')
}
