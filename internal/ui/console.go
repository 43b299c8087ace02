package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Console writes user-facing lines: informational output to out and
// warnings to errOut. Lines are styled only when the writer is a terminal.
type Console struct {
	out    io.Writer
	errOut io.Writer
	warn   lipgloss.Style
	ok     lipgloss.Style
	styled bool
}

// NewConsole creates a console writing to out and errOut.
func NewConsole(out, errOut io.Writer) *Console {
	return &Console{
		out:    out,
		errOut: errOut,
		warn:   lipgloss.NewRenderer(errOut).NewStyle().Foreground(lipgloss.Color("3")),
		ok:     lipgloss.NewRenderer(out).NewStyle().Foreground(lipgloss.Color("2")),
		styled: isTerminal(out) && isTerminal(errOut),
	}
}

// Warn prints a warning line.
func (c *Console) Warn(msg string) {
	if c.styled {
		msg = c.warn.Render(msg)
	}
	_, _ = fmt.Fprintln(c.errOut, msg)
}

// Log prints an informational line.
func (c *Console) Log(msg string) {
	_, _ = fmt.Fprintln(c.out, msg)
}

// Logf prints a formatted informational line.
func (c *Console) Logf(format string, args ...any) {
	c.Log(fmt.Sprintf(format, args...))
}

// Success prints a completion line.
func (c *Console) Success(msg string) {
	if c.styled {
		msg = c.ok.Render(msg)
	}
	c.Log(msg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}
