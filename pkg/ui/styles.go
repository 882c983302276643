// Package ui provides the colored console output for fedora-postinstall.
// All user-visible progress is single-line, severity-tagged messages.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Styles for console messages.
var (
	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	StepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("40"))

	WarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")).
			Bold(true)
)

// Printer writes severity-tagged messages to a single destination.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Default returns a printer writing to stdout.
func Default() *Printer {
	return &Printer{out: os.Stdout}
}

// Infof prints an informational message.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintln(p.out, InfoStyle.Render("[INFO]")+" "+fmt.Sprintf(format, args...))
}

// Stepf prints a module/step heading.
func (p *Printer) Stepf(format string, args ...any) {
	fmt.Fprintln(p.out, StepStyle.Render("==>")+" "+fmt.Sprintf(format, args...))
}

// Warnf prints a warning message.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.out, WarnStyle.Render("[WARN]")+" "+fmt.Sprintf(format, args...))
}

// Errorf prints an error message.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.out, ErrorStyle.Render("[ERROR]")+" "+fmt.Sprintf(format, args...))
}

// Successf prints a completion message.
func (p *Printer) Successf(format string, args ...any) {
	fmt.Fprintln(p.out, SuccessStyle.Render("[OK]")+" "+fmt.Sprintf(format, args...))
}
