// Package ui prints styled installer output.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes status lines to a terminal. Colors are dropped automatically
// when the writer is not a terminal.
type Printer struct {
	w io.Writer

	info    lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	step    lipgloss.Style
	cmd     lipgloss.Style
	file    lipgloss.Style
	bold    lipgloss.Style
	banner  lipgloss.Style
	done    lipgloss.Style
}

// New creates a Printer writing to w
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		info:    r.NewStyle().Foreground(lipgloss.Color("4")),
		success: r.NewStyle().Foreground(lipgloss.Color("2")),
		err:     r.NewStyle().Foreground(lipgloss.Color("1")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("3")),
		step:    r.NewStyle().Foreground(lipgloss.Color("6")),
		cmd:     r.NewStyle().Foreground(lipgloss.Color("3")),
		file:    r.NewStyle().Foreground(lipgloss.Color("5")),
		bold:    r.NewStyle().Bold(true),
		banner: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14")).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(0, 8),
		done: r.NewStyle().
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("2")).
			Padding(0, 12),
	}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Info prints an informational line
func (p *Printer) Info(format string, args ...any) {
	p.line(p.info.Render("ℹ"), format, args...)
}

// Success prints a success line
func (p *Printer) Success(format string, args ...any) {
	p.line(p.success.Render("✓"), format, args...)
}

// Error prints an error line
func (p *Printer) Error(format string, args ...any) {
	p.line(p.err.Render("✗"), format, args...)
}

// Warn prints a warning line
func (p *Printer) Warn(format string, args ...any) {
	p.line(p.warn.Render("⚠"), format, args...)
}

// Step prints a section heading preceded by a blank line
func (p *Printer) Step(format string, args ...any) {
	fmt.Fprintln(p.w)
	p.line(p.step.Render("→"), format, args...)
}

// Blank prints an empty line
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Println prints an unstyled line
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Cmd styles a command name
func (p *Printer) Cmd(s string) string {
	return p.cmd.Render(s)
}

// File styles a path
func (p *Printer) File(s string) string {
	return p.file.Render(s)
}

// Bold styles text in bold
func (p *Printer) Bold(s string) string {
	return p.bold.Render(s)
}

// Banner prints the installer banner
func (p *Printer) Banner() {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.banner.Render("Claude Code Plus Installer"))
	fmt.Fprintln(p.w)
}

// Completion prints the installation-complete box
func (p *Printer) Completion() {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.done.Render("Installation Complete!"))
	fmt.Fprintln(p.w)
}

func (p *Printer) line(symbol, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	fmt.Fprintf(p.w, "%s %s\n", symbol, strings.TrimRight(msg, "\n"))
}
