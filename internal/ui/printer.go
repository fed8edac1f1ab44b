// Package ui renders provisioning progress and prompts in the terminal.
//
// Output is styled with lipgloss: a colored marker per step outcome, dim
// detail lines in verbose mode, and a highlighted URL on success. The
// [Printer] implements both the pipeline's Reporter and Prompter, so one
// object carries the whole operator conversation.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"openhandsctl/internal/provision"
)

var (
	stepStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
	urlStyle  = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("42"))
)

// Printer writes styled progress output and reads prompt answers.
type Printer struct {
	out       io.Writer
	in        *bufio.Reader
	verbose   bool
	assumeYes bool
}

// NewPrinter creates a [Printer] writing to out and reading prompt answers
// from in.
func NewPrinter(out io.Writer, in io.Reader, verbose bool) *Printer {
	return &Printer{
		out:     out,
		in:      bufio.NewReader(in),
		verbose: verbose,
	}
}

// SetAssumeYes makes every prompt auto-accept, for unattended runs.
func (p *Printer) SetAssumeYes(yes bool) {
	p.assumeYes = yes
}

// SetVerbose toggles detail lines after construction.
func (p *Printer) SetVerbose(verbose bool) {
	p.verbose = verbose
}

// StepStart announces a step before its action runs.
func (p *Printer) StepStart(index, total int, name provision.StepName) {
	fmt.Fprintf(p.out, "%s %s\n", stepStyle.Render(fmt.Sprintf("[%d/%d]", index, total)), name)
}

// StepDone reports a step's recorded result.
func (p *Printer) StepDone(name provision.StepName, result provision.StepResult) {
	var marker string
	switch result.Outcome {
	case provision.Succeeded:
		marker = okStyle.Render("✓")
	case provision.Skipped:
		marker = warnStyle.Render("○")
	default:
		marker = failStyle.Render("✗")
	}

	line := fmt.Sprintf("  %s %s", marker, name)
	if result.Reason != "" {
		line += dimStyle.Render(" — " + firstLine(result.Reason))
	}
	fmt.Fprintln(p.out, line)

	// Multi-line reasons (log tails) are printed in full on failure.
	if result.Outcome == provision.Failed && strings.Contains(result.Reason, "\n") {
		fmt.Fprintln(p.out, dimStyle.Render(result.Reason))
	}
}

// Infof prints a detail line in verbose mode.
func (p *Printer) Infof(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintln(p.out, dimStyle.Render("    "+fmt.Sprintf(format, args...)))
}

// Warnf prints an advisory warning.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", warnStyle.Render("!"), fmt.Sprintf(format, args...))
}

// Confirm asks a yes/no question, defaulting to no. With assume-yes set the
// question is echoed and accepted without reading input.
func (p *Printer) Confirm(question string) bool {
	if p.assumeYes {
		fmt.Fprintf(p.out, "%s yes\n", question)
		return true
	}

	fmt.Fprintf(p.out, "%s [y/N]: ", question)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Success prints the final success banner with the published URL.
func (p *Printer) Success(url string) {
	fmt.Fprintf(p.out, "\n%s OpenHands is up: %s\n", okStyle.Render("✓"), urlStyle.Render(url))
}

// Failure prints the final failure banner naming the step the run died at.
func (p *Printer) Failure(step provision.StepName, reason string) {
	fmt.Fprintf(p.out, "\n%s provisioning aborted at step %s\n", failStyle.Render("✗"), step)
	if reason != "" {
		fmt.Fprintln(p.out, dimStyle.Render(reason))
	}
}

// Statusf prints a plain status line.
func (p *Printer) Statusf(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Checkf prints one readiness-check line with a pass or fail marker.
func (p *Printer) Checkf(ok bool, format string, args ...any) {
	marker := okStyle.Render("✓")
	if !ok {
		marker = failStyle.Render("✗")
	}
	fmt.Fprintf(p.out, "  %s %s\n", marker, fmt.Sprintf(format, args...))
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
