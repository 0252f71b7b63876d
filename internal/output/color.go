package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Printer handles colored output
type Printer struct {
	out io.Writer
	err io.Writer

	success *color.Color
	failure *color.Color
	warning *color.Color
	info    *color.Color
	detail  *color.Color
}

// NewPrinter creates a printer that colors each stream only when color is
// enabled and that stream is a terminal.
func NewPrinter(out, err io.Writer, useColor bool) *Printer {
	return newPrinter(out, err, useColor && IsTerminal(out), useColor && IsTerminal(err))
}

// NewPrinterWithWriters creates a printer with custom writers (for testing)
func NewPrinterWithWriters(out, err io.Writer, useColor bool) *Printer {
	return newPrinter(out, err, useColor, useColor)
}

func newPrinter(out, err io.Writer, outColor, errColor bool) *Printer {
	p := &Printer{
		out:     out,
		err:     err,
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		detail:  color.New(color.FgHiBlack),
	}
	setColor(outColor, p.success, p.info, p.detail)
	setColor(errColor, p.failure, p.warning)
	return p
}

func setColor(enabled bool, colors ...*color.Color) {
	for _, c := range colors {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Success prints a success message in green
func (p *Printer) Success(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, p.success.Sprint("✓ "+fmt.Sprintf(format, args...)))
}

// Error prints an error message in red
func (p *Printer) Error(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.err, p.failure.Sprint("✗ "+fmt.Sprintf(format, args...)))
}

// Warning prints a warning message in yellow
func (p *Printer) Warning(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.err, p.warning.Sprint("⚠ "+fmt.Sprintf(format, args...)))
}

// Info prints an info message in cyan
func (p *Printer) Info(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, p.info.Sprint("→ "+fmt.Sprintf(format, args...)))
}

// Detail prints an indented detail message in gray
func (p *Printer) Detail(format string, args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, p.detail.Sprint("  "+fmt.Sprintf(format, args...)))
}

// IsTerminal reports whether w is a terminal and NO_COLOR is unset. Writers
// without a file descriptor are never terminals.
func IsTerminal(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
