// Package console prints the human-facing progress lines and diagnostics.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Printer writes colored, printf-style lines. Info green, Warn magenta,
// Error red, Debug cyan. Debug is a no-op unless enabled.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	debug  bool

	info  *color.Color
	warn  *color.Color
	fail  *color.Color
	trace *color.Color
}

// New returns a Printer writing progress to out and errors to errOut. Color is
// only used when out is a terminal and NO_COLOR is unset.
func New(out, errOut io.Writer, debug bool) *Printer {
	p := &Printer{
		out:    out,
		errOut: errOut,
		debug:  debug,
		info:   color.New(color.FgGreen),
		warn:   color.New(color.FgHiMagenta),
		fail:   color.New(color.FgRed),
		trace:  color.New(color.FgCyan),
	}
	if color.NoColor || !isTerminal(out) {
		for _, c := range []*color.Color{p.info, p.warn, p.fail, p.trace} {
			c.DisableColor()
		}
	}
	return p
}

// Out is the progress writer.
func (p *Printer) Out() io.Writer { return p.out }

// Printf writes an undecorated line fragment.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

func (p *Printer) Info(format string, a ...any) {
	p.info.Fprintf(p.out, format, a...)
}

func (p *Printer) Warn(format string, a ...any) {
	p.warn.Fprintf(p.out, format, a...)
}

func (p *Printer) Error(format string, a ...any) {
	p.fail.Fprintf(p.errOut, format, a...)
}

func (p *Printer) Debug(format string, a ...any) {
	if !p.debug {
		return
	}
	p.trace.Fprintf(p.out, format, a...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
