package main

import (
	"fmt"
	"io"
	"os"

	"github.com/davesmith10/alphasplit/internal/batch"
	"golang.org/x/term"
)

// progressPrinter renders batch events. On a terminal it keeps a single
// status line; otherwise it prints one line per source.
type progressPrinter struct {
	w       io.Writer
	tty     bool
	pending bool // a status line is on screen without a newline
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	f, ok := w.(*os.File)
	return &progressPrinter{w: w, tty: ok && term.IsTerminal(int(f.Fd()))}
}

func (p *progressPrinter) report(ev batch.Event) {
	line := fmt.Sprintf("[%d/%d] %s %s", ev.Index, ev.Total, ev.Status, ev.Path)
	if !p.tty {
		fmt.Fprintln(p.w, line)
		return
	}
	fmt.Fprintf(p.w, "\r\033[K%s", line)
	p.pending = true
	if ev.Status == batch.StatusFailed {
		// keep failures visible
		fmt.Fprintln(p.w)
		p.pending = false
	}
}

func (p *progressPrinter) done() {
	if p.pending {
		fmt.Fprintln(p.w)
		p.pending = false
	}
}
