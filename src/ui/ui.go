// Package ui renders the colored, human-facing output of borg-find. All
// styling goes through a termenv Output so colors degrade cleanly when
// stdout is not a terminal.
package ui

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"

	"borg-find/src/repo"
)

// Printer writes styled output to one destination.
type Printer struct {
	w   io.Writer
	out *termenv.Output
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, out: termenv.NewOutput(w)}
}

func (p *Printer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) Println(args ...interface{}) {
	fmt.Fprintln(p.w, args...)
}

// Status prints a transient message and moves the cursor back to the start
// of the line so the next message overwrites it.
func (p *Printer) Status(msg string) {
	p.out.ClearLine()
	fmt.Fprint(p.w, msg)
	p.out.CursorBack(len(msg))
}

// ClearStatus wipes a pending transient message.
func (p *Printer) ClearStatus() {
	p.out.ClearLine()
}

func (p *Printer) style(s string, color termenv.Color, bold bool) string {
	st := p.out.String(s).Foreground(color)
	if bold {
		st = st.Bold()
	}
	return st.String()
}

// Repo renders a repository location.
func (p *Printer) Repo(repository string) string {
	return p.style(repository, termenv.ANSICyan, false)
}

// Archive renders "repository::archive".
func (p *Printer) Archive(repository string, archive repo.Archive) string {
	return p.Repo(repository) + "::" + p.style(archive.Name, termenv.ANSICyan, true)
}

// File renders a file path, colored by kind: directories blue, symlinks
// cyan, executables green, everything else magenta.
func (p *Printer) File(entry repo.FileEntry) string {
	if entry.IsDir() {
		return p.style(entry.Path+"/", termenv.ANSIBlue, true)
	}
	color := termenv.ANSIMagenta
	if entry.IsLink() {
		color = termenv.ANSICyan
	} else if entry.IsExecutable() {
		color = termenv.ANSIGreen
	}
	dir, name := path.Split(entry.Path)
	return p.style(dir, termenv.ANSIBlue, true) + p.style(name, color, true)
}

// Command renders a shell command line.
func (p *Printer) Command(cmd string) string {
	return p.style(cmd, termenv.ANSIYellow, false)
}

// Digest renders a content digest value.
func (p *Printer) Digest(hexsum string) string {
	return p.style(hexsum, termenv.ANSIYellow, false)
}

// OK, Error and Skip render the bracketed status tags of exec mode.
func (p *Printer) OK() string    { return "[" + p.style("OK", termenv.ANSIGreen, false) + "]" }
func (p *Printer) Error() string { return "[" + p.style("ERROR", termenv.ANSIRed, false) + "]" }
func (p *Printer) Skip() string  { return "[" + p.style("SKIP", termenv.ANSICyan, false) + "]" }

// Errorf writes a red error line, for the CLI boundary.
func (p *Printer) Errorf(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.style(fmt.Sprintf(format, args...), termenv.ANSIRed, false))
}

// DumpProcess prints captured subprocess output in dim/red framed blocks.
func (p *Printer) DumpProcess(stdout, stderr []byte) {
	frame := strings.Repeat("=", 20)
	if len(stdout) > 0 {
		fmt.Fprintln(p.w, " ", frame, "BEGIN STDOUT", frame)
		for _, line := range strings.Split(strings.TrimRight(string(stdout), "\n"), "\n") {
			fmt.Fprintln(p.w, " ", p.out.String(line).Faint().String())
		}
		fmt.Fprintln(p.w, " ", frame, "END STDOUT", frame)
	}
	if len(stderr) > 0 {
		fmt.Fprintln(p.w, " ", frame, "BEGIN STDERR", frame)
		for _, line := range strings.Split(strings.TrimRight(string(stderr), "\n"), "\n") {
			fmt.Fprintln(p.w, " ", p.style(line, termenv.ANSIRed, false))
		}
		fmt.Fprintln(p.w, " ", frame, "END STDERR", frame)
	}
}

// Size renders a byte count in human-readable form.
func Size(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
