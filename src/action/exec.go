package action

import (
	"bytes"
	"context"
	"os/exec"

	"borg-find/src/repo"
	"borg-find/src/ui"
)

// Exec pipes each matched file's content through a user-supplied shell
// command and reports the exit status. Directories are skipped.
type Exec struct {
	Source     repo.Source
	Repository string
	Printer    *ui.Printer
	Command    string
	Verbose    bool
}

func (e *Exec) Begin(archive repo.Archive, matches int) error {
	printArchiveHeader(e.Printer, e.Repository, archive, matches)
	return nil
}

func (e *Exec) Handle(ctx context.Context, archive repo.Archive, entry repo.FileEntry) error {
	if entry.IsDir() {
		e.Printer.Printf("%s %s is a directory\n", e.Printer.Skip(), e.Printer.File(entry))
		return nil
	}

	content, err := e.Source.ReadFile(ctx, archive, entry)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", e.Command)
	cmd.Stdin = bytes.NewReader(content)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	exitCode := 0
	status := e.Printer.OK()
	if runErr != nil {
		status = e.Printer.Error()
		exitCode = -1
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	e.Printer.Printf("%s %s on %s returned %d\n",
		status, e.Printer.Command(e.Command), e.Printer.File(entry), exitCode)
	if e.Verbose {
		e.Printer.DumpProcess(stdout.Bytes(), stderr.Bytes())
	}
	// A failing user command is reported, not fatal; only read errors abort.
	return nil
}

func (e *Exec) Finish(repo.Archive) error { return nil }
