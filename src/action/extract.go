package action

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"borg-find/src/repo"
	"borg-find/src/ui"
)

// Extract writes each matched regular file under OutputDir/ARCHIVE/PATH,
// creating parent directories and restoring the recorded mtime.
type Extract struct {
	Source     repo.Source
	Repository string
	Printer    *ui.Printer
	OutputDir  string

	matches int
	count   int
}

func (e *Extract) Begin(archive repo.Archive, matches int) error {
	e.matches = matches
	e.count = 0
	printArchiveHeader(e.Printer, e.Repository, archive, matches)
	return nil
}

func (e *Extract) Handle(ctx context.Context, archive repo.Archive, entry repo.FileEntry) error {
	e.count++
	if !entry.IsFile() {
		e.Printer.Printf("  [%d/%d] Skip %s, not a regular file\n", e.count, e.matches, e.Printer.File(entry))
		return nil
	}

	content, err := e.Source.ReadFile(ctx, archive, entry)
	if err != nil {
		return err
	}

	target := filepath.Join(e.OutputDir, archive.Name, filepath.FromSlash(entry.Path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("extract %s: %w", entry.Path, err)
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return fmt.Errorf("extract %s: %w", entry.Path, err)
	}
	if !entry.Modified.IsZero() {
		if err := os.Chtimes(target, entry.Modified, entry.Modified); err != nil {
			return fmt.Errorf("extract %s: restore mtime: %w", entry.Path, err)
		}
	}

	e.Printer.Printf("  [%d/%d] Extracted %s to %s (%s)\n",
		e.count, e.matches, e.Printer.File(entry), target, ui.Size(entry.Size))
	return nil
}

func (e *Extract) Finish(repo.Archive) error { return nil }
