// Package action holds the three things borg-find can do with a matched
// file: print it, pipe it through a command, or extract it. Each one
// implements find.Action so the pipeline driver stays oblivious to which
// was picked.
package action

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"fmt"
	"hash"

	"borg-find/src/repo"
	"borg-find/src/ui"
)

// Digest algorithms the list action can append to each match.
const (
	DigestNone = ""
	DigestMD5  = "md5"
	DigestSHA1 = "sha1"
)

// List prints matched files, optionally with mode/owner/size details and a
// content digest. It is the default action.
type List struct {
	Source     repo.Source
	Repository string
	Printer    *ui.Printer
	Verbose    bool
	Digest     string

	matches   int
	totalSize int64
}

func (l *List) Begin(archive repo.Archive, matches int) error {
	l.matches = matches
	l.totalSize = 0
	printArchiveHeader(l.Printer, l.Repository, archive, matches)
	return nil
}

func (l *List) Handle(ctx context.Context, archive repo.Archive, entry repo.FileEntry) error {
	l.totalSize += entry.Size

	suffix := ""
	if l.Digest != DigestNone && entry.IsFile() {
		sum, err := l.digest(ctx, archive, entry)
		if err != nil {
			return err
		}
		suffix = fmt.Sprintf(" (%s:%s)", l.Digest, l.Printer.Digest(sum))
	}

	if l.Verbose {
		owner := entry.User + ":" + entry.Group
		l.Printer.Printf("  %s %-12s %8s %s %s%s\n",
			entry.Mode,
			owner,
			ui.Size(entry.Size),
			entry.Modified.Format("2006-01-02 15:04:05"),
			l.Printer.File(entry),
			suffix,
		)
	} else {
		l.Printer.Printf("  %s%s\n", l.Printer.File(entry), suffix)
	}
	return nil
}

func (l *List) Finish(repo.Archive) error {
	if l.matches > 0 {
		l.Printer.Printf("  %d file(s), %s\n\n", l.matches, ui.Size(l.totalSize))
	}
	return nil
}

func (l *List) digest(ctx context.Context, archive repo.Archive, entry repo.FileEntry) (string, error) {
	content, err := l.Source.ReadFile(ctx, archive, entry)
	if err != nil {
		return "", err
	}
	var h hash.Hash
	switch l.Digest {
	case DigestMD5:
		h = md5.New()
	case DigestSHA1:
		h = sha1.New()
	default:
		return "", fmt.Errorf("unknown digest algorithm %q", l.Digest)
	}
	h.Write(content)
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func printArchiveHeader(p *ui.Printer, repository string, archive repo.Archive, matches int) {
	label := p.Archive(repository, archive)
	if matches == 0 {
		p.Printf("Skip %s, no matching file\n", label)
	} else {
		p.Printf("Inspect %s, %d matching file(s)\n", label, matches)
	}
}
