package repo

import (
	"context"
	"fmt"
	"time"
)

// Archive identifies one backup snapshot in a repository. The ID is borg's
// internal archive hash; Name is the user-visible label and unique within a
// repository.
type Archive struct {
	ID      string
	Name    string
	Created time.Time
}

// FileEntry is one file recorded in an archive's manifest. Path is
// archive-relative and acts as the join key when diffing manifests.
type FileEntry struct {
	Path     string
	Type     string // "-" file, "d" directory, "l" symlink
	Mode     string // e.g. -rwxr-xr-x
	User     string
	Group    string
	Size     int64
	Modified time.Time
}

func (f FileEntry) IsFile() bool { return f.Type == "-" }
func (f FileEntry) IsDir() bool  { return f.Type == "d" }
func (f FileEntry) IsLink() bool { return f.Type == "l" }

func (f FileEntry) IsExecutable() bool {
	return len(f.Mode) > 3 && f.Mode[3] == 'x'
}

// Manifest is an archive's full file listing keyed by path.
type Manifest map[string]FileEntry

// Source is the narrow interface over a backup repository the engine
// consumes. Keep it small so tests can swap in FakeSource.
type Source interface {
	// ListArchives enumerates all archives with name and creation time.
	ListArchives(ctx context.Context) ([]Archive, error)
	// LoadManifest returns the full file listing of one archive.
	LoadManifest(ctx context.Context, archive Archive) (Manifest, error)
	// ReadFile returns the content of one file inside an archive.
	ReadFile(ctx context.Context, archive Archive, entry FileEntry) ([]byte, error)
}

// RepositoryError reports that archive enumeration failed; the repository is
// unreachable or not a borg repository.
type RepositoryError struct {
	Repository string
	Err        error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Repository, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// ArchiveReadError reports that loading a manifest or file content from one
// archive failed.
type ArchiveReadError struct {
	Archive string
	Err     error
}

func (e *ArchiveReadError) Error() string {
	return fmt.Sprintf("archive %s: %v", e.Archive, e.Err)
}

func (e *ArchiveReadError) Unwrap() error { return e.Err }
