package repo

import (
	"context"
	"sync"

	"borg-find/src/borg"
)

// Funcs routed through variables so tests can stub the borg subprocess calls.
type repoListFunc func(context.Context, borg.BinaryInfo, string) ([]borg.ArchiveInfo, error)
type archiveListFunc func(context.Context, borg.BinaryInfo, string, string) ([]borg.FileInfo, error)
type extractFileFunc func(context.Context, borg.BinaryInfo, string, string, string) ([]byte, error)

var repoList repoListFunc = borg.RepoList
var archiveList archiveListFunc = borg.ArchiveList
var extractFile extractFileFunc = borg.ExtractFile

// BorgSource implements Source by shelling out to the borg binary. Loaded
// manifests are cached by archive ID so Prefetch and the sequential pipeline
// never list the same archive twice.
type BorgSource struct {
	bin        borg.BinaryInfo
	repository string

	mu        sync.Mutex
	manifests map[string]Manifest
}

func NewBorgSource(bin borg.BinaryInfo, repository string) *BorgSource {
	return &BorgSource{
		bin:        bin,
		repository: repository,
		manifests:  map[string]Manifest{},
	}
}

// Repository returns the repository location string as given by the user.
func (s *BorgSource) Repository() string { return s.repository }

func (s *BorgSource) ListArchives(ctx context.Context) ([]Archive, error) {
	infos, err := repoList(ctx, s.bin, s.repository)
	if err != nil {
		return nil, &RepositoryError{Repository: s.repository, Err: err}
	}
	archives := make([]Archive, 0, len(infos))
	for _, info := range infos {
		archives = append(archives, Archive{
			ID:      info.ID,
			Name:    info.Name,
			Created: info.Time.Time,
		})
	}
	return archives, nil
}

func (s *BorgSource) LoadManifest(ctx context.Context, archive Archive) (Manifest, error) {
	s.mu.Lock()
	cached, ok := s.manifests[archive.ID]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	files, err := archiveList(ctx, s.bin, s.repository, archive.Name)
	if err != nil {
		return nil, &ArchiveReadError{Archive: archive.Name, Err: err}
	}
	manifest := make(Manifest, len(files))
	for _, fi := range files {
		manifest[fi.Path] = FileEntry{
			Path:     fi.Path,
			Type:     fi.Type,
			Mode:     fi.Mode,
			User:     fi.User,
			Group:    fi.Group,
			Size:     fi.Size,
			Modified: fi.MTime.Time,
		}
	}

	s.mu.Lock()
	s.manifests[archive.ID] = manifest
	s.mu.Unlock()
	return manifest, nil
}

func (s *BorgSource) ReadFile(ctx context.Context, archive Archive, entry FileEntry) ([]byte, error) {
	content, err := extractFile(ctx, s.bin, s.repository, archive.Name, entry.Path)
	if err != nil {
		return nil, &ArchiveReadError{Archive: archive.Name, Err: err}
	}
	return content, nil
}

// Prefetch warms the manifest cache for the given archives using up to jobs
// concurrent borg invocations. The pipeline itself stays sequential; this
// only front-loads the slow `borg list` calls. progress, when non-nil, is
// invoked after each archive finishes loading. The first error wins and
// cancels the remaining loads.
func (s *BorgSource) Prefetch(ctx context.Context, archives []Archive, jobs int, progress func(done, total int, archive Archive)) error {
	if jobs <= 0 || len(archives) == 0 {
		return nil
	}
	if jobs > len(archives) {
		jobs = len(archives)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	work := make(chan Archive)
	errs := make(chan error, jobs)
	var wg sync.WaitGroup

	var mu sync.Mutex
	done := 0

	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for archive := range work {
				if _, err := s.LoadManifest(ctx, archive); err != nil {
					errs <- err
					cancel()
					return
				}
				if progress != nil {
					mu.Lock()
					done++
					progress(done, len(archives), archive)
					mu.Unlock()
				}
			}
		}()
	}

	for _, archive := range archives {
		select {
		case work <- archive:
		case <-ctx.Done():
		}
	}
	close(work)
	wg.Wait()

	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}

// SetRepoListForTest allows tests to stub out borg repository listing.
func SetRepoListForTest(fn repoListFunc) func() {
	prev := repoList
	repoList = fn
	return func() { repoList = prev }
}

// SetArchiveListForTest allows tests to stub out borg archive listing.
func SetArchiveListForTest(fn archiveListFunc) func() {
	prev := archiveList
	archiveList = fn
	return func() { archiveList = prev }
}

// SetExtractFileForTest allows tests to stub out borg file extraction.
func SetExtractFileForTest(fn extractFileFunc) func() {
	prev := extractFile
	extractFile = fn
	return func() { extractFile = prev }
}
