package repo

import (
	"context"
	"fmt"
)

// FakeSource is an in-memory Source implementation for unit tests.
type FakeSource struct {
	ArchivesList []Archive
	Manifests    map[string]Manifest // keyed by archive name
	Contents     map[string][]byte   // keyed by "archive::path"

	// ListErr, when set, is returned by ListArchives.
	ListErr error
	// LoadErrs maps archive names to injected manifest load failures.
	LoadErrs map[string]error

	// LoadedOrder records the archives whose manifests were requested.
	LoadedOrder []string
}

func NewFake() *FakeSource {
	return &FakeSource{
		Manifests: map[string]Manifest{},
		Contents:  map[string][]byte{},
		LoadErrs:  map[string]error{},
	}
}

// AddArchive registers an archive and its manifest entries.
func (f *FakeSource) AddArchive(archive Archive, entries ...FileEntry) {
	f.ArchivesList = append(f.ArchivesList, archive)
	manifest := make(Manifest, len(entries))
	for _, e := range entries {
		manifest[e.Path] = e
	}
	f.Manifests[archive.Name] = manifest
}

func (f *FakeSource) ListArchives(context.Context) ([]Archive, error) {
	if f.ListErr != nil {
		return nil, &RepositoryError{Repository: "fake", Err: f.ListErr}
	}
	out := make([]Archive, len(f.ArchivesList))
	copy(out, f.ArchivesList)
	return out, nil
}

func (f *FakeSource) LoadManifest(_ context.Context, archive Archive) (Manifest, error) {
	f.LoadedOrder = append(f.LoadedOrder, archive.Name)
	if err := f.LoadErrs[archive.Name]; err != nil {
		return nil, &ArchiveReadError{Archive: archive.Name, Err: err}
	}
	manifest, ok := f.Manifests[archive.Name]
	if !ok {
		return nil, &ArchiveReadError{Archive: archive.Name, Err: fmt.Errorf("unknown archive")}
	}
	return manifest, nil
}

func (f *FakeSource) ReadFile(_ context.Context, archive Archive, entry FileEntry) ([]byte, error) {
	content, ok := f.Contents[archive.Name+"::"+entry.Path]
	if !ok {
		return nil, &ArchiveReadError{Archive: archive.Name, Err: fmt.Errorf("no content for %s", entry.Path)}
	}
	return content, nil
}
