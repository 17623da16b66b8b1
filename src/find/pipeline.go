package find

import (
	"context"

	"borg-find/src/repo"
)

// Action receives the files matched in each archive. Begin is called once per
// processed archive with the number of matches (zero included, so actions can
// report skipped archives), Handle once per match in ascending path order,
// and Finish after the last match of the archive.
type Action interface {
	Begin(archive repo.Archive, matches int) error
	Handle(ctx context.Context, archive repo.Archive, entry repo.FileEntry) error
	Finish(archive repo.Archive) error
}

// Run walks the filtered archive catalog in order, diffing each manifest
// against the one before it and handing matches to the action. The previous
// manifest is the only cross-archive state; it always refers to the archive
// preceding the current one in processing order, so reversing the order also
// reverses diffing adjacency. The first failure aborts the walk; matches
// already delivered stand.
func Run(ctx context.Context, source repo.Source, criteria Criteria, action Action) error {
	if err := criteria.Validate(); err != nil {
		return err
	}

	archives, err := source.ListArchives(ctx)
	if err != nil {
		return err
	}
	return Walk(ctx, source, FilterArchives(archives, criteria), criteria, action)
}

// Walk runs the per-archive loop over an already-filtered catalog, in the
// given order. Callers that prefetch manifests use SelectArchives followed by
// Walk; Run composes the two for everyone else.
func Walk(ctx context.Context, source repo.Source, selected []repo.Archive, criteria Criteria, action Action) error {
	var previous repo.Manifest
	for _, archive := range selected {
		manifest, err := source.LoadManifest(ctx, archive)
		if err != nil {
			return err
		}
		states := Classify(manifest, previous)
		matches := SelectFiles(manifest, states, criteria)

		if err := action.Begin(archive, len(matches)); err != nil {
			return err
		}
		for _, entry := range matches {
			if err := action.Handle(ctx, archive, entry); err != nil {
				return err
			}
		}
		if err := action.Finish(archive); err != nil {
			return err
		}
		previous = manifest
	}
	return nil
}

// SelectArchives lists and filters the catalog without walking it. The CLI
// uses it to prefetch manifests before running the pipeline.
func SelectArchives(ctx context.Context, source repo.Source, criteria Criteria) ([]repo.Archive, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	archives, err := source.ListArchives(ctx)
	if err != nil {
		return nil, err
	}
	return FilterArchives(archives, criteria), nil
}
