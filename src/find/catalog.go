package find

import (
	"sort"
	"strings"

	"borg-find/src/repo"
)

// FilterArchives reduces the raw archive list to the ordered subsequence the
// pipeline will process. Steps apply in a fixed order: date bounds, name
// prefix, chronological sort (reversed on request), then first/last
// truncation. An empty result is not an error.
func FilterArchives(archives []repo.Archive, criteria Criteria) []repo.Archive {
	out := make([]repo.Archive, 0, len(archives))
	for _, archive := range archives {
		if !criteria.After.IsZero() && !archive.Created.After(criteria.After) {
			continue
		}
		if !criteria.Before.IsZero() && !archive.Created.Before(criteria.Before) {
			continue
		}
		if criteria.Prefix != "" && !strings.HasPrefix(archive.Name, criteria.Prefix) {
			continue
		}
		out = append(out, archive)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return out[i].Name < out[j].Name
	})
	if criteria.Reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}

	switch {
	case criteria.First > 0 && criteria.First < len(out):
		out = out[:criteria.First]
	case criteria.Last > 0 && criteria.Last < len(out):
		out = out[len(out)-criteria.Last:]
	}
	return out
}
