package find

import (
	"sort"
	"strings"

	"borg-find/src/repo"
)

// SelectFiles applies the file-level criteria to one manifest. A file must
// pass every supplied filter: name substring (case-insensitive), regex
// (unanchored search), and the change-state flag. Results come back in
// ascending path order.
func SelectFiles(manifest repo.Manifest, states map[string]ChangeState, criteria Criteria) []repo.FileEntry {
	lowerName := strings.ToLower(criteria.Name)

	paths := make([]string, 0, len(manifest))
	for path := range manifest {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var out []repo.FileEntry
	for _, path := range paths {
		if lowerName != "" && !strings.Contains(strings.ToLower(path), lowerName) {
			continue
		}
		if criteria.Pattern != nil && !criteria.Pattern.MatchString(path) {
			continue
		}
		if criteria.OnlyNew && states[path] != New {
			continue
		}
		if criteria.OnlyModified && states[path] != Modified {
			continue
		}
		out = append(out, manifest[path])
	}
	return out
}
