package find

import "borg-find/src/repo"

// ChangeState classifies a file in one archive relative to the previous
// archive in processing order.
type ChangeState int

const (
	Unchanged ChangeState = iota
	New
	Modified
)

func (s ChangeState) String() string {
	switch s {
	case New:
		return "new"
	case Modified:
		return "modified"
	default:
		return "unchanged"
	}
}

// Classify computes the change state of every path in current relative to
// previous. A nil previous manifest means this is the first archive in
// processing order; everything is reported Unchanged so the new/modified
// filters select nothing there (there is no baseline to diff against).
// Paths present only in previous (deletions) are not reported.
func Classify(current, previous repo.Manifest) map[string]ChangeState {
	states := make(map[string]ChangeState, len(current))
	for path, entry := range current {
		if previous == nil {
			states[path] = Unchanged
			continue
		}
		prev, ok := previous[path]
		switch {
		case !ok:
			states[path] = New
		case prev.Size != entry.Size || !prev.Modified.Equal(entry.Modified):
			states[path] = Modified
		default:
			states[path] = Unchanged
		}
	}
	return states
}
