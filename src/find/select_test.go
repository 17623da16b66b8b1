package find

import (
	"regexp"
	"testing"

	"borg-find/src/repo"
)

func manifestOf(paths ...string) repo.Manifest {
	m := repo.Manifest{}
	for _, p := range paths {
		m[p] = repo.FileEntry{Path: p, Type: "-"}
	}
	return m
}

func selectedPaths(entries []repo.FileEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

func TestSelectFiles_NameIsCaseInsensitive(t *testing.T) {
	manifest := manifestOf("/var/LOG/app.LOG", "/var/app.txt")
	states := Classify(manifest, nil)
	got := selectedPaths(SelectFiles(manifest, states, Criteria{Name: ".log"}))
	if !equal(got, []string{"/var/LOG/app.LOG"}) {
		t.Fatalf("got %v, want only /var/LOG/app.LOG", got)
	}
}

func TestSelectFiles_Regex(t *testing.T) {
	manifest := manifestOf("etc/nginx/nginx.conf", "etc/hosts", "var/log/nginx/access.log")
	states := Classify(manifest, nil)
	// Unanchored search, not a full match.
	got := selectedPaths(SelectFiles(manifest, states, Criteria{Pattern: regexp.MustCompile(`nginx`)}))
	if !equal(got, []string{"etc/nginx/nginx.conf", "var/log/nginx/access.log"}) {
		t.Fatalf("got %v", got)
	}
}

func TestSelectFiles_FiltersAreConjunctive(t *testing.T) {
	manifest := manifestOf("etc/nginx/nginx.conf", "var/log/nginx/access.log")
	states := Classify(manifest, nil)
	criteria := Criteria{Name: "LOG", Pattern: regexp.MustCompile(`nginx`)}
	got := selectedPaths(SelectFiles(manifest, states, criteria))
	if !equal(got, []string{"var/log/nginx/access.log"}) {
		t.Fatalf("got %v, want only the path passing both filters", got)
	}
}

func TestSelectFiles_ChangeStateFilters(t *testing.T) {
	previous := manifestOf("old.txt")
	current := repo.Manifest{
		"old.txt":   {Path: "old.txt", Type: "-"},
		"fresh.txt": {Path: "fresh.txt", Type: "-"},
	}
	states := Classify(current, previous)

	if got := selectedPaths(SelectFiles(current, states, Criteria{OnlyNew: true})); !equal(got, []string{"fresh.txt"}) {
		t.Fatalf("OnlyNew got %v", got)
	}
	if got := SelectFiles(current, states, Criteria{OnlyModified: true}); len(got) != 0 {
		t.Fatalf("OnlyModified got %v", selectedPaths(got))
	}
	// No change-state flag: every state passes.
	if got := SelectFiles(current, states, Criteria{}); len(got) != 2 {
		t.Fatalf("unfiltered got %v", selectedPaths(got))
	}
}

func TestSelectFiles_PathOrder(t *testing.T) {
	manifest := manifestOf("c", "a", "b")
	got := selectedPaths(SelectFiles(manifest, Classify(manifest, nil), Criteria{}))
	if !equal(got, []string{"a", "b", "c"}) {
		t.Fatalf("got %v, want ascending path order", got)
	}
}
