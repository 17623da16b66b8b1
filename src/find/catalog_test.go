package find

import (
	"testing"
	"time"

	"borg-find/src/repo"
)

func day(d int) time.Time {
	return time.Date(2020, 1, d, 0, 0, 0, 0, time.UTC)
}

func catalog() []repo.Archive {
	// Deliberately unsorted.
	return []repo.Archive{
		{ID: "3", Name: "host-03", Created: day(3)},
		{ID: "1", Name: "host-01", Created: day(1)},
		{ID: "5", Name: "other-05", Created: day(5)},
		{ID: "2", Name: "host-02", Created: day(2)},
		{ID: "4", Name: "host-04", Created: day(4)},
	}
}

func names(archives []repo.Archive) []string {
	out := make([]string, len(archives))
	for i, a := range archives {
		out[i] = a.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilterArchives_SortsAscending(t *testing.T) {
	got := names(FilterArchives(catalog(), Criteria{}))
	want := []string{"host-01", "host-02", "host-03", "host-04", "other-05"}
	if !equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestFilterArchives_DateBoundsAreStrict(t *testing.T) {
	got := FilterArchives(catalog(), Criteria{After: day(2), Before: day(4)})
	if len(got) != 1 || got[0].Name != "host-03" {
		t.Fatalf("got %v, want only host-03", names(got))
	}
	for _, a := range got {
		if !a.Created.After(day(2)) || !a.Created.Before(day(4)) {
			t.Fatalf("archive %s violates strict bounds", a.Name)
		}
	}
}

func TestFilterArchives_Prefix(t *testing.T) {
	got := names(FilterArchives(catalog(), Criteria{Prefix: "host-"}))
	want := []string{"host-01", "host-02", "host-03", "host-04"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	// Prefix matching is literal and case-sensitive.
	if got := FilterArchives(catalog(), Criteria{Prefix: "HOST-"}); len(got) != 0 {
		t.Fatalf("case-sensitive prefix matched %v", names(got))
	}
}

func TestFilterArchives_Reverse(t *testing.T) {
	got := names(FilterArchives(catalog(), Criteria{Reverse: true}))
	want := []string{"other-05", "host-04", "host-03", "host-02", "host-01"}
	if !equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFilterArchives_FirstLast(t *testing.T) {
	if got := names(FilterArchives(catalog(), Criteria{First: 2})); !equal(got, []string{"host-01", "host-02"}) {
		t.Fatalf("first=2 got %v", got)
	}
	if got := names(FilterArchives(catalog(), Criteria{Last: 2})); !equal(got, []string{"host-04", "other-05"}) {
		t.Fatalf("last=2 got %v", got)
	}
	if got := names(FilterArchives(catalog(), Criteria{Reverse: true, First: 2})); !equal(got, []string{"other-05", "host-04"}) {
		t.Fatalf("reverse first=2 got %v", got)
	}
	// Truncation longer than the catalog keeps everything.
	if got := FilterArchives(catalog(), Criteria{First: 10}); len(got) != 5 {
		t.Fatalf("first=10 kept %d archives", len(got))
	}
}

func TestFilterArchives_TiesBrokenByName(t *testing.T) {
	archives := []repo.Archive{
		{ID: "b", Name: "b", Created: day(1)},
		{ID: "a", Name: "a", Created: day(1)},
	}
	got := names(FilterArchives(archives, Criteria{}))
	if !equal(got, []string{"a", "b"}) {
		t.Fatalf("tie order = %v, want [a b]", got)
	}
}

func TestFilterArchives_Empty(t *testing.T) {
	if got := FilterArchives(nil, Criteria{}); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", names(got))
	}
	if got := FilterArchives(catalog(), Criteria{Prefix: "nothing-"}); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", names(got))
	}
}
