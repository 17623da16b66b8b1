package cli

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		value string
		want  time.Time
	}{
		{"2020-01-02", time.Date(2020, 1, 2, 0, 0, 0, 0, time.Local)},
		{"2020-01-02 15:04:05", time.Date(2020, 1, 2, 15, 4, 5, 0, time.Local)},
		{"2020-01-02T15:04:05", time.Date(2020, 1, 2, 15, 4, 5, 0, time.Local)},
	}
	for _, tc := range cases {
		got, err := parseDate(tc.value)
		if err != nil {
			t.Fatalf("parseDate(%q): %v", tc.value, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("parseDate(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	if _, err := parseDate("last tuesday"); err == nil {
		t.Fatalf("expected error for unparseable date")
	}
}

func TestCriteriaFromFlags(t *testing.T) {
	values := &flagValues{
		after:   "2020-01-01",
		before:  "2020-06-01",
		prefix:  "host-",
		reverse: true,
		last:    3,
		name:    ".log",
		regex:   `\.conf$`,
		onlyNew: true,
		jobs:    4,
	}
	criteria, err := values.criteria()
	if err != nil {
		t.Fatalf("criteria: %v", err)
	}
	if criteria.After.IsZero() || criteria.Before.IsZero() {
		t.Fatalf("date bounds not set: %+v", criteria)
	}
	if criteria.Prefix != "host-" || !criteria.Reverse || criteria.Last != 3 {
		t.Fatalf("archive criteria wrong: %+v", criteria)
	}
	if criteria.Name != ".log" || criteria.Pattern == nil || !criteria.OnlyNew {
		t.Fatalf("file criteria wrong: %+v", criteria)
	}
	if !criteria.Pattern.MatchString("etc/nginx.conf") {
		t.Fatalf("pattern does not match")
	}
	if err := criteria.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestCriteriaFromFlags_BadRegex(t *testing.T) {
	values := &flagValues{regex: "("}
	if _, err := values.criteria(); err == nil {
		t.Fatalf("expected error for invalid regex")
	}
}

func TestCriteriaFromFlags_BadDate(t *testing.T) {
	values := &flagValues{after: "soon"}
	if _, err := values.criteria(); err == nil {
		t.Fatalf("expected error for invalid date")
	}
}
