package borg

import (
	"testing"
	"time"
)

func TestExtractVersion(t *testing.T) {
	cases := []struct {
		output string
		want   string
	}{
		{"borg 1.2.8\n", "1.2.8"},
		{"borg 1.4.0b2\n", "1.4.0b2"},
		{"some banner\nborg 2.0.0\n", "2.0.0"},
	}
	for _, tc := range cases {
		got, err := ExtractVersion(tc.output)
		if err != nil {
			t.Fatalf("ExtractVersion(%q): %v", tc.output, err)
		}
		if got != tc.want {
			t.Fatalf("ExtractVersion(%q) = %q, want %q", tc.output, got, tc.want)
		}
	}
}

func TestExtractVersion_NoMatch(t *testing.T) {
	got, err := ExtractVersion("restic 0.18.0\n")
	if err != nil {
		t.Fatalf("ExtractVersion: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty version, got %q", got)
	}
}

func TestParseFileLines(t *testing.T) {
	output := `{"type": "d", "mode": "drwxr-xr-x", "user": "root", "group": "root", "path": "etc", "size": 0, "mtime": "2020-01-01T10:00:00Z"}
{"type": "-", "mode": "-rw-r--r--", "user": "root", "group": "root", "path": "etc/hosts", "size": 220, "mtime": "2020-01-01T10:00:01Z"}

`
	files, err := ParseFileLines(output)
	if err != nil {
		t.Fatalf("ParseFileLines: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].Path != "etc" || files[0].Type != "d" {
		t.Fatalf("unexpected first entry: %#v", files[0])
	}
	got := files[1]
	if got.Path != "etc/hosts" || got.Size != 220 || got.Mode != "-rw-r--r--" {
		t.Fatalf("unexpected second entry: %#v", got)
	}
	want := time.Date(2020, 1, 1, 10, 0, 1, 0, time.UTC)
	if !got.MTime.Equal(want) {
		t.Fatalf("mtime = %v, want %v", got.MTime, want)
	}
}

func TestParseFileLines_Invalid(t *testing.T) {
	if _, err := ParseFileLines("{not json}\n"); err == nil {
		t.Fatalf("expected error for malformed manifest line")
	}
}
