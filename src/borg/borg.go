package borg

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ArchiveInfo is one archive row from `borg list REPO --json`.
type ArchiveInfo struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Time Timestamp `json:"time"`
}

type repoListing struct {
	Archives []ArchiveInfo `json:"archives"`
}

// FileInfo is one file row from `borg list REPO::ARCHIVE --json-lines`.
type FileInfo struct {
	Type  string    `json:"type"`
	Mode  string    `json:"mode"`
	User  string    `json:"user"`
	Group string    `json:"group"`
	Path  string    `json:"path"`
	Size  int64     `json:"size"`
	MTime Timestamp `json:"mtime"`
}

// RepoList enumerates the archives of a repository via `borg list --json`.
func RepoList(ctx context.Context, bin BinaryInfo, repo string) ([]ArchiveInfo, error) {
	stdout, stderr, err := runCommand(ctx, bin, []string{"list", repo, "--json"})
	if err != nil {
		return nil, fmt.Errorf("borg: list repository: %w: %s", err, lastLine(stderr))
	}
	var listing repoListing
	if err := json.Unmarshal([]byte(stdout), &listing); err != nil {
		return nil, fmt.Errorf("borg: parse repository listing: %w", err)
	}
	return listing.Archives, nil
}

// ArchiveList returns the file manifest of one archive via
// `borg list REPO::ARCHIVE --json-lines`.
func ArchiveList(ctx context.Context, bin BinaryInfo, repo, archive string) ([]FileInfo, error) {
	stdout, stderr, err := runCommand(ctx, bin, []string{"list", repo + "::" + archive, "--json-lines"})
	if err != nil {
		return nil, fmt.Errorf("borg: list archive %s: %w: %s", archive, err, lastLine(stderr))
	}
	return ParseFileLines(stdout)
}

// ParseFileLines decodes the one-JSON-object-per-line manifest format.
func ParseFileLines(output string) ([]FileInfo, error) {
	var files []FileInfo
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var fi FileInfo
		if err := json.Unmarshal([]byte(line), &fi); err != nil {
			return nil, fmt.Errorf("borg: parse manifest line: %w", err)
		}
		files = append(files, fi)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("borg: read manifest output: %w", err)
	}
	return files, nil
}

// ExtractFile streams one file's content to memory via
// `borg extract --stdout`.
func ExtractFile(ctx context.Context, bin BinaryInfo, repo, archive, path string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin.Path, "extract", "--stdout", repo+"::"+archive, path)
	cmd.Env = borgEnv()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("borg: extract %s: %w: %s", path, err, lastLine(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func runCommand(ctx context.Context, bin BinaryInfo, args []string) (string, string, error) {
	cmd := exec.CommandContext(ctx, bin.Path, args...)
	cmd.Env = borgEnv()
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	err := cmd.Run()
	return stdoutBuf.String(), stderrBuf.String(), err
}

// borgEnv disables the interactive question borg asks after a repository has
// been moved; there is no terminal to answer it on.
func borgEnv() []string {
	return append(os.Environ(), "BORG_RELOCATED_REPO_ACCESS_IS_OK=yes")
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return s
}
