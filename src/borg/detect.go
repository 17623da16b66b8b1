package borg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// BinaryInfo describes a detected borg CLI binary.
type BinaryInfo struct {
	Path    string
	Version string
}

var versionRegexp = regexp.MustCompile(`borg\s+([0-9]+\.[0-9]+\.[0-9]+(?:[a-z0-9.]+)?)`)

// Detect locates the borg binary, queries its version, and returns the
// gathered metadata. BORG_BIN overrides the PATH lookup. The context is used
// to bound the version subprocess.
func Detect(ctx context.Context) (BinaryInfo, error) {
	exe := os.Getenv("BORG_BIN")
	if exe == "" {
		found, err := exec.LookPath("borg")
		if err != nil {
			return BinaryInfo{}, fmt.Errorf("borg binary not found on PATH: %w", err)
		}
		exe = found
	}
	ver, err := queryVersion(ctx, exe)
	if err != nil {
		return BinaryInfo{}, err
	}
	return BinaryInfo{Path: exe, Version: ver}, nil
}

// queryVersion executes `borg --version` and parses the semantic version from
// its output.
func queryVersion(ctx context.Context, exe string) (string, error) {
	// Guard against commands that hang by applying a short timeout.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, exe, "--version")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("borg: capture stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("borg: capture stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("borg: start version command: %w", err)
	}

	version, parseErr := parseVersion(stdout)
	if version == "" && parseErr == nil {
		// Older releases print the version on stderr.
		version, parseErr = parseVersion(stderr)
	}
	waitErr := cmd.Wait()
	if parseErr != nil {
		return "", parseErr
	}
	if version == "" {
		return "", errors.New("borg: could not parse version output")
	}
	if waitErr != nil {
		return "", fmt.Errorf("borg: version command failed: %w", waitErr)
	}
	return version, nil
}

func parseVersion(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if matches := versionRegexp.FindStringSubmatch(line); len(matches) == 2 {
			return matches[1], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("borg: read version output: %w", err)
	}
	return "", nil
}

// ExtractVersion derives the borg version string from the supplied command
// output. It is primarily exposed for testing.
func ExtractVersion(output string) (string, error) {
	return parseVersion(strings.NewReader(output))
}
