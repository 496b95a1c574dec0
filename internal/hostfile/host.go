// Package hostfile provides file helpers for unix hosts reached through a
// probe.Runner.
package hostfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/ralt/reposcout/internal/probe"
)

// Host runs file operations on a unix host
type Host struct {
	runner probe.Runner
}

// NewHost creates a Host using runner
func NewHost(runner probe.Runner) *Host {
	return &Host{runner: runner}
}

// TmpFile creates a temporary file named after name and returns its path
func (h *Host) TmpFile(ctx context.Context, name string) (string, error) {
	return h.mktemp(ctx, "-t", name)
}

// TmpDir creates a temporary directory named after name and returns its path
func (h *Host) TmpDir(ctx context.Context, name string) (string, error) {
	return h.mktemp(ctx, "-dt", name)
}

func (h *Host) mktemp(ctx context.Context, flags, name string) (string, error) {
	command := fmt.Sprintf("mktemp %s %s", flags, probe.Quote(name+".XXXXXX"))
	result, err := h.runner.Exec(ctx, command)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("%s exited with code %d: %s", command, result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return strings.TrimSpace(result.Stdout), nil
}

// SystemTempPath returns the host's temporary directory
func (h *Host) SystemTempPath() string {
	return "/tmp"
}

// SCPPath returns path as scp expects it. Unix paths need no translation.
func (h *Host) SCPPath(path string) string {
	return path
}

// PathSplit splits a PATH-style list
func (h *Host) PathSplit(paths string) []string {
	return strings.Split(paths, ":")
}

// FileExists reports whether path exists on the host
func (h *Host) FileExists(ctx context.Context, path string) (bool, error) {
	return probe.Test(ctx, h.runner, "test -e "+probe.Quote(path))
}

// WriteFile replaces the content of path on the host
func (h *Host) WriteFile(ctx context.Context, path, content string) error {
	command := fmt.Sprintf("printf '%%s' %s > %s", probe.Quote(content), probe.Quote(path))
	result, err := h.runner.Exec(ctx, command)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("failed to write %s: exit code %d: %s", path, result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return nil
}
