package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/ralt/reposcout/internal/models"
)

// ShellProbe tests paths on a host with test(1)
type ShellProbe struct {
	runner Runner
}

// NewShellProbe creates a path prober running commands through runner
func NewShellProbe(runner Runner) *ShellProbe {
	return &ShellProbe{runner: runner}
}

// PathExists reports whether path is a directory on the host
func (s *ShellProbe) PathExists(ctx context.Context, path string) (bool, error) {
	return Test(ctx, s.runner, "test -d "+Quote(path))
}

// Test runs a test command whose only acceptable exit codes are 0 (true)
// and 1 (false). Anything else is a ProbeFailure.
func Test(ctx context.Context, runner Runner, command string) (bool, error) {
	result, err := runner.Exec(ctx, command)
	if err != nil {
		return false, &models.Error{
			Type: models.ErrProbeFailure,
			Err:  fmt.Errorf("failed to run %q: %w", command, err),
		}
	}

	switch result.ExitCode {
	case 0:
		return true, nil
	case 1:
		return false, nil
	default:
		msg := strings.TrimSpace(result.Stderr)
		if msg == "" {
			msg = "no output"
		}
		return false, models.NewError(models.ErrProbeFailure, "",
			"%q exited with code %d: %s", command, result.ExitCode, msg)
	}
}
