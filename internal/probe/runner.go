package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// LocalRunner runs commands on the local host through sh
type LocalRunner struct {
	shell  string
	logger logrus.Ext1FieldLogger
}

// NewLocalRunner creates a runner using /bin/sh. A nil logger uses the
// standard logger.
func NewLocalRunner(logger logrus.Ext1FieldLogger) *LocalRunner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LocalRunner{shell: "/bin/sh", logger: logger}
}

// Exec implements Runner
func (r *LocalRunner) Exec(ctx context.Context, command string) (*Result, error) {
	r.logger.Tracef("exec: %s", command)

	cmd := exec.CommandContext(ctx, r.shell, "-c", command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to run %q: %w", command, err)
	}

	return result, nil
}

// Quote wraps s in single quotes for sh, escaping embedded single quotes
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
