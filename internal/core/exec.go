package core

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// CommandRunner runs external programs and returns their trimmed stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner implements CommandRunner with os/exec.
type ExecRunner struct {
	// Dir is the working directory for every command. Empty means the current directory.
	Dir string

	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewExecRunner creates an ExecRunner rooted at dir.
func NewExecRunner(dir string) *ExecRunner {
	return &ExecRunner{
		Dir:         dir,
		execCommand: exec.CommandContext,
	}
}

var _ CommandRunner = (*ExecRunner)(nil)

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := r.execCommand(ctx, name, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrMsg := strings.TrimSpace(stderr.String())
		if stderrMsg != "" {
			return strings.TrimSpace(stdout.String()), fmt.Errorf("%s: %w", stderrMsg, err)
		}
		return strings.TrimSpace(stdout.String()), fmt.Errorf("%s failed: %w", name, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// ShellCommand returns the program and arguments that run line through the
// platform shell.
func ShellCommand(line string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C", line}
	}
	return "sh", []string{"-c", line}
}
