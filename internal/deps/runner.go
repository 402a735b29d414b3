package deps

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/samhoang/ccplus/internal/logging"
)

// Runner executes external programs
type Runner interface {
	// Output runs a command and returns its trimmed stdout
	Output(ctx context.Context, name string, args ...string) (string, error)

	// Run runs a command attached to the terminal
	Run(ctx context.Context, name string, args ...string) error

	// LookPath resolves a program name, or checks an explicit path is executable
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a runner attached to the process stdio
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Output implements Runner
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	logging.Debug().Str("cmd", name).Strs("args", args).Err(err).Msg("exec")
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Run implements Runner
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	logging.Debug().Str("cmd", name).Strs("args", args).Err(err).Msg("exec interactive")
	return err
}

// LookPath implements Runner
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
