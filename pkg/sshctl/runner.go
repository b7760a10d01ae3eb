package sshctl

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/pkg/errors"
)

// pipeWaitDelay bounds how long Run waits for output pipes after ssh exits.
// `ssh -f` forks a master that may inherit them.
const pipeWaitDelay = 2 * time.Second

// Result is the outcome of a finished process.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes a program to completion. A non-zero exit is reported through
// Result.ExitCode; the error is reserved for processes that could not run.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run starts name and waits for it to exit.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = pipeWaitDelay

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	case errors.Is(err, exec.ErrWaitDelay):
		// exited cleanly, a detached child still holds stdout/stderr
	default:
		return Result{}, err
	}
	return res, nil
}
