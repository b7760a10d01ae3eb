package sshctl

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrTransport matches any failure to run ssh or a non-zero exit where
	// success was required.
	ErrTransport = errors.New("ssh command failed")
	// ErrProtocol means ssh succeeded but its output broke the documented contract.
	ErrProtocol = errors.New("unexpected ssh output")
	// ErrMasterNotDetected means `ssh -fNM` succeeded but no master answered
	// the check after the settle delay.
	ErrMasterNotDetected = errors.New("control master started but not detected")
	// ErrNoControlPath means the host has no ControlPath configured.
	ErrNoControlPath = errors.New("no ControlPath configured")
)

// CommandError describes a failed ssh invocation. It matches ErrTransport.
type CommandError struct {
	Op       string // e.g. "ssh -O forward"
	ExitCode int
	Stderr   string
	Err      error // set when ssh could not be executed at all
}

func (e *CommandError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("failed to execute %s: %v", e.Op, e.Err)
	case e.Stderr != "":
		return fmt.Sprintf("%s failed: %s", e.Op, e.Stderr)
	default:
		return fmt.Sprintf("%s failed with exit code %d", e.Op, e.ExitCode)
	}
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func (e *CommandError) Is(target error) bool {
	return target == ErrTransport
}
