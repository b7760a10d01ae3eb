package sshctl

import (
	"fmt"

	"github.com/pkg/errors"
)

// MasterState tells whether a control master is serving the host.
type MasterState int

const (
	MasterNotRunning MasterState = iota
	MasterRunning
)

// MasterStatus is the result of `ssh -O check`. PID is only set when State is
// MasterRunning.
type MasterStatus struct {
	State MasterState
	PID   int32
}

// NotRunning is the status of a host without a control master.
func NotRunning() MasterStatus {
	return MasterStatus{State: MasterNotRunning}
}

// Running is the status of a control master with the given process id.
func Running(pid int32) MasterStatus {
	return MasterStatus{State: MasterRunning, PID: pid}
}

// IsRunning reports whether the status carries a live master.
func (s MasterStatus) IsRunning() bool {
	return s.State == MasterRunning
}

func (s MasterStatus) String() string {
	switch s.State {
	case MasterRunning:
		return fmt.Sprintf("Running (PID: %d)", s.PID)
	default:
		return "Not Running"
	}
}

// HostConfig holds the parts of `ssh -G` output muxwarden cares about.
type HostConfig struct {
	// ControlPath is empty when multiplexing is not configured for the host.
	ControlPath string
}

// HasControlPath reports whether the host is set up for multiplexing.
func (c HostConfig) HasControlPath() bool {
	return c.ControlPath != ""
}

// ForwardSpec is the -L argument for a forward whose local and remote port match.
func ForwardSpec(port uint16) string {
	return fmt.Sprintf("%d:localhost:%d", port, port)
}

// RequireControlPath fails with ErrNoControlPath unless cfg enables multiplexing.
func RequireControlPath(host string, cfg HostConfig) error {
	if cfg.HasControlPath() {
		return nil
	}
	return errors.Wrapf(ErrNoControlPath, "host '%s' (configure ControlPath in ~/.ssh/config)", host)
}
