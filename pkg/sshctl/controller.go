package sshctl

import (
	"bufio"
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/kballard/go-shellquote"
	"github.com/pkg/errors"

	"github.com/xlttj/muxwarden/pkg/logging"
)

// SettleDelay is how long StartMaster waits for a freshly forked master to
// open its control socket before checking on it.
const SettleDelay = 500 * time.Millisecond

// ssh operations, as they appear in errors and logs
const (
	opQueryConfig = "ssh -G"
	opCheck       = "ssh -O check"
	opStart       = "ssh -fNM"
	opForward     = "ssh -O forward"
	opCancel      = "ssh -O cancel"
)

// Controller drives the control master of a host through the ssh client.
// Every call blocks until ssh exits; nothing is retried.
type Controller struct {
	argv   []string
	runner Runner
	clock  clock.Clock
}

// NewController returns a Controller invoking sshArgv (e.g. ["ssh"] or
// ["ssh", "-F", "/path/config"]) with the host's own operation appended.
func NewController(sshArgv []string) *Controller {
	return newController(sshArgv, ExecRunner{}, clock.WallClock)
}

func newController(sshArgv []string, runner Runner, clk clock.Clock) *Controller {
	if len(sshArgv) == 0 {
		sshArgv = []string{"ssh"}
	}
	return &Controller{argv: slices.Clone(sshArgv), runner: runner, clock: clk}
}

// run executes ssh with args. Only a failure to execute ssh is an error.
func (c *Controller) run(ctx context.Context, op string, args ...string) (Result, error) {
	argv := append(slices.Clone(c.argv), args...)
	logging.LogDebug("Running %s", shellquote.Join(argv...))

	res, err := c.runner.Run(ctx, argv[0], argv[1:]...)
	if err != nil {
		logging.LogError("Failed to execute %s: %v", op, err)
		return Result{}, &CommandError{Op: op, Err: err}
	}
	logging.LogDebug("%s exited with status %d", op, res.ExitCode)
	return res, nil
}

func commandFailure(op string, res Result) error {
	err := &CommandError{
		Op:       op,
		ExitCode: res.ExitCode,
		Stderr:   strings.TrimSpace(string(res.Stderr)),
	}
	logging.LogError("%v", err)
	return err
}

// QueryHostConfig resolves the host's ssh configuration with `ssh -G`.
func (c *Controller) QueryHostConfig(ctx context.Context, host string) (HostConfig, error) {
	res, err := c.run(ctx, opQueryConfig, "-G", host)
	if err != nil {
		return HostConfig{}, err
	}
	if !res.Success() {
		return HostConfig{}, commandFailure(opQueryConfig, res)
	}
	return HostConfig{ControlPath: parseControlPath(string(res.Stdout))}, nil
}

// CheckMasterStatus asks the control socket whether a master is alive. A
// non-zero exit is read as NotRunning: ssh does not tell an unreachable host
// apart from a missing master.
func (c *Controller) CheckMasterStatus(ctx context.Context, host string) (MasterStatus, error) {
	res, err := c.run(ctx, opCheck, "-O", "check", host)
	if err != nil {
		return MasterStatus{}, err
	}
	if !res.Success() {
		return NotRunning(), nil
	}

	// ssh -O check reports on stderr
	message := strings.TrimSpace(string(res.Stderr))
	pid, ok := parseMasterPID(message)
	if !ok {
		logging.LogError("Control master running but no pid in %q", message)
		return MasterStatus{}, errors.Wrapf(ErrProtocol, "control master running but couldn't parse pid from %q", message)
	}
	return Running(pid), nil
}

// StartMaster forks a background master for host, waits SettleDelay and
// returns the pid reported by a fresh check.
func (c *Controller) StartMaster(ctx context.Context, host string) (int32, error) {
	res, err := c.run(ctx, opStart, "-fNM", host)
	if err != nil {
		return 0, err
	}
	if !res.Success() {
		return 0, commandFailure(opStart, res)
	}

	select {
	case <-c.clock.After(SettleDelay):
	case <-ctx.Done():
		return 0, ctx.Err()
	}

	status, err := c.CheckMasterStatus(ctx, host)
	if err != nil {
		return 0, err
	}
	if !status.IsRunning() {
		logging.LogError("%v for %s", ErrMasterNotDetected, host)
		return 0, ErrMasterNotDetected
	}
	logging.LogDebug("Control master for %s started with pid %d", host, status.PID)
	return status.PID, nil
}

// AddForward requests localhost:port -> localhost:port through the master.
func (c *Controller) AddForward(ctx context.Context, host string, port uint16) error {
	return c.forwardOp(ctx, opForward, "forward", host, port)
}

// CancelForward cancels a forward previously requested with AddForward.
func (c *Controller) CancelForward(ctx context.Context, host string, port uint16) error {
	return c.forwardOp(ctx, opCancel, "cancel", host, port)
}

func (c *Controller) forwardOp(ctx context.Context, op, command, host string, port uint16) error {
	res, err := c.run(ctx, op, "-O", command, "-L", ForwardSpec(port), host)
	if err != nil {
		return err
	}
	if !res.Success() {
		return commandFailure(op, res)
	}
	return nil
}

const (
	controlPathDirective = "controlpath "
	pidMarker            = "pid="
)

// parseControlPath returns the controlpath value from `ssh -G` output. The
// first directive wins; "none" and empty values mean no control path.
func parseControlPath(output string) string {
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		value, ok := strings.CutPrefix(scanner.Text(), controlPathDirective)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "none" {
			return ""
		}
		return value
	}
	return ""
}

// parseMasterPID extracts the digits following "pid=" in a message such as
// "Master running (pid=12345)".
func parseMasterPID(message string) (int32, bool) {
	_, after, found := strings.Cut(message, pidMarker)
	if !found {
		return 0, false
	}
	end := 0
	for end < len(after) && after[end] >= '0' && after[end] <= '9' {
		end++
	}
	pid, err := strconv.ParseInt(after[:end], 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(pid), true
}
