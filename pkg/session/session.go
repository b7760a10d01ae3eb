package session

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/pkg/errors"

	"github.com/xlttj/muxwarden/pkg/forwards"
	"github.com/xlttj/muxwarden/pkg/logging"
	"github.com/xlttj/muxwarden/pkg/sshctl"
)

// ErrInvalidPort is returned for port input rejected before reaching ssh.
var ErrInvalidPort = errors.New("invalid port")

// Session owns the state of one interactive session against one host. It is
// not safe for concurrent use: a single event loop drives it.
type Session struct {
	// ctx bounds the ssh invocations made by event handlers.
	ctx  context.Context
	ctrl Controller

	hostname    string
	controlPath string
	master      sshctl.MasterStatus
	forwards    []forwards.PortForward
	selected    int
	mode        InputMode
	input       string
	message     Message
	quit        bool
}

// Open builds a session from the live state of host: its ssh configuration,
// master status and, when a master runs, the forwards it listens on. Any
// failure here is fatal to the session.
func Open(ctx context.Context, ctrl Controller, registry Discoverer, host string) (*Session, error) {
	cfg, err := ctrl.QueryHostConfig(ctx, host)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query ssh configuration")
	}
	if err := sshctl.RequireControlPath(host, cfg); err != nil {
		return nil, err
	}

	status, err := ctrl.CheckMasterStatus(ctx, host)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check control master")
	}

	var list []forwards.PortForward
	if status.IsRunning() {
		list, err = registry.Discover(ctx, status.PID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to list forwards")
		}
	}
	logging.LogDebug("Session for %s: control path %s, master %v, %d forward(s)", host, cfg.ControlPath, status, len(list))
	return New(ctx, ctrl, host, cfg, status, list), nil
}

// New builds a session from an already gathered snapshot.
func New(ctx context.Context, ctrl Controller, host string, cfg sshctl.HostConfig, status sshctl.MasterStatus, list []forwards.PortForward) *Session {
	return &Session{
		ctx:         ctx,
		ctrl:        ctrl,
		hostname:    host,
		controlPath: cfg.ControlPath,
		master:      status,
		forwards:    forwards.Normalize(slices.Clone(list)),
		mode:        ModeNormal,
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Hostname:    s.hostname,
		ControlPath: s.controlPath,
		Master:      s.master,
		Forwards:    slices.Clone(s.forwards),
		Selected:    s.selected,
		Mode:        s.mode,
		Input:       s.input,
		Message:     s.message,
	}
}

// Done reports whether the operator asked to quit.
func (s *Session) Done() bool {
	return s.quit
}

// normal clears the status message and reports whether the session is in
// ModeNormal. Handlers for ModeNormal events call it first.
func (s *Session) normal() bool {
	if s.mode != ModeNormal {
		return false
	}
	s.message = Message{}
	return true
}

func (s *Session) info(format string, args ...interface{}) {
	s.message = Message{Text: fmt.Sprintf(format, args...)}
}

func (s *Session) fail(format string, args ...interface{}) {
	s.message = Message{Text: fmt.Sprintf(format, args...), Error: true}
	logging.LogError("%s", s.message.Text)
}

// Navigate moves the selection, wrapping around at both ends.
func (s *Session) Navigate(dir Direction) {
	if !s.normal() {
		return
	}
	n := len(s.forwards)
	if n == 0 {
		return
	}
	switch dir {
	case Next:
		s.selected = (s.selected + 1) % n
	case Prev:
		s.selected = (s.selected - 1 + n) % n
	}
}

// RequestQuit marks the session for termination.
func (s *Session) RequestQuit() {
	if !s.normal() {
		return
	}
	s.quit = true
}

// RequestAdd enters ModeAddingForward, starting a control master first when
// none is running. A failed start leaves the session in ModeNormal.
func (s *Session) RequestAdd() {
	if !s.normal() {
		return
	}
	if !s.master.IsRunning() {
		pid, err := s.ctrl.StartMaster(s.ctx, s.hostname)
		if err != nil {
			s.fail("Failed to start control master: %v", err)
			return
		}
		s.master = sshctl.Running(pid)
		s.info("Started control master (PID: %d)", pid)
	}
	s.mode = ModeAddingForward
	s.input = ""
}

// RequestDelete cancels the selected forward.
func (s *Session) RequestDelete() {
	if !s.normal() || len(s.forwards) == 0 {
		return
	}
	port := s.forwards[s.selected].LocalPort
	if err := s.ctrl.CancelForward(s.ctx, s.hostname, port); err != nil {
		s.fail("Failed to cancel forward on port %d: %v", port, err)
		return
	}
	s.forwards = forwards.Remove(s.forwards, port)
	s.selected = max(min(s.selected, len(s.forwards)-1), 0)
	s.info("Cancelled forward: localhost:%d", port)
}

// TextInput appends r to the port being typed. Anything but an ASCII digit
// is ignored.
func (s *Session) TextInput(r rune) {
	if s.mode != ModeAddingForward || r < '0' || r > '9' {
		return
	}
	s.input += string(r)
}

// Backspace drops the last typed digit.
func (s *Session) Backspace() {
	if s.mode != ModeAddingForward || s.input == "" {
		return
	}
	s.input = s.input[:len(s.input)-1]
}

// CancelInput leaves ModeAddingForward without touching the forwards.
func (s *Session) CancelInput() {
	if s.mode != ModeAddingForward {
		return
	}
	s.mode = ModeNormal
	s.input = ""
}

// SubmitInput forwards the typed port. The session returns to ModeNormal
// whatever the outcome.
func (s *Session) SubmitInput() {
	if s.mode != ModeAddingForward {
		return
	}
	text := s.input
	s.mode = ModeNormal
	s.input = ""

	port, err := ParsePort(text)
	if err != nil {
		s.fail("%v", err)
		return
	}
	if err := s.ctrl.AddForward(s.ctx, s.hostname, port); err != nil {
		s.fail("Failed to add forward on port %d: %v", port, err)
		return
	}
	s.forwards, s.selected = forwards.Insert(s.forwards, port)
	s.info("Added forward: localhost:%d", port)
}

// ParsePort parses a local port typed by the operator. Zero is rejected.
func ParsePort(text string) (uint16, error) {
	if text == "" {
		return 0, errors.Wrap(ErrInvalidPort, "no port entered")
	}
	port, err := strconv.ParseUint(text, 10, 16)
	if err != nil || port == 0 {
		return 0, errors.Wrapf(ErrInvalidPort, "%s is not between 1 and 65535", text)
	}
	return uint16(port), nil
}
