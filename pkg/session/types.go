package session

import (
	"context"

	"github.com/xlttj/muxwarden/pkg/forwards"
	"github.com/xlttj/muxwarden/pkg/sshctl"
)

// InputMode is the modal state of the session.
type InputMode int

const (
	ModeNormal        InputMode = iota // browsing the forward list
	ModeAddingForward                  // typing a port to forward
)

func (m InputMode) String() string {
	switch m {
	case ModeAddingForward:
		return "AddingForward"
	default:
		return "Normal"
	}
}

// Direction moves the selection through the forward list.
type Direction int

const (
	Next Direction = iota
	Prev
)

// Controller is the control channel the session drives.
type Controller interface {
	QueryHostConfig(ctx context.Context, host string) (sshctl.HostConfig, error)
	CheckMasterStatus(ctx context.Context, host string) (sshctl.MasterStatus, error)
	StartMaster(ctx context.Context, host string) (int32, error)
	AddForward(ctx context.Context, host string, port uint16) error
	CancelForward(ctx context.Context, host string, port uint16) error
}

// Discoverer finds the forwards a control master is serving.
type Discoverer interface {
	Discover(ctx context.Context, pid int32) ([]forwards.PortForward, error)
}

// Message is the status line shown under the forward list.
type Message struct {
	Text  string
	Error bool
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Hostname    string
	ControlPath string
	Master      sshctl.MasterStatus
	Forwards    []forwards.PortForward
	// Selected is an index into Forwards; meaningless when Forwards is empty.
	Selected int
	Mode     InputMode
	Input    string
	Message  Message
}
