package session

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xlttj/muxwarden/pkg/forwards"
	"github.com/xlttj/muxwarden/pkg/sshctl"
)

type mockController struct {
	mock.Mock
}

func (m *mockController) QueryHostConfig(ctx context.Context, host string) (sshctl.HostConfig, error) {
	args := m.Called(ctx, host)
	return args.Get(0).(sshctl.HostConfig), args.Error(1)
}

func (m *mockController) CheckMasterStatus(ctx context.Context, host string) (sshctl.MasterStatus, error) {
	args := m.Called(ctx, host)
	return args.Get(0).(sshctl.MasterStatus), args.Error(1)
}

func (m *mockController) StartMaster(ctx context.Context, host string) (int32, error) {
	args := m.Called(ctx, host)
	return args.Get(0).(int32), args.Error(1)
}

func (m *mockController) AddForward(ctx context.Context, host string, port uint16) error {
	return m.Called(ctx, host, port).Error(0)
}

func (m *mockController) CancelForward(ctx context.Context, host string, port uint16) error {
	return m.Called(ctx, host, port).Error(0)
}

type mockDiscoverer struct {
	mock.Mock
}

func (m *mockDiscoverer) Discover(ctx context.Context, pid int32) ([]forwards.PortForward, error) {
	args := m.Called(ctx, pid)
	list, _ := args.Get(0).([]forwards.PortForward)
	return list, args.Error(1)
}

func pf(ports ...uint16) []forwards.PortForward {
	list := make([]forwards.PortForward, 0, len(ports))
	for _, p := range ports {
		list = append(list, forwards.PortForward{LocalPort: p})
	}
	return list
}

const host = "devbox"

var controlPath = sshctl.HostConfig{ControlPath: "/tmp/ssh-%r@%h:%p"}

// newSession builds a session in ModeNormal with the given master state and
// forwards, backed by a fresh mockController.
func newSession(status sshctl.MasterStatus, ports ...uint16) (*Session, *mockController) {
	ctrl := &mockController{}
	return New(context.Background(), ctrl, host, controlPath, status, pf(ports...)), ctrl
}
