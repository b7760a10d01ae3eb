package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xlttj/muxwarden/pkg/sshctl"
)

type mockController struct {
	mock.Mock
}

func (m *mockController) QueryHostConfig(ctx context.Context, host string) (sshctl.HostConfig, error) {
	args := m.Called(ctx, host)
	return args.Get(0).(sshctl.HostConfig), args.Error(1)
}

func (m *mockController) AddForward(ctx context.Context, host string, port uint16) error {
	return m.Called(ctx, host, port).Error(0)
}

func (m *mockController) CancelForward(ctx context.Context, host string, port uint16) error {
	return m.Called(ctx, host, port).Error(0)
}

var multiplexed = sshctl.HostConfig{ControlPath: "/home/dev/.ssh/cm-%C"}

func TestRunForward(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("QueryHostConfig", mock.Anything, "devbox").Return(multiplexed, nil)
	ctrl.On("AddForward", mock.Anything, "devbox", uint16(8080)).Return(nil)

	var out bytes.Buffer
	require.NoError(t, RunForward(context.Background(), &out, ctrl, "devbox", 8080))
	assert.Equal(t, "Added forward: localhost:8080\n", out.String())
	ctrl.AssertExpectations(t)
}

func TestRunCancel(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("QueryHostConfig", mock.Anything, "devbox").Return(multiplexed, nil)
	ctrl.On("CancelForward", mock.Anything, "devbox", uint16(5432)).Return(nil)

	var out bytes.Buffer
	require.NoError(t, RunCancel(context.Background(), &out, ctrl, "devbox", 5432))
	assert.Equal(t, "Cancelled forward: localhost:5432\n", out.String())
	ctrl.AssertExpectations(t)
}

func TestOneShotRequiresControlPath(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("QueryHostConfig", mock.Anything, "plain").Return(sshctl.HostConfig{}, nil)

	var out bytes.Buffer
	err := RunForward(context.Background(), &out, ctrl, "plain", 8080)
	require.ErrorIs(t, err, sshctl.ErrNoControlPath)

	err = RunCancel(context.Background(), &out, ctrl, "plain", 8080)
	require.ErrorIs(t, err, sshctl.ErrNoControlPath)

	assert.Empty(t, out.String())
	ctrl.AssertNotCalled(t, "AddForward", mock.Anything, mock.Anything, mock.Anything)
	ctrl.AssertNotCalled(t, "CancelForward", mock.Anything, mock.Anything, mock.Anything)
}

func TestOneShotFailures(t *testing.T) {
	failure := &sshctl.CommandError{Op: "ssh -O forward", ExitCode: 255, Stderr: "Control socket connect: No such file or directory"}

	ctrl := &mockController{}
	ctrl.On("QueryHostConfig", mock.Anything, "devbox").Return(multiplexed, nil)
	ctrl.On("AddForward", mock.Anything, "devbox", uint16(8080)).Return(failure)
	ctrl.On("CancelForward", mock.Anything, "devbox", uint16(8080)).Return(failure)

	var out bytes.Buffer
	err := RunForward(context.Background(), &out, ctrl, "devbox", 8080)
	require.ErrorIs(t, err, sshctl.ErrTransport)
	err = RunCancel(context.Background(), &out, ctrl, "devbox", 8080)
	require.ErrorIs(t, err, sshctl.ErrTransport)
	assert.Empty(t, out.String())
}

func TestOneShotConfigQueryFails(t *testing.T) {
	ctrl := &mockController{}
	ctrl.On("QueryHostConfig", mock.Anything, "devbox").Return(sshctl.HostConfig{}, sshctl.ErrTransport)

	err := RunForward(context.Background(), &bytes.Buffer{}, ctrl, "devbox", 8080)
	require.ErrorIs(t, err, sshctl.ErrTransport)
	ctrl.AssertNotCalled(t, "AddForward", mock.Anything, mock.Anything, mock.Anything)
}
