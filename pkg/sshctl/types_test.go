package sshctl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireControlPath(t *testing.T) {
	require.NoError(t, RequireControlPath("devbox", HostConfig{ControlPath: "/tmp/cm-%C"}))

	err := RequireControlPath("devbox", HostConfig{})
	require.ErrorIs(t, err, ErrNoControlPath)
	assert.Contains(t, err.Error(), "devbox")
}

func TestForwardSpec(t *testing.T) {
	require.Equal(t, "8080:localhost:8080", ForwardSpec(8080))
	require.Equal(t, "65535:localhost:65535", ForwardSpec(65535))
}

func TestMasterStatusString(t *testing.T) {
	require.Equal(t, "Running (PID: 12)", Running(12).String())
	require.Equal(t, "Not Running", NotRunning().String())
	require.True(t, Running(1).IsRunning())
	require.False(t, NotRunning().IsRunning())
}
