package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/xlttj/muxwarden/pkg/logging"
	"github.com/xlttj/muxwarden/pkg/sshctl"
)

// Controller is the part of the control channel the one-shot commands use.
type Controller interface {
	QueryHostConfig(ctx context.Context, host string) (sshctl.HostConfig, error)
	AddForward(ctx context.Context, host string, port uint16) error
	CancelForward(ctx context.Context, host string, port uint16) error
}

// RunForward asks the control master of host to forward port and reports it on w.
func RunForward(ctx context.Context, w io.Writer, ctrl Controller, host string, port uint16) error {
	if err := requireMultiplexing(ctx, ctrl, host); err != nil {
		return err
	}
	if err := ctrl.AddForward(ctx, host, port); err != nil {
		return err
	}
	logging.LogDebug("Added forward on port %d for %s", port, host)
	_, err := fmt.Fprintf(w, "Added forward: localhost:%d\n", port)
	return err
}

// RunCancel asks the control master of host to drop the forward of port.
func RunCancel(ctx context.Context, w io.Writer, ctrl Controller, host string, port uint16) error {
	if err := requireMultiplexing(ctx, ctrl, host); err != nil {
		return err
	}
	if err := ctrl.CancelForward(ctx, host, port); err != nil {
		return err
	}
	logging.LogDebug("Cancelled forward on port %d for %s", port, host)
	_, err := fmt.Fprintf(w, "Cancelled forward: localhost:%d\n", port)
	return err
}

func requireMultiplexing(ctx context.Context, ctrl Controller, host string) error {
	cfg, err := ctrl.QueryHostConfig(ctx, host)
	if err != nil {
		return err
	}
	return sshctl.RequireControlPath(host, cfg)
}
