package ui

import (
	"context"
	"time"
)

// StartTimeSource reports when a control master process started.
type StartTimeSource interface {
	MasterStartedAt(ctx context.Context, pid int32) (time.Time, error)
}

// masterStart caches the start time of the master last shown in the header.
type masterStart struct {
	pid int32
	at  time.Time // zero when unknown
}
