package forwards

import (
	"context"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/xlttj/muxwarden/pkg/logging"
)

// ErrEnumerate wraps failures of the operating system's socket or process tables.
var ErrEnumerate = errors.New("failed to enumerate sockets")

const statusListen = "LISTEN"

// Inspector exposes the system tables the registry reads.
type Inspector interface {
	// Connections lists every socket of the given kind ("tcp" covers IPv4 and IPv6).
	Connections(ctx context.Context, kind string) ([]net.ConnectionStat, error)
	// CreateTime returns the start time of pid in milliseconds since the epoch.
	CreateTime(ctx context.Context, pid int32) (int64, error)
}

// SystemInspector reads the live tables through gopsutil.
type SystemInspector struct{}

// Connections lists sockets with gopsutil.
func (SystemInspector) Connections(ctx context.Context, kind string) ([]net.ConnectionStat, error) {
	return net.ConnectionsWithContext(ctx, kind)
}

// CreateTime reads the process start time with gopsutil.
func (SystemInspector) CreateTime(ctx context.Context, pid int32) (int64, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return 0, err
	}
	return p.CreateTimeWithContext(ctx)
}

// Registry reconciles believed forwards with the sockets the control master
// actually listens on. It is consulted once per session.
type Registry struct {
	inspector Inspector
}

// NewRegistry returns a Registry backed by the live system tables.
func NewRegistry() *Registry {
	return NewRegistryWithInspector(SystemInspector{})
}

// NewRegistryWithInspector returns a Registry reading from inspector.
func NewRegistryWithInspector(inspector Inspector) *Registry {
	return &Registry{inspector: inspector}
}

// Discover returns one forward per distinct TCP port that pid listens on,
// sorted by port. IPv4 and IPv6 listeners on the same port collapse into one.
func (r *Registry) Discover(ctx context.Context, pid int32) ([]PortForward, error) {
	conns, err := r.inspector.Connections(ctx, "tcp")
	if err != nil {
		logging.LogError("Socket enumeration for pid %d failed: %v", pid, err)
		return nil, errors.Wrapf(ErrEnumerate, "listing tcp sockets: %v", err)
	}

	found := []PortForward{}
	for _, conn := range conns {
		if conn.Pid != pid || conn.Status != statusListen || conn.Type != syscall.SOCK_STREAM {
			continue
		}
		if conn.Family != syscall.AF_INET && conn.Family != syscall.AF_INET6 {
			continue
		}
		if conn.Laddr.Port == 0 || conn.Laddr.Port > 65535 {
			continue
		}
		found = append(found, PortForward{LocalPort: uint16(conn.Laddr.Port)})
	}
	found = Normalize(found)
	logging.LogDebug("Discovered %d forward(s) for pid %d", len(found), pid)
	return found, nil
}

// MasterStartedAt returns when the control master process started.
func (r *Registry) MasterStartedAt(ctx context.Context, pid int32) (time.Time, error) {
	ms, err := r.inspector.CreateTime(ctx, pid)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "reading start time of pid %d", pid)
	}
	return time.UnixMilli(ms), nil
}
