package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jpillora/opts"
	"github.com/pkg/errors"

	"github.com/xlttj/muxwarden/pkg/config"
	"github.com/xlttj/muxwarden/pkg/forwards"
	"github.com/xlttj/muxwarden/pkg/logging"
	"github.com/xlttj/muxwarden/pkg/session"
	"github.com/xlttj/muxwarden/pkg/sshctl"
	"github.com/xlttj/muxwarden/pkg/ui"
)

// Mode selects what a run does.
type Mode int

const (
	ModeInteractive Mode = iota
	ModeForward
	ModeCancel
)

// Options are the command line flags.
type Options struct {
	Host    string `opts:"mode=arg,help=ssh host as named in your ssh configuration"`
	Forward string `opts:"short=f,help=forward local <port> through the master and exit"`
	Cancel  string `opts:"short=x,help=cancel the forward of local <port> and exit"`
	Config  string `opts:"help=config file (default ~/.muxwarden/config.yaml)"`
	Verbose bool   `opts:"help=write debug output to the log file"`
}

// NewOpts configures the command line parser for o.
func NewOpts(o *Options, version string) opts.Opts {
	return opts.New(o).
		Name("muxwarden").
		Version(version).
		Summary(Summary)
}

// Mode validates the one-shot flags and returns the requested mode and port.
func (o *Options) Mode() (Mode, uint16, error) {
	switch {
	case o.Host == "":
		return 0, 0, errors.New("a host is required")
	case o.Forward != "" && o.Cancel != "":
		return 0, 0, errors.New("--forward and --cancel cannot be combined")
	case o.Forward != "":
		port, err := session.ParsePort(o.Forward)
		return ModeForward, port, errors.Wrap(err, "--forward")
	case o.Cancel != "":
		port, err := session.ParsePort(o.Cancel)
		return ModeCancel, port, errors.Wrap(err, "--cancel")
	}
	return ModeInteractive, 0, nil
}

// Run is invoked by opts once the flags are parsed.
func (o *Options) Run() error {
	mode, port, err := o.Mode()
	if err != nil {
		return err
	}

	cfg, err := config.Load(o.Config)
	if err != nil {
		return err
	}
	if err := logging.Init(cfg.LogFile, cfg.Verbose || o.Verbose); err != nil {
		return err
	}
	defer logging.Close()

	argv, err := cfg.SSHArgv()
	if err != nil {
		return err
	}
	ctrl := sshctl.NewController(argv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch mode {
	case ModeForward:
		return RunForward(ctx, os.Stdout, ctrl, o.Host, port)
	case ModeCancel:
		return RunCancel(ctx, os.Stdout, ctrl, o.Host, port)
	}
	return runInteractive(ctx, ctrl, o.Host)
}

func runInteractive(ctx context.Context, ctrl *sshctl.Controller, host string) error {
	registry := forwards.NewRegistry()
	sess, err := session.Open(ctx, ctrl, registry, host)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, sess, registry)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "failed to run terminal UI")
	}
	logging.LogDebug("Session for %s closed", host)
	return nil
}
