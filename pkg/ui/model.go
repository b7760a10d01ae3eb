package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xlttj/muxwarden/pkg/logging"
	"github.com/xlttj/muxwarden/pkg/session"
)

// Model renders a session and feeds it key events.
type Model struct {
	ctx     context.Context
	session *session.Session
	starts  StartTimeSource

	width  int
	height int

	forwardsTable table.Model
	snapshot      session.Snapshot
	started       masterStart
}

// NewModel wraps sess for display. starts may be nil, in which case the
// header omits the master start time.
func NewModel(ctx context.Context, sess *session.Session, starts StartTimeSource) *Model {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(ColorSelectedFg)).
		Background(lipgloss.Color(ColorSelectedBg)).
		Bold(false)

	m := &Model{
		ctx:     ctx,
		session: sess,
		starts:  starts,
		width:   80, // Default width, will be updated on first WindowSizeMsg
		height:  24, // Default height, will be updated on first WindowSizeMsg
	}
	m.forwardsTable = table.New(
		table.WithColumns(m.calculateColumns()),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(s),
	)
	m.refresh()
	return m
}

// calculateColumns sizes the single forward column to the terminal.
func (m *Model) calculateColumns() []table.Column {
	return []table.Column{
		{Title: ColForward, Width: max(m.width-10, MinTableWidth)},
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.forwardsTable.SetHeight(max(m.height-ForwardsViewRows, MinTableHeight))
		m.forwardsTable.SetColumns(m.calculateColumns())
		return m, nil

	case tea.KeyMsg:
		// Global shortcut that works in any mode
		if msg.String() == ShortcutQuit {
			return m, tea.Quit
		}

		switch m.snapshot.Mode {
		case session.ModeAddingForward:
			m.updateAddingForward(msg)
		default:
			m.updateNormal(msg)
		}
		m.refresh()
		if m.session.Done() {
			return m, tea.Quit
		}
	}
	return m, nil
}

// refresh copies the session state into the table and header.
func (m *Model) refresh() {
	m.snapshot = m.session.Snapshot()
	m.forwardsTable.SetRows(generateForwardRows(m.snapshot.Forwards))
	if len(m.snapshot.Forwards) > 0 {
		m.forwardsTable.SetCursor(m.snapshot.Selected)
	}
	if m.snapshot.Mode == session.ModeAddingForward {
		m.forwardsTable.Blur()
	} else {
		m.forwardsTable.Focus()
	}
	m.refreshStartTime()
}

// refreshStartTime looks up the master start time whenever the PID shown in
// the header changes.
func (m *Model) refreshStartTime() {
	master := m.snapshot.Master
	if !master.IsRunning() {
		m.started = masterStart{}
		return
	}
	if m.starts == nil || m.started.pid == master.PID {
		return
	}
	m.started = masterStart{pid: master.PID}
	at, err := m.starts.MasterStartedAt(m.ctx, master.PID)
	if err != nil {
		logging.LogDebug("Could not read start time of master %d: %v", master.PID, err)
		return
	}
	m.started.at = at
}
