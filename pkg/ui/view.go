package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/xlttj/muxwarden/pkg/session"
)

// View renders the current model state
func (m *Model) View() string {
	snap := m.snapshot

	titleText := fmt.Sprintf("Forwards on %s (%d)", snap.Hostname, len(snap.Forwards))
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTitle)).Bold(true).Render(titleText)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelp))
	help := ActionNormal
	if m.width < NarrowWidth {
		help = ActionNormalShort
	}
	helpText := helpStyle.Render(help)

	// Title and help share the top line when there is room
	top := title
	var bottom string
	if m.width >= NarrowWidth {
		if spacing := m.width - lipgloss.Width(title) - lipgloss.Width(helpText); spacing > 0 {
			top = lipgloss.JoinHorizontal(lipgloss.Left, title, strings.Repeat(" ", spacing), helpText)
		}
	} else {
		bottom = helpText
	}

	lines := []string{top, "", m.renderMaster(), helpStyle.Render("ControlPath: " + snap.ControlPath), ""}

	if len(snap.Forwards) == 0 {
		lines = append(lines, helpStyle.Render("No forwards. Press a to add one."))
	} else {
		lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Left, m.forwardsTable.View()))
	}

	if snap.Mode == session.ModeAddingForward {
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorInput)).Render("Forward local port: ")
		lines = append(lines, label+snap.Input+"█ "+helpStyle.Render(ActionAddingForward))
	}

	if msg := m.renderMessage(); msg != "" {
		lines = append(lines, msg)
	}
	if bottom != "" {
		lines = append(lines, bottom)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderMaster renders the control master status line
func (m *Model) renderMaster() string {
	master := m.snapshot.Master
	color := ColorStopped
	if master.IsRunning() {
		color = ColorRunning
	}
	text := "Control master: " + lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(master.String())
	if master.IsRunning() && !m.started.at.IsZero() {
		text += fmt.Sprintf(", started %s", humanize.Time(m.started.at))
	}
	return text
}

// renderMessage renders the error or status message, if any
func (m *Model) renderMessage() string {
	msg := m.snapshot.Message
	switch {
	case msg.Text == "":
		return ""
	case msg.Error:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Render("ERROR: " + msg.Text)
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorStatus)).Render(msg.Text)
	}
}
