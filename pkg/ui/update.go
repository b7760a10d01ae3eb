package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xlttj/muxwarden/pkg/logging"
	"github.com/xlttj/muxwarden/pkg/session"
)

// updateNormal maps keys to session events while browsing the list
func (m *Model) updateNormal(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		m.session.Navigate(session.Next)
	case "k", "up":
		m.session.Navigate(session.Prev)
	case "q", ShortcutCancel:
		m.session.RequestQuit()
	case ShortcutAdd:
		m.session.RequestAdd()
	case ShortcutDelete:
		m.session.RequestDelete()
	default:
		logging.LogDebug("Ignoring key %q", msg.String())
	}
}

// updateAddingForward maps keys to session events while a port is typed
func (m *Model) updateAddingForward(msg tea.KeyMsg) {
	switch msg.String() {
	case ShortcutSubmit:
		m.session.SubmitInput()
	case ShortcutCancel:
		m.session.CancelInput()
	case ShortcutBackspace:
		m.session.Backspace()
	default:
		if msg.Type != tea.KeyRunes {
			return
		}
		for _, r := range msg.Runes {
			m.session.TextInput(r)
		}
	}
}
