package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// onKey applies one terminal key event. While a reply is in flight, all
// keyboard input is read and discarded to prevent accidental sends; copy
// mode routes to its own digit-capturing handler instead of the normal
// compose bindings.
func (m *Model) onKey(msg tea.KeyMsg) {
	if m.receiving {
		return
	}

	if m.copyMode {
		m.onCopyModeKey(msg)
		return
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		m.shouldQuit = true
		return

	case tea.KeyUp:
		m.viewport.LineUp(ScrollStep)
		return

	case tea.KeyDown:
		m.viewport.LineDown(ScrollStep)
		return

	case tea.KeyCtrlW:
		m.enterCopyMode()
		return

	case tea.KeyCtrlE:
		m.showEditor = true
		return

	case tea.KeyEnter:
		if msg.Alt {
			m.send()
			return
		}
		m.input.InsertString("\n")
		return

	case tea.KeyBackspace:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		_ = cmd
		return

	case tea.KeyRunes:
		// The terminal already encodes Shift state in the rune's case,
		// so plain and Shift-modified character keys are handled
		// identically.
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		_ = cmd
		return

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		_ = cmd
	}
}
