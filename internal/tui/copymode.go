package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keagud/gptty/internal/clipboard"
)

// enterCopyMode switches into the digit-capturing code-block selection
// sub-state. The chat border renders thick and magenta while active (see
// view.go).
func (m *Model) enterCopyMode() {
	m.copyMode = true
	m.copyDigits = ""
	m.copyIndex = 0
	m.alert = ""
}

func (m *Model) exitCopyMode() {
	m.copyMode = false
	m.copyDigits = ""
	m.copyIndex = 0
}

// onCopyModeKey handles one key event while in copy mode: Esc exits;
// ascii digits extend the digit buffer, which is reparsed as a 1-based
// code-block index after every keystroke; Enter copies the resolved
// block's content and exits.
func (m *Model) onCopyModeKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.exitCopyMode()
		return

	case tea.KeyEnter:
		m.copyResolvedBlock()
		return

	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if r < '0' || r > '9' {
				continue
			}
			m.copyDigits += string(r)
		}
		m.resolveCopyIndex()
	}
}

// resolveCopyIndex reparses the digit buffer as an integer and checks it
// against the thread's current code-block count. A resolved-but-out-of-
// range index shows the "No selection" alert and exits copy mode
// immediately.
func (m *Model) resolveCopyIndex() {
	if m.copyDigits == "" {
		m.copyIndex = 0
		return
	}

	n, err := strconv.Atoi(m.copyDigits)
	if err != nil {
		m.copyIndex = 0
		return
	}

	blocks := m.thread().CodeBlocks()
	if n < 1 || n > len(blocks) {
		m.alert = fmt.Sprintf("No selection for '%d'!", n)
		m.exitCopyMode()
		return
	}

	m.copyIndex = n
	m.alert = fmt.Sprintf("Selected block %d", n)
}

// copyResolvedBlock copies the currently selected code block's content
// to the system clipboard and exits copy mode. It is a no-op (besides
// exiting) when no valid selection is resolved.
func (m *Model) copyResolvedBlock() {
	defer m.exitCopyMode()

	if m.copyIndex < 1 {
		return
	}

	blocks := m.thread().CodeBlocks()
	if m.copyIndex > len(blocks) {
		return
	}

	block := blocks[m.copyIndex-1]
	if err := clipboard.Copy(block.Content); err != nil {
		m.alert = err.Error()
		return
	}
	m.alert = fmt.Sprintf("Copied block %d to clipboard", m.copyIndex)
}
