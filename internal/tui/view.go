package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	idleInputBorder      = lipgloss.Color("4") // blue
	receivingInputBorder = lipgloss.Color("7") // white
	copyModeBorder       = lipgloss.Color("5") // magenta

	readyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	waitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// refreshHistory re-renders the thread's formatted message blocks at the
// current content width and loads them into the viewport, preserving
// scroll position except where onTick has forced it to the bottom.
func (m *Model) refreshHistory() {
	blocks, err := m.thread().TUIFormattedMessages(m.contentWidth)
	if err != nil {
		m.alert = err.Error()
		return
	}
	m.viewport.SetContent(strings.Join(blocks, "\n"))
}

// View implements tea.Model: it renders the title, the bordered history
// pane (thick magenta in copy mode, rounded otherwise) with its scroll
// percentage, and the bordered compose pane with its ready/waiting
// indicator.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	title := m.title()
	history := m.renderHistory()
	input := m.renderInput()
	alert := m.renderAlert()

	return lipgloss.JoinVertical(lipgloss.Left, title, history, input, alert)
}

func (m *Model) title() string {
	th := m.thread()
	text := th.DisplayTitle()
	return lipgloss.NewStyle().Bold(true).Width(m.width - 2*outerMargin).Render(text)
}

func (m *Model) renderHistory() string {
	border := lipgloss.RoundedBorder()
	color := idleInputBorder
	if m.copyMode {
		border = lipgloss.ThickBorder()
		color = copyModeBorder
	}

	pct := m.scrollPercent()
	footer := fmt.Sprintf("%d%%", pct)

	box := lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Padding(0, historyPadding).
		Width(m.viewport.Width + 2*historyPadding).
		Height(m.viewport.Height)

	body := box.Render(m.viewport.View())
	return overlayBottomRight(body, footer)
}

// scrollPercent returns the history viewport's scroll position as a
// whole-number percentage, 100 when there is nothing left to scroll.
func (m *Model) scrollPercent() int {
	if m.viewport.TotalLineCount() <= m.viewport.Height {
		return 100
	}
	return int(m.viewport.ScrollPercent() * 100)
}

func (m *Model) renderInput() string {
	color := idleInputBorder
	if m.receiving {
		color = receivingInputBorder
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(m.input.Width())

	status := readyStyle.Render("[Ready!]")
	if m.receiving {
		status = waitStyle.Render("[Please Wait]")
	}

	body := box.Render(m.input.View())
	return overlayBottomRight(body, status)
}

func (m *Model) renderAlert() string {
	if m.alert == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Render(m.alert)
}

// overlayBottomRight appends label on its own trailing line, right-
// aligned to the block's rendered width -- the simplest faithful
// rendition of "bottom-right of the block" inside a scrolling terminal
// renderer that redraws the full frame every tick.
func overlayBottomRight(block, label string) string {
	width := lipgloss.Width(block)
	return block + "\n" + lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(label)
}
